package cpu

import (
	"github.com/born-ml/seqconv/internal/parallel"
	"github.com/born-ml/seqconv/internal/tensor"
)

// depthwise convolves every input channel with its own multiplier filters:
// output channel c*M+j reads only input channel c, where M = F/C.
func depthwise[T tensor.DType](cpu *CPUBackend, p convProblem, in, kernel, out []T) {
	H, W := p.In[0], p.In[1]
	KH, KW := p.Kernel[0], p.Kernel[1]
	HOut, WOut := p.Out[0], p.Out[1]
	sh, sw := p.attrs.Strides[0], p.attrs.Strides[1]
	dh, dw := p.attrs.Dilations[0], p.attrs.Dilations[1]
	multiplier := p.Filters / p.Channels

	parallel.ForBatch(p.Batch, p.Filters, func(n, f int) {
		c := f / multiplier
		plane := in[(n*p.Channels+c)*H*W : (n*p.Channels+c+1)*H*W]
		weights := kernel[f*KH*KW : (f+1)*KH*KW]
		dst := out[(n*p.Filters+f)*HOut*WOut : (n*p.Filters+f+1)*HOut*WOut]

		for oh := 0; oh < HOut; oh++ {
			for ow := 0; ow < WOut; ow++ {
				var sum T
				for kh := 0; kh < KH; kh++ {
					ih := oh*sh - p.pads[0] + kh*dh
					if ih < 0 || ih >= H {
						continue
					}
					for kw := 0; kw < KW; kw++ {
						iw := ow*sw - p.pads[2] + kw*dw
						if iw < 0 || iw >= W {
							continue
						}
						sum += plane[ih*W+iw] * weights[kh*KW+kw]
					}
				}
				dst[oh*WOut+ow] = sum
			}
		}
	}, cpu.parallel)
}
