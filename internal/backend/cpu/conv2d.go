package cpu

import (
	"github.com/born-ml/seqconv/internal/conv"
	"github.com/born-ml/seqconv/internal/parallel"
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// Conv2D performs grouped or depthwise 2-D convolution.
//
// Input shape:  [N, C, H, W] (NCHW) or [N, H, W, C] (NHWC)
// Filter shape: [F, C/groups, KH, KW]
// Output shape: [N, F, HOut, WOut] or [N, HOut, WOut, F]
//
// The standard variant uses im2col per (image, group):
//  1. Gather every receptive field into columns [C/groups*KH*KW, HOut*WOut]
//  2. GEMM with the group's filters [F/groups, C/groups*KH*KW]
//  3. The product lands directly in the NCHW output block of that group
//
// The depthwise variant (one group per channel) convolves each channel
// directly, which avoids building columns for single-channel groups.
func (cpu *CPUBackend) Conv2D(input, filter tensor.Value, attrs conv.Conv2DAttrs) (tensor.Value, error) {
	in, err := raw("conv2d", input)
	if err != nil {
		return nil, err
	}
	k, err := raw("conv2d", filter)
	if err != nil {
		return nil, err
	}
	if in.DType() != k.DType() {
		return nil, errors.Errorf("conv2d: input dtype %s != filter dtype %s", in.DType(), k.DType())
	}

	g, err := conv.InferGeometry(in.Shape(), k.Shape(), attrs)
	if err != nil {
		return nil, err
	}
	pads, err := attrs.Pads(g.In, g.Kernel)
	if err != nil {
		return nil, err
	}

	output, err := tensor.NewRaw(g.OutputShape(attrs.Layout), in.DType(), cpu.device)
	if err != nil {
		return nil, errors.Wrap(err, "conv2d: failed to create output tensor")
	}

	p := convProblem{Geometry: g, attrs: attrs, pads: pads}
	switch in.DType() {
	case tensor.Float32:
		conv2d(cpu, p, in.AsFloat32(), k.AsFloat32(), output.AsFloat32())
	case tensor.Float64:
		conv2d(cpu, p, in.AsFloat64(), k.AsFloat64(), output.AsFloat64())
	default:
		return nil, errors.Errorf("conv2d: unsupported dtype %s", in.DType())
	}
	return output, nil
}

type convProblem struct {
	conv.Geometry
	attrs conv.Conv2DAttrs
	pads  [4]int // top, bottom, left, right
}

func conv2d[T tensor.DType](cpu *CPUBackend, p convProblem, in, kernel, out []T) {
	nhwc := p.attrs.Layout == conv.NHWC
	if nhwc {
		in = nhwcToNCHW(in, p.Batch, p.In[0], p.In[1], p.Channels)
	}

	dst := out
	if nhwc {
		dst = make([]T, len(out))
	}
	if p.attrs.Variant == conv.Depthwise {
		depthwise(cpu, p, in, kernel, dst)
	} else {
		grouped(cpu, p, in, kernel, dst)
	}
	if nhwc {
		copy(out, nchwToNHWC(dst, p.Batch, p.Filters, p.Out[0], p.Out[1]))
	}
}

// grouped runs im2col + GEMM for every (image, group) pair.
func grouped[T tensor.DType](cpu *CPUBackend, p convProblem, in, kernel, out []T) {
	groups := p.attrs.Groups
	cg, fg := p.Channels/groups, p.Filters/groups
	rows := cg * p.Kernel[0] * p.Kernel[1]
	cols := p.Out[0] * p.Out[1]
	inImage := p.Channels * p.In[0] * p.In[1]

	parallel.Chunks(p.Batch*groups, cpu.parallel, func(start, end int) {
		col := make([]T, rows*cols)
		for task := start; task < end; task++ {
			n, g := task/groups, task%groups
			src := in[n*inImage+g*cg*p.In[0]*p.In[1]:]
			im2col(col, src, cg, p)

			a := kernel[g*fg*rows : (g+1)*fg*rows]
			c := out[(n*p.Filters+g*fg)*cols : (n*p.Filters+(g+1)*fg)*cols]
			gemm(fg, cols, rows, a, col, c)
		}
	})
}

// im2col lays out the receptive field of every output position as a column:
// col[(c*KH+kh)*KW+kw, oh*WOut+ow] = input[c, ih, iw], zero outside the image.
func im2col[T tensor.DType](col, src []T, channels int, p convProblem) {
	H, W := p.In[0], p.In[1]
	KH, KW := p.Kernel[0], p.Kernel[1]
	HOut, WOut := p.Out[0], p.Out[1]
	sh, sw := p.attrs.Strides[0], p.attrs.Strides[1]
	dh, dw := p.attrs.Dilations[0], p.attrs.Dilations[1]

	row := 0
	for c := 0; c < channels; c++ {
		plane := src[c*H*W : (c+1)*H*W]
		for kh := 0; kh < KH; kh++ {
			for kw := 0; kw < KW; kw++ {
				dstRow := col[row*HOut*WOut : (row+1)*HOut*WOut]
				for oh := 0; oh < HOut; oh++ {
					ih := oh*sh - p.pads[0] + kh*dh
					for ow := 0; ow < WOut; ow++ {
						iw := ow*sw - p.pads[2] + kw*dw
						if ih >= 0 && ih < H && iw >= 0 && iw < W {
							dstRow[oh*WOut+ow] = plane[ih*W+iw]
						} else {
							dstRow[oh*WOut+ow] = 0
						}
					}
				}
				row++
			}
		}
	}
}

// gemm computes c[m×n] = a[m×k] · b[k×n] with gonum BLAS.
func gemm[T tensor.DType](m, n, k int, a, b, c []T) {
	switch a := any(a).(type) {
	case []float32:
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas32.General{Rows: m, Cols: k, Stride: k, Data: a},
			blas32.General{Rows: k, Cols: n, Stride: n, Data: any(b).([]float32)},
			0,
			blas32.General{Rows: m, Cols: n, Stride: n, Data: any(c).([]float32)})
	case []float64:
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas64.General{Rows: m, Cols: k, Stride: k, Data: a},
			blas64.General{Rows: k, Cols: n, Stride: n, Data: any(b).([]float64)},
			0,
			blas64.General{Rows: m, Cols: n, Stride: n, Data: any(c).([]float64)})
	}
}
