package cpu

import (
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
)

// Unsqueeze returns a copy of x with a size-1 dimension inserted at axis.
// Negative axes count from the end.
//
// Example:
//
//	x := ... // shape (2, 4, 10)
//	y, _ := backend.Unsqueeze(x, 2) // shape (2, 4, 1, 10)
func (cpu *CPUBackend) Unsqueeze(x tensor.Value, axis int) (tensor.Value, error) {
	r, err := raw("unsqueeze", x)
	if err != nil {
		return nil, err
	}
	shape, err := r.Shape().Insert(axis)
	if err != nil {
		return nil, errors.Wrap(err, "unsqueeze")
	}
	return r.WithShape(shape)
}

// Squeeze returns a copy of x without the size-1 dimension at axis.
func (cpu *CPUBackend) Squeeze(x tensor.Value, axis int) (tensor.Value, error) {
	r, err := raw("squeeze", x)
	if err != nil {
		return nil, err
	}
	shape, err := r.Shape().Remove(axis)
	if err != nil {
		return nil, errors.Wrap(err, "squeeze")
	}
	return r.WithShape(shape)
}

// nhwcToNCHW and nchwToNHWC permute rank-4 data between image layouts.
func nhwcToNCHW[T tensor.DType](src []T, n, h, w, c int) []T {
	dst := make([]T, len(src))
	for b := 0; b < n; b++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				base := ((b*h+y)*w + x) * c
				for ch := 0; ch < c; ch++ {
					dst[((b*c+ch)*h+y)*w+x] = src[base+ch]
				}
			}
		}
	}
	return dst
}

func nchwToNHWC[T tensor.DType](src []T, n, c, h, w int) []T {
	dst := make([]T, len(src))
	for b := 0; b < n; b++ {
		for ch := 0; ch < c; ch++ {
			base := (b*c + ch) * h * w
			for i := 0; i < h*w; i++ {
				dst[(b*h*w+i)*c+ch] = src[base+i]
			}
		}
	}
	return dst
}
