package cpu

import (
	"github.com/born-ml/seqconv/internal/activation"
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
)

// Activate applies the registered activation elementwise into a new tensor.
func (cpu *CPUBackend) Activate(x tensor.Value, name string) (tensor.Value, error) {
	r, err := raw("activate", x)
	if err != nil {
		return nil, err
	}
	fn, ok := activation.Lookup(name)
	if !ok {
		return nil, errors.Errorf("activate: unknown activation %q", name)
	}

	result := r.Clone()
	switch r.DType() {
	case tensor.Float32:
		apply(result.AsFloat32(), fn)
	case tensor.Float64:
		apply(result.AsFloat64(), fn)
	default:
		return nil, errors.Errorf("activate: unsupported dtype %s", r.DType())
	}
	return result, nil
}

func apply[T tensor.DType](data []T, fn activation.Func) {
	for i, v := range data {
		data[i] = T(fn(float64(v)))
	}
}
