package cpu

import (
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
)

// AddBias returns x + bias, with the rank-1 bias broadcast along axis.
func (cpu *CPUBackend) AddBias(x, bias tensor.Value, axis int) (tensor.Value, error) {
	xr, err := raw("add_bias", x)
	if err != nil {
		return nil, err
	}
	br, err := raw("add_bias", bias)
	if err != nil {
		return nil, err
	}

	shape := xr.Shape()
	if axis < 0 {
		axis += len(shape)
	}
	if axis < 0 || axis >= len(shape) {
		return nil, errors.Errorf("add_bias: axis %d out of range for shape %v", axis, shape)
	}
	if len(br.Shape()) != 1 || br.Shape()[0] != shape[axis] {
		return nil, errors.Errorf("add_bias: bias shape %v does not match axis %d of %v", br.Shape(), axis, shape)
	}
	if xr.DType() != br.DType() {
		return nil, errors.Errorf("add_bias: dtype %s != bias dtype %s", xr.DType(), br.DType())
	}

	result := xr.Clone()
	inner := xr.Strides()[axis]
	switch xr.DType() {
	case tensor.Float32:
		addAlongAxis(result.AsFloat32(), br.AsFloat32(), inner)
	case tensor.Float64:
		addAlongAxis(result.AsFloat64(), br.AsFloat64(), inner)
	default:
		return nil, errors.Errorf("add_bias: unsupported dtype %s", xr.DType())
	}
	return result, nil
}

func addAlongAxis[T tensor.DType](dst, bias []T, inner int) {
	n := len(bias)
	for i := range dst {
		dst[i] += bias[(i/inner)%n]
	}
}
