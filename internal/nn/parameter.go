package nn

import "github.com/born-ml/seqconv/internal/tensor"

// Parameter is a named tensor owned by a layer, such as a weight or a bias.
type Parameter struct {
	name   string
	tensor *tensor.RawTensor
}

// NewParameter creates a new parameter. The tensor is not copied.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return &Parameter{name: name, tensor: t}
}

// Name returns the parameter name, e.g. "conv1d.weight".
func (p *Parameter) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter) Tensor() *tensor.RawTensor {
	return p.tensor
}

// Set replaces the parameter's values with those of t, which must have the
// same shape and dtype.
func (p *Parameter) Set(t *tensor.RawTensor) error {
	if !t.Shape().Equal(p.tensor.Shape()) || t.DType() != p.tensor.DType() {
		return invalidf("parameter %s: expected %s %v, got %s %v",
			p.name, p.tensor.DType(), p.tensor.Shape(), t.DType(), t.Shape())
	}
	p.tensor = t.Clone()
	return nil
}
