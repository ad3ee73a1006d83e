package nn

import (
	"github.com/born-ml/seqconv/internal/activation"
	"github.com/born-ml/seqconv/internal/tensor"
)

// Activation is a parameter-free module applying a registered activation.
//
// Example:
//
//	relu, _ := nn.NewActivation("relu", backend)
//	output, err := relu.Forward(input) // All negative values become 0
type Activation struct {
	name    string
	backend Backend
}

var _ Module = (*Activation)(nil)

// NewActivation creates an activation module for a registered tag.
func NewActivation(name string, backend Backend) (*Activation, error) {
	if _, ok := activation.Lookup(name); !ok {
		return nil, invalidf("unknown activation %q, registered: %v", name, activation.Names())
	}
	return &Activation{name: name, backend: backend}, nil
}

// Forward applies the activation elementwise.
func (a *Activation) Forward(input tensor.Value) (tensor.Value, error) {
	return a.backend.Activate(input, a.name)
}

// Parameters returns nil: activations have no trainable parameters.
func (a *Activation) Parameters() []*Parameter {
	return nil
}

// String returns the activation tag.
func (a *Activation) String() string {
	return "Activation(" + a.name + ")"
}
