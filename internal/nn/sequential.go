package nn

import (
	"fmt"

	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, e.g. a stack of
// convolutions over a sequence:
//
//	model := nn.NewSequential(
//	    conv1, // 16 -> 32 channels
//	    conv2, // 32 -> 32 channels, dilation 2
//	)
//	output, err := model.Forward(input)
type Sequential struct {
	modules []Module
}

var _ Module = (*Sequential)(nil)

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Module) *Sequential {
	return &Sequential{modules: modules}
}

// Forward applies all modules in sequence and stops at the first error.
func (s *Sequential) Forward(input tensor.Value) (tensor.Value, error) {
	output := input
	for i, module := range s.modules {
		var err error
		if output, err = module.Forward(output); err != nil {
			return nil, errors.WithMessagef(err, "module %d", i)
		}
	}
	return output, nil
}

// Parameters returns all trainable parameters from all modules.
func (s *Sequential) Parameters() []*Parameter {
	var params []*Parameter
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Module(index int) Module {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// StateDict returns a map of parameter names to tensors.
//
// Names are prefixed with their module index (e.g., "0.conv1d.weight") to
// avoid collisions.
func (s *Sequential) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for i, module := range s.modules {
		for _, p := range module.Parameters() {
			stateDict[fmt.Sprintf("%d.%s", i, p.Name())] = p.Tensor()
		}
	}
	return stateDict
}

// LoadStateDict copies tensors from a state dictionary into the parameters.
// Every parameter must be present with a matching shape.
func (s *Sequential) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for i, module := range s.modules {
		for _, p := range module.Parameters() {
			key := fmt.Sprintf("%d.%s", i, p.Name())
			raw, ok := stateDict[key]
			if !ok {
				return errors.Errorf("failed to load module %d: missing %q", i, key)
			}
			if err := p.Set(raw); err != nil {
				return errors.WithMessagef(err, "failed to load module %d", i)
			}
		}
	}
	return nil
}
