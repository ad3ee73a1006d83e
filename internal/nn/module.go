// Package nn implements the neural network layers built on the convolution
// dispatcher.
//
// Layers own their parameters and run on a Backend: an immediate executor
// that also reports whether the host is accelerated.
package nn

import (
	"github.com/born-ml/seqconv/internal/conv"
	"github.com/born-ml/seqconv/internal/tensor"
)

// Backend is the executor a layer computes on.
type Backend interface {
	conv.Executor

	// Accelerated reports whether the standard kernel has vector support.
	Accelerated() bool
}

// Module is the base interface for all neural network components.
type Module interface {
	// Forward computes the output of the module given an input value.
	Forward(input tensor.Value) (tensor.Value, error)

	// Parameters returns all trainable parameters of this module.
	Parameters() []*Parameter
}
