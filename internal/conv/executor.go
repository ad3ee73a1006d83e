// Package conv implements 1-D convolution on top of a 2-D convolution
// primitive. The primitive, together with rank adjustment, bias addition and
// activation, is supplied by an Executor chosen by the caller: the CPU backend
// runs every step immediately, the graph builder records the steps for later.
package conv

import "github.com/born-ml/seqconv/internal/tensor"

// Executor runs (or records) the tensor operations Conv1D is made of.
//
// Implementations must not modify their arguments: every method returns a
// new value. Errors are returned to the Conv1D caller as-is.
type Executor interface {
	// Conv2D convolves a rank-4 input with a rank-4 filter
	// [out, in/groups, kh, kw] using canonical attributes.
	Conv2D(input, filter tensor.Value, attrs Conv2DAttrs) (tensor.Value, error)

	// Unsqueeze inserts a size-1 axis at the given position.
	Unsqueeze(x tensor.Value, axis int) (tensor.Value, error)

	// Squeeze removes the size-1 axis at the given position.
	Squeeze(x tensor.Value, axis int) (tensor.Value, error)

	// AddBias adds a rank-1 bias broadcast along axis.
	AddBias(x, bias tensor.Value, axis int) (tensor.Value, error)

	// Activate applies the registered activation with the given tag.
	Activate(x tensor.Value, name string) (tensor.Value, error)
}
