package tensor

import (
	"fmt"
	"strings"
)

// Dynamic marks a dimension whose size is only known when a graph is run.
const Dynamic = -1

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
// Returns Dynamic when any dimension is not statically known.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		if dim == Dynamic {
			return Dynamic
		}
		n *= dim
	}
	return n
}

// IsStatic reports whether every dimension is known.
func (s Shape) IsStatic() bool {
	for _, dim := range s {
		if dim == Dynamic {
			return false
		}
	}
	return true
}

// Validate checks if the shape is valid for a concrete tensor (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// ValidateSymbolic is Validate that also admits Dynamic dimensions.
func (s Shape) ValidateSymbolic() error {
	for i, dim := range s {
		if dim <= 0 && dim != Dynamic {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0 or Dynamic)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Compatible reports whether two shapes agree on every dimension known to both.
func (s Shape) Compatible(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != Dynamic && other[i] != Dynamic && s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Insert returns a new shape with a size-1 dimension at axis.
// Negative axes count from the end, -1 meaning "append".
func (s Shape) Insert(axis int) (Shape, error) {
	ndim := len(s)
	if axis < 0 {
		axis = ndim + 1 + axis
	}
	if axis < 0 || axis > ndim {
		return nil, fmt.Errorf("axis %d out of range for %dD shape %v (valid: [0, %d])", axis, ndim, s, ndim)
	}
	out := make(Shape, 0, ndim+1)
	out = append(out, s[:axis]...)
	out = append(out, 1)
	return append(out, s[axis:]...), nil
}

// Remove returns a new shape without the size-1 dimension at axis.
func (s Shape) Remove(axis int) (Shape, error) {
	ndim := len(s)
	if axis < 0 {
		axis = ndim + axis
	}
	if axis < 0 || axis >= ndim {
		return nil, fmt.Errorf("axis %d out of range for %dD shape %v", axis, ndim, s)
	}
	if s[axis] != 1 {
		return nil, fmt.Errorf("axis %d of shape %v has size %d, must be 1", axis, s, s[axis])
	}
	out := make(Shape, 0, ndim-1)
	out = append(out, s[:axis]...)
	return append(out, s[axis+1:]...), nil
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// String prints the shape with "?" for Dynamic dimensions, e.g. (2, ?, 10).
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, dim := range s {
		if dim == Dynamic {
			parts[i] = "?"
			continue
		}
		parts[i] = fmt.Sprint(dim)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
