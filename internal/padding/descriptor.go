// Package padding normalizes the padding notations accepted by convolution
// layers into the canonical form consumed by fixed-rank convolution primitives.
//
// Four notations are recognised for a convolution over rank spatial dimensions:
//
//	Mode("same"), Mode("VALID")           algorithm chosen by the primitive
//	List{1, 2}                            one value per spatial dimension
//	List{1, 2, 0, 0}                      flattened (before, after) pairs
//	Pairs{{1, 2}, {0, 0}}                 one (before, after) pair per dimension
//	Pairs{{0, 0}, {0, 0}, {1, 2}}         every tensor dimension, batch and channel included
//	Scalar(1)                             the same value on every dimension
package padding

import (
	"fmt"
	"strings"
)

// Descriptor is a user-supplied padding notation. The set of implementations
// is closed: Mode, List, Pairs and Scalar.
type Descriptor interface {
	isDescriptor()
	fmt.Stringer
}

// Mode selects SAME or VALID padding by name.
type Mode string

// List holds scalar paddings: either one per spatial dimension or flattened
// (before, after) pairs.
type List []int

// Pairs holds (before, after) pairs: either one per spatial dimension or one
// per tensor dimension, batch and channel included.
type Pairs [][2]int

// Scalar pads every spatial dimension by the same amount on both sides.
type Scalar int

func (Mode) isDescriptor()   {}
func (List) isDescriptor()   {}
func (Pairs) isDescriptor()  {}
func (Scalar) isDescriptor() {}

func (m Mode) String() string { return fmt.Sprintf("%q", string(m)) }

func (l List) String() string { return fmt.Sprint([]int(l)) }

func (p Pairs) String() string {
	parts := make([]string, len(p))
	for i, pair := range p {
		parts[i] = fmt.Sprintf("(%d,%d)", pair[0], pair[1])
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (s Scalar) String() string { return fmt.Sprint(int(s)) }

// Algorithm tells the primitive how to interpret the canonical padding.
type Algorithm int

// Padding algorithms.
const (
	Explicit Algorithm = iota
	Same
	Valid
)

// String returns the tag spelled the way primitives expect it.
func (a Algorithm) String() string {
	switch a {
	case Same:
		return "SAME"
	case Valid:
		return "VALID"
	case Explicit:
		return "EXPLICIT"
	default:
		return "UNKNOWN"
	}
}
