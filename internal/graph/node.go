// Package graph is the deferred executor: operations are recorded as nodes
// with symbolically inferred shapes and only computed when Run replays them
// on an immediate executor.
//
// Usage:
//
//	g := graph.New()
//	x, _ := g.Placeholder("x", tensor.Shape{tensor.Dynamic, 4, 10}, tensor.Float32)
//	w := g.Constant(weight)
//	y, _ := conv.Conv1D(g, x, w, conv.Options{Padding: padding.Mode("SAME")})
//	out, _ := g.Run(cpu.New(), y.(*graph.Node), graph.Feeds{"x": batch})
package graph

import (
	"fmt"

	"github.com/born-ml/seqconv/internal/conv"
	"github.com/born-ml/seqconv/internal/tensor"
)

// Op identifies what a node computes.
type Op string

// Recorded operations.
const (
	OpPlaceholder Op = "placeholder"
	OpConstant    Op = "constant"
	OpConv2D      Op = "conv2d"
	OpUnsqueeze   Op = "unsqueeze"
	OpSqueeze     Op = "squeeze"
	OpAddBias     Op = "add_bias"
	OpActivate    Op = "activate"
)

// Node is a symbolic value: the output of one recorded operation.
type Node struct {
	builder *Builder
	id      int
	op      Op
	inputs  []*Node
	shape   tensor.Shape
	dtype   tensor.DataType

	name       string            // placeholder
	value      *tensor.RawTensor // constant
	attrs      conv.Conv2DAttrs  // conv2d
	axis       int               // unsqueeze, squeeze, add_bias
	activation string            // activate
}

var _ tensor.Value = (*Node)(nil)

// Shape returns the inferred shape; unknown dimensions are tensor.Dynamic.
func (n *Node) Shape() tensor.Shape {
	return n.shape
}

// DType returns the element type.
func (n *Node) DType() tensor.DataType {
	return n.dtype
}

// Op returns the operation that produces the node.
func (n *Node) Op() Op {
	return n.op
}

// ID is the node's position in its builder; inputs always have smaller IDs.
func (n *Node) ID() int {
	return n.id
}

// Inputs returns the node's operands.
func (n *Node) Inputs() []*Node {
	return append([]*Node(nil), n.inputs...)
}

// Attrs returns the convolution attributes of an OpConv2D node.
func (n *Node) Attrs() conv.Conv2DAttrs {
	return n.attrs
}

// String renders the node as "#id op shape".
func (n *Node) String() string {
	switch n.op {
	case OpPlaceholder:
		return fmt.Sprintf("#%d %s %q %v %s", n.id, n.op, n.name, n.shape, n.dtype)
	case OpConv2D:
		return fmt.Sprintf("#%d %s %v %s (variant=%s, padding=%s %v)", n.id, n.op, n.shape, n.dtype,
			n.attrs.Variant, n.attrs.Algorithm, n.attrs.Paddings)
	case OpActivate:
		return fmt.Sprintf("#%d %s(%s) %v %s", n.id, n.op, n.activation, n.shape, n.dtype)
	}
	return fmt.Sprintf("#%d %s %v %s", n.id, n.op, n.shape, n.dtype)
}
