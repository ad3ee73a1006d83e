package graph

import (
	"sync"

	"github.com/born-ml/seqconv/internal/activation"
	"github.com/born-ml/seqconv/internal/conv"
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
)

// Graph errors.
var (
	// ErrForeignNode is returned when an operand is not a node of this builder.
	ErrForeignNode = errors.New("value does not belong to this graph")

	// ErrFeedMismatch is returned by Run when a placeholder has no feed or
	// the fed tensor disagrees with the placeholder's shape or dtype.
	ErrFeedMismatch = errors.New("feed does not match placeholder")
)

var _ conv.Executor = (*Builder)(nil)

// Builder records operations as nodes instead of computing them.
//
// Nodes are appended in execution order, so every node's inputs precede it.
// Shapes are inferred when a node is recorded; unknown dimensions stay
// tensor.Dynamic until Run.
type Builder struct {
	mu    sync.Mutex
	nodes []*Node
}

// New creates an empty graph builder.
func New() *Builder {
	return &Builder{nodes: make([]*Node, 0, 16)}
}

// Len returns the number of recorded nodes.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.nodes)
}

// Nodes returns the recorded nodes in execution order.
func (b *Builder) Nodes() []*Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Node(nil), b.nodes...)
}

// Placeholder records a graph input fed at Run. The shape may contain
// tensor.Dynamic dimensions.
func (b *Builder) Placeholder(name string, shape tensor.Shape, dtype tensor.DataType) (*Node, error) {
	if name == "" {
		return nil, errors.New("placeholder: name is required")
	}
	if err := shape.ValidateSymbolic(); err != nil {
		return nil, errors.Wrapf(err, "placeholder %q", name)
	}
	if dtype != tensor.Float32 && dtype != tensor.Float64 {
		return nil, errors.Errorf("placeholder %q: unsupported dtype %s", name, dtype)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, n := range b.nodes {
		if n.op == OpPlaceholder && n.name == name {
			return nil, errors.Errorf("placeholder %q already defined as node #%d", name, n.id)
		}
	}
	return b.appendLocked(&Node{op: OpPlaceholder, name: name, shape: shape.Clone(), dtype: dtype}), nil
}

// Constant records a concrete tensor. The tensor is copied.
func (b *Builder) Constant(raw *tensor.RawTensor) *Node {
	value := raw.Clone()
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.appendLocked(&Node{op: OpConstant, value: value, shape: value.Shape().Clone(), dtype: value.DType()})
}

// Conv2D records a 2-D convolution. Shape checks are those of the CPU
// primitive, applied to the symbolic shapes.
func (b *Builder) Conv2D(input, filter tensor.Value, attrs conv.Conv2DAttrs) (tensor.Value, error) {
	in, err := b.node("conv2d", input)
	if err != nil {
		return nil, err
	}
	k, err := b.node("conv2d", filter)
	if err != nil {
		return nil, err
	}
	if in.dtype != k.dtype {
		return nil, errors.Errorf("conv2d: input dtype %s != filter dtype %s", in.dtype, k.dtype)
	}
	g, err := conv.InferGeometry(in.shape, k.shape, attrs)
	if err != nil {
		return nil, err
	}

	attrs.Paddings = append([]int(nil), attrs.Paddings...)
	return b.append(&Node{
		op:     OpConv2D,
		inputs: []*Node{in, k},
		shape:  g.OutputShape(attrs.Layout),
		dtype:  in.dtype,
		attrs:  attrs,
	}), nil
}

// Unsqueeze records the insertion of a size-1 axis.
func (b *Builder) Unsqueeze(x tensor.Value, axis int) (tensor.Value, error) {
	n, err := b.node("unsqueeze", x)
	if err != nil {
		return nil, err
	}
	shape, err := n.shape.Insert(axis)
	if err != nil {
		return nil, errors.Wrap(err, "unsqueeze")
	}
	return b.append(&Node{op: OpUnsqueeze, inputs: []*Node{n}, shape: shape, dtype: n.dtype, axis: axis}), nil
}

// Squeeze records the removal of a size-1 axis. The axis must be statically 1.
func (b *Builder) Squeeze(x tensor.Value, axis int) (tensor.Value, error) {
	n, err := b.node("squeeze", x)
	if err != nil {
		return nil, err
	}
	shape, err := n.shape.Remove(axis)
	if err != nil {
		return nil, errors.Wrap(err, "squeeze")
	}
	return b.append(&Node{op: OpSqueeze, inputs: []*Node{n}, shape: shape, dtype: n.dtype, axis: axis}), nil
}

// AddBias records a bias add along axis.
func (b *Builder) AddBias(x, bias tensor.Value, axis int) (tensor.Value, error) {
	n, err := b.node("add_bias", x)
	if err != nil {
		return nil, err
	}
	bn, err := b.node("add_bias", bias)
	if err != nil {
		return nil, err
	}
	if n.dtype != bn.dtype {
		return nil, errors.Errorf("add_bias: input dtype %s != bias dtype %s", n.dtype, bn.dtype)
	}
	ax := axis
	if ax < 0 {
		ax += len(n.shape)
	}
	if ax < 0 || ax >= len(n.shape) {
		return nil, errors.Errorf("add_bias: axis %d out of range for shape %v", axis, n.shape)
	}
	if len(bn.shape) != 1 || !(tensor.Shape{n.shape[ax]}).Compatible(bn.shape) {
		return nil, errors.Errorf("add_bias: bias shape %v does not match axis %d of %v", bn.shape, axis, n.shape)
	}
	return b.append(&Node{op: OpAddBias, inputs: []*Node{n, bn}, shape: n.shape.Clone(), dtype: n.dtype, axis: ax}), nil
}

// Activate records an elementwise activation.
func (b *Builder) Activate(x tensor.Value, name string) (tensor.Value, error) {
	n, err := b.node("activate", x)
	if err != nil {
		return nil, err
	}
	if _, ok := activation.Lookup(name); !ok {
		return nil, errors.Errorf("activate: unknown activation %q", name)
	}
	return b.append(&Node{op: OpActivate, inputs: []*Node{n}, shape: n.shape.Clone(), dtype: n.dtype, activation: name}), nil
}

// node unwraps an operand and checks it was recorded here.
func (b *Builder) node(op string, v tensor.Value) (*Node, error) {
	n, ok := v.(*Node)
	if !ok || n == nil {
		return nil, errors.Wrapf(ErrForeignNode, "%s: got %T", op, v)
	}
	if n.builder != b {
		return nil, errors.Wrapf(ErrForeignNode, "%s: node #%d", op, n.id)
	}
	return n, nil
}

func (b *Builder) append(n *Node) *Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.appendLocked(n)
}

func (b *Builder) appendLocked(n *Node) *Node {
	n.builder = b
	n.id = len(b.nodes)
	b.nodes = append(b.nodes, n)
	return n
}
