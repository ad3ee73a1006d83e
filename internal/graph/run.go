package graph

import (
	"github.com/born-ml/seqconv/internal/conv"
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
)

// Feeds maps placeholder names to the tensors bound to them for one Run.
type Feeds map[string]*tensor.RawTensor

// Run computes out by replaying the nodes it depends on, in recording order,
// on an immediate executor. Unused placeholders need no feed.
//
// Feeds are checked against their placeholders first (ErrFeedMismatch).
// Errors from exec are returned unchanged. Run does not modify the builder,
// so a graph can be run any number of times with different feeds.
func (b *Builder) Run(exec conv.Executor, out *Node, feeds Feeds) (*tensor.RawTensor, error) {
	if exec == nil {
		return nil, errors.New("run: executor is required")
	}
	if _, err := b.node("run", out); err != nil {
		return nil, err
	}

	b.mu.Lock()
	nodes := b.nodes[:out.id+1]
	b.mu.Unlock()

	needed := reachable(nodes, out)
	if err := checkFeeds(nodes, needed, feeds); err != nil {
		return nil, err
	}

	values := make([]tensor.Value, len(nodes))
	for _, n := range nodes {
		if !needed[n.id] {
			continue
		}
		v, err := eval(exec, n, values, feeds)
		if err != nil {
			return nil, err
		}
		values[n.id] = v
	}

	result, ok := values[out.id].(*tensor.RawTensor)
	if !ok {
		return nil, errors.Errorf("run: executor produced %T, want *tensor.RawTensor", values[out.id])
	}
	if out.op == OpConstant || out.op == OpPlaceholder {
		return result.Clone(), nil
	}
	return result, nil
}

// reachable marks out and everything it depends on.
func reachable(nodes []*Node, out *Node) []bool {
	needed := make([]bool, len(nodes))
	needed[out.id] = true
	for i := out.id; i >= 0; i-- {
		if !needed[i] {
			continue
		}
		for _, in := range nodes[i].inputs {
			needed[in.id] = true
		}
	}
	return needed
}

func checkFeeds(nodes []*Node, needed []bool, feeds Feeds) error {
	for _, n := range nodes {
		if n.op != OpPlaceholder || !needed[n.id] {
			continue
		}
		t, ok := feeds[n.name]
		if !ok || t == nil {
			return errors.Wrapf(ErrFeedMismatch, "no tensor fed to placeholder %q", n.name)
		}
		if !n.shape.Compatible(t.Shape()) {
			return errors.Wrapf(ErrFeedMismatch, "placeholder %q has shape %v, fed %v", n.name, n.shape, t.Shape())
		}
		if t.DType() != n.dtype {
			return errors.Wrapf(ErrFeedMismatch, "placeholder %q has dtype %s, fed %s", n.name, n.dtype, t.DType())
		}
	}
	return nil
}

func eval(exec conv.Executor, n *Node, values []tensor.Value, feeds Feeds) (tensor.Value, error) {
	in := func(i int) tensor.Value { return values[n.inputs[i].id] }

	switch n.op {
	case OpPlaceholder:
		return feeds[n.name], nil
	case OpConstant:
		return n.value, nil
	case OpConv2D:
		attrs := n.attrs
		attrs.Paddings = append([]int(nil), attrs.Paddings...)
		return exec.Conv2D(in(0), in(1), attrs)
	case OpUnsqueeze:
		return exec.Unsqueeze(in(0), n.axis)
	case OpSqueeze:
		return exec.Squeeze(in(0), n.axis)
	case OpAddBias:
		return exec.AddBias(in(0), in(1), n.axis)
	case OpActivate:
		return exec.Activate(in(0), n.activation)
	default:
		panic("graph: unknown op " + string(n.op))
	}
}
