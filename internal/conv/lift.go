package conv

import "github.com/born-ml/seqconv/internal/tensor"

// rankLifter turns the rank-3 problem into a rank-4 one with a unit height
// axis and back. It is the only place that knows the primitive lacks a 1-D
// form.
type rankLifter struct {
	exec       Executor
	inputAxis  int // unit axis inserted into the input and removed from the output
	weightAxis int // unit axis inserted into the weight
}

func newRankLifter(exec Executor, format DataFormat) rankLifter {
	l := rankLifter{exec: exec, inputAxis: 2, weightAxis: 2}
	if format.ChannelLast() {
		// [N, T, C] -> [N, 1, T, C]
		l.inputAxis = 1
	}
	return l
}

func (l rankLifter) lift(input, weight tensor.Value) (in4, w4 tensor.Value, err error) {
	if w4, err = l.exec.Unsqueeze(weight, l.weightAxis); err != nil {
		return nil, nil, err
	}
	if in4, err = l.exec.Unsqueeze(input, l.inputAxis); err != nil {
		return nil, nil, err
	}
	return in4, w4, nil
}

func (l rankLifter) restore(out tensor.Value) (tensor.Value, error) {
	return l.exec.Squeeze(out, l.inputAxis)
}

// liftPads prepends the unit axis' zero padding to the canonical 1-D padding.
func liftPads(pads []int) []int {
	if len(pads) == 1 {
		return []int{0, pads[0]}
	}
	return append([]int{0, 0}, pads...)
}
