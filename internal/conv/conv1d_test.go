package conv

import (
	"fmt"
	"testing"

	"github.com/born-ml/seqconv/internal/padding"
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shaped is a Value that carries only a shape.
type shaped tensor.Shape

func (s shaped) Shape() tensor.Shape { return tensor.Shape(s) }

// recorder is an Executor that computes shapes and logs every call.
type recorder struct {
	calls   []string
	attrs   []Conv2DAttrs
	convErr error
}

var _ Executor = (*recorder)(nil)

func (r *recorder) Conv2D(input, filter tensor.Value, attrs Conv2DAttrs) (tensor.Value, error) {
	r.calls = append(r.calls, fmt.Sprintf("conv2d%v%v", input.Shape(), filter.Shape()))
	r.attrs = append(r.attrs, attrs)
	if r.convErr != nil {
		return nil, r.convErr
	}
	g, err := InferGeometry(input.Shape(), filter.Shape(), attrs)
	if err != nil {
		return nil, err
	}
	return shaped(g.OutputShape(attrs.Layout)), nil
}

func (r *recorder) Unsqueeze(x tensor.Value, axis int) (tensor.Value, error) {
	r.calls = append(r.calls, fmt.Sprintf("unsqueeze%v@%d", x.Shape(), axis))
	s, err := x.Shape().Insert(axis)
	return shaped(s), err
}

func (r *recorder) Squeeze(x tensor.Value, axis int) (tensor.Value, error) {
	r.calls = append(r.calls, fmt.Sprintf("squeeze%v@%d", x.Shape(), axis))
	s, err := x.Shape().Remove(axis)
	return shaped(s), err
}

func (r *recorder) AddBias(x, bias tensor.Value, axis int) (tensor.Value, error) {
	r.calls = append(r.calls, fmt.Sprintf("bias@%d", axis))
	return x, nil
}

func (r *recorder) Activate(x tensor.Value, name string) (tensor.Value, error) {
	r.calls = append(r.calls, "act:"+name)
	return x, nil
}

func TestConv1D_SamePreservesLength(t *testing.T) {
	exec := &recorder{}
	out, err := Conv1D(exec, shaped{2, 4, 10}, shaped{6, 4, 3}, Options{Padding: padding.Mode("SAME")})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 6, 10}, out.Shape())

	require.Len(t, exec.attrs, 1)
	attrs := exec.attrs[0]
	assert.Equal(t, padding.Same, attrs.Algorithm)
	assert.Equal(t, []int{0, 0}, attrs.Paddings)
	assert.Equal(t, [2]int{1, 1}, attrs.Strides)
	assert.Equal(t, [2]int{1, 1}, attrs.Dilations)
	assert.Equal(t, NCHW, attrs.Layout)
	assert.Equal(t, Standard, attrs.Variant)
}

func TestConv1D_AsymmetricPairs(t *testing.T) {
	exec := &recorder{}
	out, err := Conv1D(exec, shaped{2, 4, 10}, shaped{6, 4, 3}, Options{Padding: padding.Pairs{{1, 2}}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 6, 11}, out.Shape())

	attrs := exec.attrs[0]
	assert.Equal(t, padding.Explicit, attrs.Algorithm)
	assert.Equal(t, []int{0, 0, 1, 2}, attrs.Paddings)
}

func TestConv1D_CallSequence(t *testing.T) {
	tests := []struct {
		format DataFormat
		input  shaped
		want   []string
	}{
		{NCT, shaped{2, 4, 10}, []string{
			"unsqueeze(6, 4, 3)@2",
			"unsqueeze(2, 4, 10)@2",
			"conv2d(2, 4, 1, 10)(6, 4, 1, 3)",
			"bias@1",
			"act:relu",
			"squeeze(2, 6, 1, 8)@2",
		}},
		{NTC, shaped{2, 10, 4}, []string{
			"unsqueeze(6, 4, 3)@2",
			"unsqueeze(2, 10, 4)@1",
			"conv2d(2, 1, 10, 4)(6, 4, 1, 3)",
			"bias@3",
			"act:relu",
			"squeeze(2, 1, 8, 6)@1",
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			exec := &recorder{}
			out, err := Conv1D(exec, tt.input, shaped{6, 4, 3}, Options{
				Bias:       shaped{6},
				Activation: "relu",
				DataFormat: tt.format,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, exec.calls)
			assert.Len(t, out.Shape(), 3)
		})
	}
}

func TestConv1D_NoBiasNoActivation(t *testing.T) {
	exec := &recorder{}
	_, err := Conv1D(exec, shaped{1, 2, 5}, shaped{2, 2, 1}, Options{})
	require.NoError(t, err)
	assert.Len(t, exec.calls, 4, "two lifts, the convolution and one restore")
}

func TestConv1D_VariantSelection(t *testing.T) {
	tests := []struct {
		name     string
		filters  int
		groups   int
		fastPath bool
		want     Variant
	}{
		{"depthwise", 16, 8, false, Depthwise},
		{"fast path keeps standard", 16, 8, true, Standard},
		{"channels != groups", 16, 4, false, Standard},
		{"single group", 16, 1, false, Standard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := NewPlan(tensor.Shape{1, 8, 20}, tensor.Shape{tt.filters, 8 / tt.groups, 3},
				Options{Groups: tt.groups, UseFastPath: tt.fastPath})
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.Attrs.Variant)
			assert.Equal(t, tt.groups, plan.Attrs.Groups)
		})
	}
}

func TestConv1D_ValidationBeforeTensorWork(t *testing.T) {
	tests := []struct {
		name   string
		input  shaped
		weight shaped
		opts   Options
		want   error
		msg    []string
	}{
		{"channels not divisible", shaped{1, 5, 10}, shaped{4, 2, 3}, Options{Groups: 2}, ErrInvalidArgument,
			[]string{"5", "groups is 2"}},
		{"filters not divisible", shaped{1, 4, 10}, shaped{5, 2, 3}, Options{Groups: 2}, ErrInvalidArgument,
			[]string{"number of filters is 5"}},
		{"bad format", shaped{1, 4, 10}, shaped{4, 4, 3}, Options{DataFormat: "NCHW"}, ErrInvalidArgument,
			[]string{"NCHW"}},
		{"dynamic channel", shaped{1, tensor.Dynamic, 10}, shaped{4, 4, 3}, Options{}, ErrInvalidArgument,
			[]string{"(1, ?, 10)"}},
		{"negative stride", shaped{1, 4, 10}, shaped{4, 4, 3}, Options{Stride: -1}, ErrInvalidArgument, nil},
		{"rank 4 input", shaped{1, 4, 10, 1}, shaped{4, 4, 3}, Options{}, ErrInvalidArgument, nil},
		{"rank 2 weight", shaped{1, 4, 10}, shaped{4, 12}, Options{}, ErrInvalidArgument, nil},
		{"bias shape", shaped{1, 4, 10}, shaped{4, 4, 3}, Options{Bias: shaped{3}}, ErrInvalidArgument, nil},
		{"unknown activation", shaped{1, 4, 10}, shaped{4, 4, 3}, Options{Activation: "wobble"}, ErrInvalidArgument,
			[]string{"wobble"}},
		{"padding mode", shaped{1, 4, 10}, shaped{4, 4, 3}, Options{Padding: padding.Mode("full")},
			padding.ErrInvalidPaddingMode, nil},
		{"padding shape", shaped{1, 4, 10}, shaped{4, 4, 3}, Options{Padding: padding.List{1, 2, 3}},
			padding.ErrInvalidPaddingShape, nil},
		{"batch padding", shaped{1, 4, 10}, shaped{4, 4, 3}, Options{Padding: padding.Pairs{{1, 0}, {0, 0}, {0, 0}}},
			padding.ErrNonZeroBatchOrChannelPadding, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &recorder{}
			_, err := Conv1D(exec, tt.input, tt.weight, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
			for _, m := range tt.msg {
				assert.Contains(t, err.Error(), m)
			}
			assert.Empty(t, exec.calls, "no executor call may happen before validation passes")
		})
	}
}

func TestConv1D_ExecutorErrorsPassThrough(t *testing.T) {
	boom := fmt.Errorf("unsupported dtype")
	exec := &recorder{convErr: boom}
	_, err := Conv1D(exec, shaped{1, 4, 10}, shaped{4, 4, 3}, Options{})
	assert.Same(t, boom, err)
}

func TestConv1D_NilOperands(t *testing.T) {
	_, err := Conv1D(&recorder{}, nil, shaped{4, 4, 3}, Options{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewPlan_Defaults(t *testing.T) {
	plan, err := NewPlan(tensor.Shape{2, 10, 4}, tensor.Shape{6, 4, 3}, Options{
		DataFormat: NTC,
		Padding:    padding.List{2},
		Stride:     2,
		Dilation:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, plan.ChannelAxis)
	assert.Equal(t, 4, plan.Channels)
	assert.Equal(t, 6, plan.Filters)
	assert.Equal(t, []int{2}, plan.Padding)
	assert.Equal(t, []int{0, 2}, plan.Attrs.Paddings)
	assert.Equal(t, [2]int{1, 2}, plan.Attrs.Strides)
	assert.Equal(t, [2]int{1, 3}, plan.Attrs.Dilations)
	assert.Equal(t, NHWC, plan.Attrs.Layout)
	assert.Equal(t, 1, plan.InputAxis)
	assert.Equal(t, 2, plan.WeightAxis)
	assert.Equal(t, 3, plan.BiasAxis)
}

func TestParseDataFormat(t *testing.T) {
	for in, want := range map[string]DataFormat{
		"NCT": NCT, "ntc": NTC, "channels-first": NCT, "channels_last": NTC,
	} {
		got, err := ParseDataFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDataFormat("NHWC")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
