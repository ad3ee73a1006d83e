package conv

import (
	"github.com/born-ml/seqconv/internal/activation"
	"github.com/born-ml/seqconv/internal/padding"
	"github.com/born-ml/seqconv/internal/tensor"
)

// Options configures Conv1D. Zero Stride, Dilation and Groups mean 1, a nil
// Padding means Scalar(0) and an empty DataFormat means NCT.
type Options struct {
	Bias        tensor.Value // rank 1 [filters], optional
	Padding     padding.Descriptor
	Stride      int
	Dilation    int
	Groups      int
	UseFastPath bool   // prefer the accelerated standard kernel over depthwise
	Activation  string // registered activation tag, optional
	DataFormat  DataFormat
}

// Plan is everything Conv1D decides before touching a tensor.
type Plan struct {
	Format      DataFormat
	ChannelAxis int // channel axis of the rank-3 input
	Channels    int
	Filters     int
	Padding     []int // canonical 1-D padding, length 1 or 2
	Attrs       Conv2DAttrs
	InputAxis   int // unit axis inserted into the input
	WeightAxis  int // unit axis inserted into the weight
	BiasAxis    int // channel axis of the rank-4 output
}

// NewPlan validates a Conv1D call and resolves its canonical 2-D attributes.
// Only shapes are inspected, so it works the same for concrete and symbolic
// values.
func NewPlan(input, weight tensor.Shape, opts Options) (*Plan, error) {
	format, err := opts.DataFormat.resolve()
	if err != nil {
		return nil, err
	}
	stride, dilation, groups := orOne(opts.Stride), orOne(opts.Dilation), orOne(opts.Groups)
	if stride < 1 || dilation < 1 || groups < 1 {
		return nil, invalidf("stride (%d), dilation (%d) and groups (%d) must be positive", stride, dilation, groups)
	}
	if len(input) != 3 {
		return nil, invalidf("input should be a 3-D %s tensor, received shape %v", format, input)
	}
	if len(weight) != 3 {
		return nil, invalidf("weight should be a 3-D [filters, channels/groups, kernel] tensor, received shape %v", weight)
	}

	channelAxis := 1
	if format.ChannelLast() {
		channelAxis = 2
	}
	channels, filters := input[channelAxis], weight[0]
	if channels == tensor.Dynamic || channels <= 0 {
		return nil, invalidf("the channel dimension of the input (%v) should be defined, received %d", input, channels)
	}
	if filters == tensor.Dynamic || filters <= 0 {
		return nil, invalidf("the number of filters of the weight (%v) should be defined, received %d", weight, filters)
	}
	if channels%groups != 0 {
		return nil, invalidf("the channel of input must be divisible by groups, received: the channel of input is %d, "+
			"the shape of input is %v, the groups is %d", channels, input, groups)
	}
	if filters%groups != 0 {
		return nil, invalidf("the number of filters must be divisible by groups, received: the number of filters is %d, "+
			"the shape of weight is %v, the groups is %d", filters, weight, groups)
	}
	if opts.Bias != nil {
		if b := opts.Bias.Shape(); len(b) != 1 || (b[0] != filters && b[0] != tensor.Dynamic) {
			return nil, invalidf("bias should have shape (%d), received %v", filters, b)
		}
	}
	if opts.Activation != "" {
		if _, ok := activation.Lookup(opts.Activation); !ok {
			return nil, invalidf("unknown activation %q, registered: %v", opts.Activation, activation.Names())
		}
	}

	desc := opts.Padding
	if desc == nil {
		desc = padding.Scalar(0)
	}
	pads, alg, err := padding.Normalize(desc, format.ChannelLast(), 1)
	if err != nil {
		return nil, err
	}

	variant := Standard
	if channels == groups && filters%channels == 0 && !opts.UseFastPath {
		variant = Depthwise
	}

	lifter := newRankLifter(nil, format)
	layout := format.Layout2D()
	return &Plan{
		Format:      format,
		ChannelAxis: channelAxis,
		Channels:    channels,
		Filters:     filters,
		Padding:     pads,
		Attrs: Conv2DAttrs{
			Strides:     [2]int{1, stride},
			Paddings:    liftPads(pads),
			Dilations:   [2]int{1, dilation},
			Groups:      groups,
			Algorithm:   alg,
			Variant:     variant,
			Layout:      layout,
			UseFastPath: opts.UseFastPath,
		},
		InputAxis:  lifter.inputAxis,
		WeightAxis: lifter.weightAxis,
		BiasAxis:   layout.ChannelAxis(4),
	}, nil
}

// Conv1D convolves a rank-3 input with a rank-3 weight
// [filters, channels/groups, kernel] through exec's 2-D primitive, then adds
// the optional bias and applies the optional activation. The result has the
// input's layout.
//
// Validation failures wrap ErrInvalidArgument or one of the padding errors and
// happen before exec is called. Errors from exec are returned unchanged.
func Conv1D(exec Executor, input, weight tensor.Value, opts Options) (tensor.Value, error) {
	if input == nil || weight == nil {
		return nil, invalidf("input and weight are required")
	}
	plan, err := NewPlan(input.Shape(), weight.Shape(), opts)
	if err != nil {
		return nil, err
	}
	return plan.Run(exec, input, weight, opts.Bias, opts.Activation)
}

// Run executes a plan. Callers normally go through Conv1D.
func (p *Plan) Run(exec Executor, input, weight, bias tensor.Value, act string) (tensor.Value, error) {
	lifter := newRankLifter(exec, p.Format)
	in4, w4, err := lifter.lift(input, weight)
	if err != nil {
		return nil, err
	}

	out, err := exec.Conv2D(in4, w4, p.Attrs)
	if err != nil {
		return nil, err
	}
	if bias != nil {
		if out, err = exec.AddBias(out, bias, p.BiasAxis); err != nil {
			return nil, err
		}
	}
	if act != "" {
		if out, err = exec.Activate(out, act); err != nil {
			return nil, err
		}
	}
	return lifter.restore(out)
}

func orOne(v int) int {
	if v == 0 {
		return 1
	}
	return v
}
