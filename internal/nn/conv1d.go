package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/seqconv/internal/conv"
	"github.com/born-ml/seqconv/internal/padding"
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
)

// Conv1DConfig describes a Conv1D layer. Zero Stride, Dilation and Groups
// mean 1; a nil Padding means no padding.
type Conv1DConfig struct {
	InChannels  int
	OutChannels int
	KernelSize  int
	Stride      int
	Dilation    int
	Groups      int
	Padding     padding.Descriptor
	Activation  string
	DataFormat  conv.DataFormat
	NoBias      bool

	// FastPath overrides the backend's Accelerated() as the layer's
	// UseFastPath flag.
	FastPath *bool

	// Rand seeds weight initialization. Nil uses the global source.
	Rand *rand.Rand
}

// Conv1D is a 1-D convolutional layer over sequences.
//
// Input shape:  [batch, in_channels, length] (NCT) or [batch, length, in_channels] (NTC)
// Weight shape: [out_channels, in_channels/groups, kernel]
// Bias shape:   [out_channels]
//
// Example:
//
//	layer, err := nn.NewConv1D(nn.Conv1DConfig{
//		InChannels: 16, OutChannels: 32, KernelSize: 3,
//		Padding: padding.Mode("SAME"), Activation: "relu",
//	}, cpu.New())
//	out, err := layer.Forward(input) // [batch, 32, length]
type Conv1D struct {
	cfg         Conv1DConfig
	useFastPath bool

	weight *Parameter
	bias   *Parameter // nil when NoBias

	backend Backend
}

var _ Module = (*Conv1D)(nil)

// NewConv1D creates a Conv1D layer with He-normal weights and a zero bias.
//
// The configuration is checked by planning a convolution over a sample input,
// so every error a Forward call could raise for a well-shaped input is raised
// here instead.
func NewConv1D(cfg Conv1DConfig, backend Backend) (*Conv1D, error) {
	if backend == nil {
		return nil, invalidf("conv1d: backend is required")
	}
	if cfg.InChannels <= 0 || cfg.OutChannels <= 0 {
		return nil, invalidf("conv1d: invalid channels in=%d, out=%d", cfg.InChannels, cfg.OutChannels)
	}
	if cfg.KernelSize <= 0 {
		return nil, invalidf("conv1d: invalid kernel size %d", cfg.KernelSize)
	}
	groups := cfg.Groups
	if groups == 0 {
		groups = 1
	}
	if groups < 0 || cfg.InChannels%groups != 0 {
		return nil, invalidf("conv1d: in_channels %d must be divisible by groups %d", cfg.InChannels, groups)
	}

	c := &Conv1D{cfg: cfg, useFastPath: backend.Accelerated(), backend: backend}
	if cfg.FastPath != nil {
		c.useFastPath = *cfg.FastPath
	}

	weightShape := tensor.Shape{cfg.OutChannels, cfg.InChannels / groups, cfg.KernelSize}
	if _, err := conv.NewPlan(c.sampleInput(tensor.Dynamic), weightShape, c.options()); err != nil {
		return nil, err
	}

	// fan_in follows the layer's channel count, not the per-group count.
	c.weight = NewParameter("conv1d.weight", HeNormal(cfg.InChannels*cfg.KernelSize, weightShape, cfg.Rand))
	if !cfg.NoBias {
		c.bias = NewParameter("conv1d.bias", Zeros(tensor.Shape{cfg.OutChannels}))
	}
	return c, nil
}

// Forward convolves input with the layer's weight on the layer's backend,
// then adds the bias and applies the activation.
func (c *Conv1D) Forward(input tensor.Value) (tensor.Value, error) {
	return conv.Conv1D(c.backend, input, c.weight.Tensor(), c.Options())
}

// Options returns the dispatcher options the layer runs with, bias included.
// Callers executing the layer on another executor replace Bias with their own
// value of it.
func (c *Conv1D) Options() conv.Options {
	opts := c.options()
	if c.bias != nil {
		opts.Bias = c.bias.Tensor()
	}
	return opts
}

func (c *Conv1D) options() conv.Options {
	return conv.Options{
		Padding:     c.cfg.Padding,
		Stride:      c.cfg.Stride,
		Dilation:    c.cfg.Dilation,
		Groups:      c.cfg.Groups,
		UseFastPath: c.useFastPath,
		Activation:  c.cfg.Activation,
		DataFormat:  c.cfg.DataFormat,
	}
}

func (c *Conv1D) sampleInput(length int) tensor.Shape {
	if c.cfg.DataFormat.ChannelLast() {
		return tensor.Shape{1, length, c.cfg.InChannels}
	}
	return tensor.Shape{1, c.cfg.InChannels, length}
}

// OutputLength computes the output length for an input of the given length.
func (c *Conv1D) OutputLength(length int) (int, error) {
	if length < 1 {
		return 0, invalidf("conv1d: invalid input length %d", length)
	}
	plan, err := conv.NewPlan(c.sampleInput(length), c.weight.Tensor().Shape(), c.options())
	if err != nil {
		return 0, err
	}
	out, err := plan.Attrs.OutputSpatial([2]int{1, length}, [2]int{1, c.cfg.KernelSize})
	if err != nil {
		return 0, errors.Wrapf(err, "conv1d: length %d", length)
	}
	return out[1], nil
}

// Parameters returns all trainable parameters.
func (c *Conv1D) Parameters() []*Parameter {
	if c.bias != nil {
		return []*Parameter{c.weight, c.bias}
	}
	return []*Parameter{c.weight}
}

// Weight returns the weight parameter.
func (c *Conv1D) Weight() *Parameter {
	return c.weight
}

// Bias returns the bias parameter, or nil.
func (c *Conv1D) Bias() *Parameter {
	return c.bias
}

// UseFastPath reports the fast-path flag passed to the dispatcher.
func (c *Conv1D) UseFastPath() bool {
	return c.useFastPath
}

// String returns a string representation of the layer.
func (c *Conv1D) String() string {
	pad := "0"
	if c.cfg.Padding != nil {
		pad = c.cfg.Padding.String()
	}
	s := fmt.Sprintf("Conv1D(in_channels=%d, out_channels=%d, kernel_size=%d, stride=%d, padding=%s, dilation=%d, groups=%d, bias=%v",
		c.cfg.InChannels, c.cfg.OutChannels, c.cfg.KernelSize,
		orOne(c.cfg.Stride), pad, orOne(c.cfg.Dilation), orOne(c.cfg.Groups), c.bias != nil)
	if c.cfg.Activation != "" {
		s += ", activation=" + c.cfg.Activation
	}
	return s + ")"
}

func orOne(v int) int {
	if v == 0 {
		return 1
	}
	return v
}

func invalidf(format string, args ...any) error {
	return errors.Wrapf(conv.ErrInvalidArgument, format, args...)
}
