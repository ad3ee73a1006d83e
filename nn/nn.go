// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/seqconv/internal/activation"
	"github.com/born-ml/seqconv/internal/conv"
	"github.com/born-ml/seqconv/internal/nn"
	"github.com/born-ml/seqconv/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Backend is an immediate executor that layers compute on.
type Backend = nn.Backend

// Parameter is a named tensor owned by a layer.
type Parameter = nn.Parameter

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter(name string, t *tensor.RawTensor) *Parameter {
	return nn.NewParameter(name, t)
}

// Layers

// Conv1DConfig describes a Conv1D layer.
type Conv1DConfig = nn.Conv1DConfig

// Conv1D is a 1-D convolutional layer.
type Conv1D = nn.Conv1D

// NewConv1D creates a Conv1D layer with He-normal weights and a zero bias.
//
// Example:
//
//	backend := cpu.New()
//	layer, err := nn.NewConv1D(nn.Conv1DConfig{InChannels: 1, OutChannels: 8, KernelSize: 5}, backend)
func NewConv1D(cfg Conv1DConfig, backend Backend) (*Conv1D, error) {
	return nn.NewConv1D(cfg, backend)
}

// Sequential chains modules, each output feeding the next module.
type Sequential = nn.Sequential

// NewSequential creates a new Sequential container.
//
// Example:
//
//	model := nn.NewSequential(conv1, relu, conv2)
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Activation is a parameter-free module applying a registered activation.
type Activation = nn.Activation

// NewActivation creates an activation module, e.g. nn.NewActivation("relu", backend).
func NewActivation(name string, backend Backend) (*Activation, error) {
	return nn.NewActivation(name, backend)
}

// Functional API

// Executor runs or records the operations of a convolution.
type Executor = conv.Executor

// Conv1DOptions configures Convolve1D.
type Conv1DOptions = conv.Options

// Conv1DPlan is the resolved form of a Convolve1D call.
type Conv1DPlan = conv.Plan

// Conv2DAttrs are the canonical attributes handed to the 2-D primitive.
type Conv2DAttrs = conv.Conv2DAttrs

// DataFormat is the layout of a rank-3 sequence tensor.
type DataFormat = conv.DataFormat

// Sequence layouts.
const (
	NCT = conv.NCT
	NTC = conv.NTC
)

// ParseDataFormat accepts NCT, NTC, channels_first and channels_last.
func ParseDataFormat(s string) (DataFormat, error) {
	return conv.ParseDataFormat(s)
}

// ErrInvalidArgument is wrapped by every argument validation failure.
var ErrInvalidArgument = conv.ErrInvalidArgument

// Convolve1D convolves input [batch, channels, time] (or NTC) with weight
// [filters, channels/groups, kernel] on exec, adding the optional bias and
// applying the optional activation.
//
// Example:
//
//	out, err := nn.Convolve1D(cpu.New(), x, w, nn.Conv1DOptions{
//	    Padding: nn.PaddingMode("SAME"),
//	    Groups:  2,
//	})
func Convolve1D(exec Executor, input, weight tensor.Value, opts Conv1DOptions) (tensor.Value, error) {
	return conv.Conv1D(exec, input, weight, opts)
}

// PlanConv1D validates a Convolve1D call from shapes alone and returns its
// canonical attributes without executing anything.
func PlanConv1D(input, weight tensor.Shape, opts Conv1DOptions) (*Conv1DPlan, error) {
	return conv.NewPlan(input, weight, opts)
}

// Initialization

// HeNormal draws float32 weights from N(0, 2/fanIn).
func HeNormal(fanIn int, shape tensor.Shape) *tensor.RawTensor {
	return nn.HeNormal(fanIn, shape, nil)
}

// Zeros creates a float32 tensor filled with zeros.
func Zeros(shape tensor.Shape) *tensor.RawTensor {
	return nn.Zeros(shape)
}

// Activations

// ActivationFunc is an elementwise activation.
type ActivationFunc = activation.Func

// RegisterActivation adds or replaces an activation tag.
func RegisterActivation(name string, f ActivationFunc) {
	activation.Register(name, f)
}

// Activations returns the registered activation tags.
func Activations() []string {
	return activation.Names()
}
