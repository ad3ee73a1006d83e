// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"errors"
	"testing"

	"github.com/born-ml/seqconv/backend/cpu"
	"github.com/born-ml/seqconv/graph"
	"github.com/born-ml/seqconv/nn"
	"github.com/born-ml/seqconv/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestModuleInterface verifies that layers implement Module.
func TestModuleInterface(t *testing.T) {
	layer, err := nn.NewConv1D(nn.Conv1DConfig{InChannels: 2, OutChannels: 3, KernelSize: 1}, cpu.New())
	require.NoError(t, err)

	var module nn.Module = layer
	input, err := tensor.NewRaw(tensor.Shape{1, 2, 5}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	out, err := module.Forward(input)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 3, 5}, out.Shape())
	assert.Len(t, module.Parameters(), 2)
}

func TestNormalizePadding(t *testing.T) {
	tests := []struct {
		name        string
		padding     nn.Padding
		channelLast bool
		rank        int
		want        []int
		alg         nn.PaddingAlgorithm
	}{
		{"same", nn.PaddingMode("same"), false, 1, []int{0}, nn.PaddingSame},
		{"valid", nn.PaddingMode("VALID"), false, 2, []int{0, 0}, nn.PaddingValid},
		{"symmetric pairs", nn.PaddingList{1, 1, 2, 2}, false, 2, []int{1, 2}, nn.PaddingExplicit},
		{"asymmetric pairs", nn.PaddingList{1, 2, 2, 2}, false, 2, []int{1, 2, 2, 2}, nn.PaddingExplicit},
		{"full tensor NHWC", nn.PaddingPairs{{0, 0}, {1, 1}, {2, 2}, {0, 0}}, true, 2, []int{1, 2}, nn.PaddingExplicit},
		{"scalar", nn.PaddingScalar(3), false, 2, []int{3, 3}, nn.PaddingExplicit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pads, alg, err := nn.NormalizePadding(tt.padding, tt.channelLast, tt.rank)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pads)
			assert.Equal(t, tt.alg, alg)
		})
	}

	_, _, err := nn.NormalizePadding(nn.PaddingMode("FULL"), false, 1)
	assert.True(t, errors.Is(err, nn.ErrInvalidPaddingMode))
	_, _, err = nn.NormalizePadding(nn.PaddingPairs{{1, 0}, {0, 0}, {1, 1}}, false, 1)
	assert.True(t, errors.Is(err, nn.ErrNonZeroBatchOrChannelPadding))
	_, _, err = nn.NormalizePadding(nn.PaddingList{1, 2, 3}, false, 2)
	assert.True(t, errors.Is(err, nn.ErrInvalidPaddingShape))
}

func TestConvolve1D_ImmediateAndDeferred(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5}, tensor.Shape{1, 1, 5})
	require.NoError(t, err)
	w, err := tensor.FromSlice([]float32{1, 0, -1}, tensor.Shape{1, 1, 3})
	require.NoError(t, err)
	opts := nn.Conv1DOptions{Padding: nn.PaddingMode("same")}

	out, err := nn.Convolve1D(cpu.New(), x, w, opts)
	require.NoError(t, err)
	// cross-correlation with [1, 0, -1] and one zero on each side
	assert.Equal(t, []float32{-2, -2, -2, -2, 4}, out.(*tensor.RawTensor).AsFloat32())

	g := graph.New()
	in, err := g.Placeholder("x", tensor.Shape{tensor.Dynamic, 1, 5}, tensor.Float32)
	require.NoError(t, err)
	y, err := nn.Convolve1D(g, in, g.Constant(w), opts)
	require.NoError(t, err)
	got, err := g.Run(cpu.New(), y.(*graph.Node), graph.Feeds{"x": x})
	require.NoError(t, err)
	assert.Equal(t, out.(*tensor.RawTensor).AsFloat32(), got.AsFloat32())
}

func TestPlanConv1D(t *testing.T) {
	plan, err := nn.PlanConv1D(tensor.Shape{8, 100, 4}, tensor.Shape{4, 1, 3}, nn.Conv1DOptions{
		Groups:     4,
		Padding:    nn.PaddingPairs{{1, 2}},
		DataFormat: nn.NTC,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 2}, plan.Attrs.Paddings)
	assert.Equal(t, 1, plan.InputAxis)

	_, err = nn.PlanConv1D(tensor.Shape{8, 3, 100}, tensor.Shape{4, 1, 3}, nn.Conv1DOptions{Groups: 2})
	assert.True(t, errors.Is(err, nn.ErrInvalidArgument))
}

func TestParsePadding(t *testing.T) {
	d, err := nn.ParsePadding("[[1, 2]]")
	require.NoError(t, err)
	assert.Equal(t, nn.PaddingPairs{{1, 2}}, d)
}
