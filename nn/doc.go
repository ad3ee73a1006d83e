// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides 1-D convolution for sequence models.
//
// # Overview
//
// This package contains:
//   - Conv1D: a convolution layer owning its weight and bias
//   - Activation and Sequential: composing layers into a stack
//   - Convolve1D: the functional form, run on any Executor
//   - Padding descriptors and NormalizePadding
//   - Initialization: HeNormal, Zeros
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/seqconv/backend/cpu"
//	    "github.com/born-ml/seqconv/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    layer, err := nn.NewConv1D(nn.Conv1DConfig{
//	        InChannels:  16,
//	        OutChannels: 32,
//	        KernelSize:  3,
//	        Padding:     nn.PaddingMode("SAME"),
//	        Activation:  "relu",
//	    }, backend)
//
//	    output, err := layer.Forward(input) // [batch, 32, length]
//	}
//
// # Padding
//
// Padding accepts several notations, all normalized before the convolution:
//
//	nn.PaddingMode("same")                   // or "valid"
//	nn.PaddingScalar(1)                      // 1 on both sides
//	nn.PaddingList{1, 2}                     // before=1, after=2
//	nn.PaddingPairs{{1, 2}}                  // the same, as a pair
//	nn.PaddingPairs{{0, 0}, {0, 0}, {1, 2}}  // batch, channel, time (NCT)
//
// # Data Formats
//
// Inputs are NCT ([batch, channels, time]) by default; NTC
// ([batch, time, channels]) is selected with DataFormat.
//
// # Executors
//
// Convolve1D runs on any Executor: the CPU backend computes immediately and
// the graph builder records the computation for later runs.
package nn
