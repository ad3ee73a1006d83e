// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for 1-D convolution.
//
// # Overview
//
// This package implements the immediate executor with:
//   - Im2col + gonum BLAS GEMM for standard (grouped) convolution
//   - A direct kernel for depthwise convolution
//   - NCHW and NHWC layouts, strides, dilations and asymmetric padding
//   - Float32 and Float64 support
//   - Batch processing across goroutines
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
//	    layer, err := nn.NewConv1D(nn.Conv1DConfig{InChannels: 4, OutChannels: 8, KernelSize: 3}, backend)
//	    out, err := layer.Forward(input)
//	}
//
// # Performance
//
// Accelerated() reports whether the host has AVX2+FMA (or NEON on arm64);
// layers use it to choose the standard kernel over the depthwise one.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation
// is isolated and does not share mutable state.
package cpu
