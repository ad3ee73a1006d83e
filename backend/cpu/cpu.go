// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/seqconv/internal/backend/cpu"
	"github.com/born-ml/seqconv/internal/parallel"
	"github.com/born-ml/seqconv/nn"
)

// Backend represents the CPU backend implementation.
//
// It computes every operation immediately and returns a new tensor; inputs
// are never modified.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend can run layers and the dispatcher.
var _ nn.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option = internalcpu.Option

// ParallelConfig controls how the backend fans work out across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig uses one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// WithParallel overrides the worker configuration.
func WithParallel(cfg ParallelConfig) Option {
	return internalcpu.WithParallel(cfg)
}

// Sequential returns a configuration that runs everything on the calling
// goroutine.
func Sequential() ParallelConfig {
	return parallel.Sequential()
}

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/seqconv/backend/cpu"
//	    "github.com/born-ml/seqconv/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    out, err := nn.Convolve1D(backend, input, weight, nn.Conv1DOptions{Padding: nn.PaddingMode("SAME")})
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}
