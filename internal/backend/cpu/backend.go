// Package cpu is the immediate executor: every operation computes a new
// RawTensor on the calling goroutine (fanning out internally) and returns it.
package cpu

import (
	"github.com/born-ml/seqconv/internal/conv"
	"github.com/born-ml/seqconv/internal/parallel"
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
)

var _ conv.Executor = (*CPUBackend)(nil)

// CPUBackend implements conv.Executor on CPU with gonum BLAS for the GEMM
// behind the standard convolution.
type CPUBackend struct {
	device      tensor.Device
	parallel    parallel.Config
	accelerated bool
}

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel overrides the worker configuration.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.parallel = cfg
	}
}

// New creates a new CPU backend.
func New(opts ...Option) *CPUBackend {
	cpu := &CPUBackend{
		device:      tensor.CPU,
		parallel:    parallel.DefaultConfig(),
		accelerated: detectAcceleration(),
	}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Accelerated reports whether the host has the vector units the standard
// GEMM path benefits from. Layers use it as their default fast-path flag.
func (cpu *CPUBackend) Accelerated() bool {
	return cpu.accelerated
}

// raw unwraps a value produced by this backend.
func raw(op string, v tensor.Value) (*tensor.RawTensor, error) {
	r, ok := v.(*tensor.RawTensor)
	if !ok || r == nil {
		return nil, errors.Errorf("%s: CPU backend needs a *tensor.RawTensor, got %T", op, v)
	}
	return r, nil
}
