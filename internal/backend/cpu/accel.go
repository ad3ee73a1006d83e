package cpu

import "github.com/klauspost/cpuid/v2"

func detectAcceleration() bool {
	return cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3) || cpuid.CPU.Supports(cpuid.ASIMD)
}
