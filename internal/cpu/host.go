package cpu

import (
	"github.com/klauspost/cpuid"
)

// HostInfo describes the processor beyond its SIMD flags.
// Fields are zero on architectures where CPUID is unavailable.
type HostInfo struct {
	Brand         string
	PhysicalCores int
	LogicalCores  int
	CacheLine     int // bytes
	L1D           int // bytes, -1 if unknown
}

// Host returns a description of the current processor.
func Host() HostInfo {
	return HostInfo{
		Brand:         cpuid.CPU.BrandName,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		CacheLine:     cpuid.CPU.CacheLine,
		L1D:           cpuid.CPU.Cache.L1D,
	}
}

// Levels returns the SIMD levels the given features support, lowest first.
func Levels(features Features) []SIMDLevel {
	all := []SIMDLevel{
		SIMDNone, SIMDSSE2, SIMDSSE41, SIMDAVX, SIMDAVX2, SIMDAVX512, SIMDNEON, SIMDSVELTE,
	}

	levels := make([]SIMDLevel, 0, len(all))
	for _, l := range all {
		if Supports(features, l) {
			levels = append(levels, l)
		}
	}
	return levels
}
