//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-stddev/internal/cpu"
	"github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"
)

// init registers the NEON kernel.
//
// NEON (ARM Advanced SIMD) provides 128-bit registers and is mandatory on
// ARMv8. LD1 has no alignment requirement, so neither does this entry.
//
// Priority: 15 (ARM's counterpart to the unrolled SSE4.1 kernel)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:       "neon",
		SIMDLevel:  cpu.SIMDNEON,
		Priority:   15,
		Lanes:      kernel.Lanes(),
		Unroll:     kernel.Unroll(),
		MeanStdDev: MeanStdDev,
	})
}
