package generic

import (
	"github.com/cwbudde/algo-stddev/internal/cpu"
	"github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"
)

// init registers the scalar reference kernel.
//
// It is the baseline fallback when no SIMD variant is available, when the
// input alignment rules every other variant out, or when ForceGeneric is set.
//
// Priority: 0 (lowest - used only when no SIMD alternatives are available)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:       "generic",
		SIMDLevel:  cpu.SIMDNone,
		Priority:   0,
		Lanes:      1,
		Unroll:     1,
		MeanStdDev: MeanStdDev,
	})
}
