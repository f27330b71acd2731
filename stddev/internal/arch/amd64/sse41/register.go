//go:build amd64 && !purego

package sse41

import (
	"github.com/cwbudde/algo-stddev/internal/cpu"
	"github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"
)

// init registers the unrolled 128-bit dot-product kernel.
//
// Requires SSE4.1 for DPPS and input on a 16-byte boundary.
//
// Priority: 15 (preferred over plain SSE, lower than AVX)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:       "a_sse4_1",
		SIMDLevel:  cpu.SIMDSSE41,
		Priority:   15,
		Lanes:      kernel.Lanes(),
		Unroll:     kernel.Unroll(),
		Alignment:  Alignment,
		MeanStdDev: MeanStdDev,
	})
}
