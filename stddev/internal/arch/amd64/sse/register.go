//go:build amd64 && !purego

package sse

import (
	"github.com/cwbudde/algo-stddev/internal/cpu"
	"github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"
)

// init registers the 128-bit kernel.
//
// SSE2 is part of the x86-64 baseline, so this entry is available on every
// amd64 CPU, but only for input on a 16-byte boundary.
//
// Priority: 10 (medium - preferred over generic, lower than SSE4.1 and AVX)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:       "a_sse",
		SIMDLevel:  cpu.SIMDSSE2,
		Priority:   10,
		Lanes:      kernel.Lanes(),
		Unroll:     kernel.Unroll(),
		Alignment:  Alignment,
		MeanStdDev: MeanStdDev,
	})
}
