//go:build amd64 && !purego

package avx

import (
	"github.com/cwbudde/algo-stddev/internal/cpu"
	"github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"
)

// init registers the 256-bit kernels in both load flavours.
//
// The aligned entry outranks the unaligned one so that input on a 32-byte
// boundary takes it, while every other input still gets 8 lanes.
//
// Priority: 25 (aligned), 20 (unaligned)
func init() {
	registry.Global.Register(registry.OpEntry{
		Name:       "a_avx",
		SIMDLevel:  cpu.SIMDAVX,
		Priority:   25,
		Lanes:      Lanes,
		Unroll:     Unroll,
		Alignment:  Alignment,
		MeanStdDev: MeanStdDevAligned,
	})
	registry.Global.Register(registry.OpEntry{
		Name:       "u_avx",
		SIMDLevel:  cpu.SIMDAVX,
		Priority:   20,
		Lanes:      Lanes,
		Unroll:     Unroll,
		MeanStdDev: MeanStdDevUnaligned,
	})
}
