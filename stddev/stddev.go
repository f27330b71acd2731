package stddev

import (
	"sync"

	"github.com/cwbudde/algo-stddev/align"
	"github.com/cwbudde/algo-stddev/internal/cpu"
	"github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"
)

// Alignment classes the dispatch table is keyed by, in bytes. Inputs that
// sit on none of the vector boundaries fall into the first class.
var classes = [...]int{4, align.SSE, align.AVX, align.AVX512}

var (
	impls    [len(classes)]registry.KernelFn
	initOnce sync.Once
)

func initDispatch() {
	features := cpu.DetectFeatures()
	for i, alignment := range classes {
		entry := registry.Global.LookupAligned(features, alignment)
		if entry == nil {
			panic("stddev: no mean/stddev implementation registered")
		}
		if entry.MeanStdDev == nil {
			panic("stddev: selected implementation missing kernel")
		}
		impls[i] = entry.MeanStdDev
	}
}

// resetDispatch drops the resolved kernels so the next call re-reads the
// CPU features. Used by tests together with cpu.SetForcedFeatures.
func resetDispatch() {
	initOnce = sync.Once{}
}

func class(alignment int) int {
	c := 0
	for i, a := range classes {
		if alignment >= a && alignment%a == 0 {
			c = i
		}
	}
	return c
}

// MeanStdDev returns the mean and population standard deviation of x.
// Returns (0, 0) for an empty slice. x is only read.
//
// The kernel is chosen from the CPU features and from the boundary &x[0]
// happens to sit on, so an aligned-only variant is used only when it is safe.
func MeanStdDev(x []float32) (mean, stddev float32) {
	if len(x) == 0 {
		return 0, 0
	}
	initOnce.Do(initDispatch)
	return impls[class(align.Of(x))](x)
}

// MeanStdDevAligned is MeanStdDev for a buffer whose alignment is already
// guaranteed by construction, so the address is not inspected.
func MeanStdDevAligned(b align.Buffer) (mean, stddev float32) {
	x := b.Floats()
	if len(x) == 0 {
		return 0, 0
	}
	initOnce.Do(initDispatch)
	return impls[class(b.Alignment())](x)
}
