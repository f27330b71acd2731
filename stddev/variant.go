package stddev

import (
	"github.com/cwbudde/algo-stddev/internal/cpu"
	"github.com/cwbudde/algo-stddev/stddev/internal/arch/registry"
)

// Variant is one named kernel implementation.
type Variant struct {
	// Name is the registered name, e.g. "generic", "a_sse4_1", "u_avx".
	Name string

	// Level is the instruction set the variant is built for, e.g. "AVX".
	Level string

	// Lanes is the register width in float32 lanes; 1 for the scalar variant.
	Lanes int

	// Unroll is the number of registers consumed per loop iteration.
	Unroll int

	// Alignment is the byte boundary the first sample must sit on; 0 means
	// any slice is accepted.
	Alignment int

	level cpu.SIMDLevel
	fn    registry.KernelFn
}

func newVariant(e *registry.OpEntry) Variant {
	return Variant{
		Name:      e.Name,
		Level:     e.SIMDLevel.String(),
		Lanes:     e.Lanes,
		Unroll:    e.Unroll,
		Alignment: e.Alignment,
		level:     e.SIMDLevel,
		fn:        e.MeanStdDev,
	}
}

// Step returns how many samples one main-loop iteration consumes. The last
// len(x) mod Step samples are handled by a scalar tail.
func (v Variant) Step() int {
	return v.Lanes * v.Unroll
}

// MeanStdDev runs this variant directly, bypassing dispatch.
//
// The caller is responsible for the variant's preconditions: the CPU must
// support Level and, if Alignment is non-zero, &x[0] must sit on that
// boundary. Returns (0, 0) for an empty slice.
func (v Variant) MeanStdDev(x []float32) (mean, stddev float32) {
	return v.fn(x)
}

// Variants returns every variant compiled into this build, highest priority
// first, regardless of whether the running CPU supports it.
func Variants() []Variant {
	entries := registry.Global.ListEntries()
	out := make([]Variant, 0, len(entries))
	for i := range entries {
		out = append(out, newVariant(&entries[i]))
	}
	return out
}

// Supported returns the variants the running CPU can execute, highest
// priority first. It honours ALGO_STDDEV_FORCE_GENERIC.
func Supported() []Variant {
	features := cpu.DetectFeatures()
	var out []Variant
	for _, v := range Variants() {
		if cpu.Supports(features, v.level) {
			out = append(out, v)
		}
	}
	return out
}

// Lookup returns the variant registered under name.
func Lookup(name string) (Variant, bool) {
	e := registry.Global.Find(name)
	if e == nil {
		return Variant{}, false
	}
	return newVariant(e), true
}

// Selected returns the variant MeanStdDev uses for input whose first sample
// sits on an alignment-byte boundary.
func Selected(alignment int) Variant {
	e := registry.Global.LookupAligned(cpu.DetectFeatures(), classes[class(alignment)])
	if e == nil {
		panic("stddev: no mean/stddev implementation registered")
	}
	return newVariant(e)
}
