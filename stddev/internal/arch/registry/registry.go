// Package registry provides the kernel registry for the stddev operation.
//
// Every variant (generic, SSE, SSE4.1, AVX aligned and unaligned, NEON)
// registers itself from an init() function in its architecture package. The
// stddev package asks the registry for the best kernel supported by the
// current CPU and by the alignment of the caller's input.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-stddev/internal/cpu"
)

// KernelFn returns the mean and population standard deviation of x.
// Every registered kernel returns (0, 0) for an empty x.
type KernelFn func(x []float32) (mean, stddev float32)

// OpEntry is one registered kernel variant.
type OpEntry struct {
	// Name identifies the variant (e.g., "a_avx", "u_avx", "generic").
	Name string

	// SIMDLevel indicates the instruction set the kernel requires.
	SIMDLevel cpu.SIMDLevel

	// Priority determines selection order among compatible entries. Higher
	// wins. Suggested priorities:
	//   - Generic (SIMDNone): 0
	//   - SSE2: 10
	//   - SSE4.1/NEON: 15
	//   - AVX unaligned: 20
	//   - AVX aligned: 25
	Priority int

	// Lanes is the register width in float32 lanes (1 for scalar).
	Lanes int

	// Unroll is the number of registers consumed per loop step.
	Unroll int

	// Alignment is the byte boundary &x[0] must sit on; 0 means any.
	// Passing input that violates it is outside the kernel's contract.
	Alignment int

	// MeanStdDev is the kernel.
	MeanStdDev KernelFn
}

// Accepts reports whether input aligned to alignment bytes satisfies the
// entry's alignment requirement.
func (e *OpEntry) Accepts(alignment int) bool {
	if e.Alignment <= 0 {
		return true
	}
	return alignment > 0 && alignment%e.Alignment == 0
}

// OpRegistry manages the registration and lookup of kernel variants.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool // true if entries are sorted by priority (descending)
}

// Global is the default registry instance used by the stddev package.
var Global = &OpRegistry{}

// Register adds a kernel variant to the registry.
//
// This function is typically called from init() functions in
// architecture-specific packages. It is safe to call concurrently, but all
// registrations should complete before the first lookup.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority entry compatible with features,
// ignoring alignment requirements. Returns nil if none is compatible
// (which should never happen if the generic fallback is registered).
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	return r.lookup(func(e *OpEntry) bool {
		return cpu.Supports(features, e.SIMDLevel)
	})
}

// LookupAligned returns the highest-priority entry compatible with features
// whose alignment requirement is met by input aligned to alignment bytes.
// An alignment of 0 only matches entries without a requirement.
func (r *OpRegistry) LookupAligned(features cpu.Features, alignment int) *OpEntry {
	return r.lookup(func(e *OpEntry) bool {
		return cpu.Supports(features, e.SIMDLevel) && e.Accepts(alignment)
	})
}

// Find returns the entry registered under name, or nil.
func (r *OpRegistry) Find(name string) *OpEntry {
	return r.lookup(func(e *OpEntry) bool {
		return e.Name == name
	})
}

func (r *OpRegistry) lookup(match func(*OpEntry) bool) *OpEntry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if match(entry) {
			return entry
		}
	}

	return nil
}

// sortByPriority sorts entries by priority in descending order, keeping
// registration order among equal priorities.
// Must be called with r.mu held (write lock).
func (r *OpRegistry) sortByPriority() {
	// Insertion sort: the registry holds a handful of entries.
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of all registered entries, sorted by priority.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()

	return entries
}

// Reset clears all registered entries.
// This function is intended for testing purposes only.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
