// Package align allocates float32 storage on a guaranteed byte boundary.
//
// A [Buffer] can only be obtained from [Make] or [Copy], so holding one is
// proof that its first sample meets [Buffer.Alignment]. Aligned-only kernels
// accept a Buffer instead of re-checking the address on every call.
package align

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/cwbudde/algo-stddev/internal/cpu"
)

// Common vector alignments in bytes.
const (
	SSE    = 16
	AVX    = 32
	AVX512 = 64
)

// MaxAlignment bounds both requested alignments and what [Of] reports.
const MaxAlignment = 4096

const sampleSize = int(unsafe.Sizeof(float32(0)))

// ErrInvalidAlignment is returned for alignments that are not a power of two
// between 4 and MaxAlignment bytes.
var ErrInvalidAlignment = errors.New("align: invalid alignment")

// ErrInvalidLength is returned for negative lengths.
var ErrInvalidLength = errors.New("align: invalid length")

// Buffer is a float32 slice whose first element sits on an Alignment()-byte
// boundary. The zero value is an empty buffer with alignment 0.
type Buffer struct {
	data      []float32
	alignment int
}

// Make returns a zeroed buffer of n samples aligned to alignment bytes.
func Make(n, alignment int) (Buffer, error) {
	if n < 0 {
		return Buffer{}, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if !valid(alignment) {
		return Buffer{}, fmt.Errorf("%w: %d bytes", ErrInvalidAlignment, alignment)
	}

	// Go's heap does not move objects, so the offset stays valid.
	pad := alignment / sampleSize
	raw := make([]float32, n+pad)

	off := 0
	if len(raw) > 0 {
		addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
		if rem := int(addr % uintptr(alignment)); rem != 0 {
			off = (alignment - rem) / sampleSize
		}
	}

	return Buffer{data: raw[off : off+n : off+n], alignment: alignment}, nil
}

// MustMake is like Make but panics on error.
func MustMake(n, alignment int) Buffer {
	b, err := Make(n, alignment)
	if err != nil {
		panic(err)
	}
	return b
}

// Copy returns an aligned buffer holding a copy of x.
func Copy(x []float32, alignment int) (Buffer, error) {
	b, err := Make(len(x), alignment)
	if err != nil {
		return Buffer{}, err
	}
	copy(b.data, x)
	return b, nil
}

// MustCopy is like Copy but panics on error.
func MustCopy(x []float32, alignment int) Buffer {
	b, err := Copy(x, alignment)
	if err != nil {
		panic(err)
	}
	return b
}

// Floats returns the underlying samples. The slice may be written to but
// must not be re-sliced from the front if the alignment is to be kept.
func (b Buffer) Floats() []float32 { return b.data }

// Len returns the number of samples.
func (b Buffer) Len() int { return len(b.data) }

// Alignment returns the guaranteed byte boundary of the first sample.
func (b Buffer) Alignment() int { return b.alignment }

// Head returns the first n samples as a buffer with the same alignment.
// It panics if n is out of range, like a slice expression.
func (b Buffer) Head(n int) Buffer {
	return Buffer{data: b.data[:n:n], alignment: b.alignment}
}

// Of returns the largest power-of-two byte boundary, capped at MaxAlignment,
// that &x[0] sits on. Empty slices report MaxAlignment since no load can
// violate any boundary.
func Of(x []float32) int {
	if len(x) == 0 {
		return MaxAlignment
	}

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(x)))
	a := 1
	for a < MaxAlignment && addr%uintptr(2*a) == 0 {
		a *= 2
	}
	return a
}

// IsAligned reports whether &x[0] sits on an alignment-byte boundary.
func IsAligned(x []float32, alignment int) bool {
	if !valid(alignment) {
		return false
	}
	return Of(x)%alignment == 0
}

// DefaultAlignment returns the boundary used when callers have no specific
// vector width in mind: the host cache line if known, never less than AVX.
func DefaultAlignment() int {
	a := AVX
	if line := cpu.Host().CacheLine; valid(line) && line > a {
		a = line
	}
	return a
}

func valid(alignment int) bool {
	return alignment >= sampleSize && alignment <= MaxAlignment && alignment&(alignment-1) == 0
}
