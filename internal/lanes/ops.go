// Package lanes holds the single accumulation algorithm shared by every
// vector variant, written against a small lane-operation vocabulary.
//
// A width is described by an [Ops] implementation ([X4] for 128-bit, [X8] for
// 256-bit registers). A [Kernel] combines a width with an unroll factor and a
// squaring strategy; the per-architecture packages only pick parameters.
package lanes

import "math"

// Ops is the lane vocabulary of one vector width. V is the register type.
//
// Load reads exactly Lanes() samples from the front of x; x must hold at least
// that many. DotSquares squares every lane, sums each 128-bit block (4 lanes)
// and places the block total into lane slot of that block, zeroing all other
// lanes. ReduceAdd sums the lanes in index order.
type Ops[V any] interface {
	Lanes() int
	Zero() V
	Load(x []float32) V
	Add(a, b V) V
	Mul(a, b V) V
	Or(a, b V) V
	DotSquares(v V, slot int) V
	ReduceAdd(v V) float32
}

// BlockLanes is the number of float32 lanes in one 128-bit block.
const BlockLanes = 4

// Squaring selects how a kernel folds squared samples into its
// sum-of-squares accumulator.
type Squaring int

const (
	// SquareMul multiplies each lane by itself and adds the result lane-wise.
	SquareMul Squaring = iota

	// SquareDot dots each sub-block with itself into its own slot, ORs the
	// unrolled sub-blocks together and adds the merged register once per step.
	SquareDot
)

// String returns the strategy name.
func (s Squaring) String() string {
	switch s {
	case SquareMul:
		return "mul"
	case SquareDot:
		return "dot"
	default:
		return "unknown"
	}
}

// orBits merges two lanes bitwise. Dot results place +0 in unused slots, so
// OR acts as a lane select.
func orBits(a, b float32) float32 {
	return math.Float32frombits(math.Float32bits(a) | math.Float32bits(b))
}

// dot4 mirrors the DPPS summation order: (x0² + x1²) + (x2² + x3²).
func dot4(x0, x1, x2, x3 float32) float32 {
	return float32(x0*x0+x1*x1) + float32(x2*x2+x3*x3)
}
