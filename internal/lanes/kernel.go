package lanes

import "fmt"

// Kernel is the mean / standard deviation algorithm for one lane width,
// unroll factor and squaring strategy. The zero value is not usable; build
// one with [NewKernel].
type Kernel[V any, O Ops[V]] struct {
	ops      O
	unroll   int
	squaring Squaring
}

// NewKernel returns a kernel processing unroll registers of ops.Lanes()
// samples per step. It panics if unroll is not positive, or if SquareDot is
// requested with more sub-blocks than a 128-bit block has slots.
func NewKernel[V any, O Ops[V]](ops O, unroll int, squaring Squaring) Kernel[V, O] {
	if unroll < 1 {
		panic(fmt.Sprintf("lanes: unroll must be positive, got %d", unroll))
	}
	if squaring == SquareDot && unroll > BlockLanes {
		panic(fmt.Sprintf("lanes: dot squaring supports at most %d sub-blocks, got %d", BlockLanes, unroll))
	}
	return Kernel[V, O]{ops: ops, unroll: unroll, squaring: squaring}
}

// Lanes returns the register width in float32 lanes.
func (k Kernel[V, O]) Lanes() int { return k.ops.Lanes() }

// Unroll returns the number of registers consumed per step.
func (k Kernel[V, O]) Unroll() int { return k.unroll }

// Step returns the number of samples consumed per outer iteration.
func (k Kernel[V, O]) Step() int { return k.ops.Lanes() * k.unroll }

// Squaring returns the squaring strategy.
func (k Kernel[V, O]) Squaring() Squaring { return k.squaring }

// Accumulate runs the vector loop over the largest prefix of x that is a
// multiple of Step and returns the horizontally reduced totals together with
// the number of samples consumed.
func (k Kernel[V, O]) Accumulate(x []float32) (sum, sumSq float32, done int) {
	o := k.ops
	w := o.Lanes()
	step := w * k.unroll
	groups := len(x) / step

	acc := o.Zero()
	sq := o.Zero()
	for g := range groups {
		block := x[g*step : (g+1)*step]

		merged := o.Zero()
		for u := range k.unroll {
			v := o.Load(block[u*w:])
			acc = o.Add(acc, v)

			if k.squaring == SquareDot {
				merged = o.Or(merged, o.DotSquares(v, u))
			} else {
				sq = o.Add(sq, o.Mul(v, v))
			}
		}
		if k.squaring == SquareDot {
			sq = o.Add(sq, merged)
		}
	}

	return o.ReduceAdd(acc), o.ReduceAdd(sq), groups * step
}

// MeanStdDev returns the mean and population standard deviation of x.
// An empty x yields (0, 0).
func (k Kernel[V, O]) MeanStdDev(x []float32) (mean, stddev float32) {
	n := len(x)
	if n == 0 {
		return 0, 0
	}

	sum, sumSq, done := k.Accumulate(x)
	sum, sumSq = Tail(x[done:], sum, sumSq)

	return Finalize(sum, sumSq, n)
}

// String describes the kernel shape, e.g. "8x4/dot".
func (k Kernel[V, O]) String() string {
	return fmt.Sprintf("%dx%d/%s", k.ops.Lanes(), k.unroll, k.squaring)
}
