package harness

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-stddev/align"
	"github.com/cwbudde/algo-stddev/internal/testutil"
	"github.com/cwbudde/algo-stddev/stddev"
)

var (
	// ErrMismatch is returned when a kernel leaves tolerance of the reference.
	ErrMismatch = errors.New("harness: kernel disagrees with reference")

	// ErrNoKernels is returned when Verify has nothing to check.
	ErrNoKernels = errors.New("harness: no kernels to verify")
)

// Kernel is anything that computes mean and population standard deviation.
type Kernel interface {
	MeanStdDev(x []float32) (mean, stddev float32)
}

// Result is one kernel run checked against the reference kernel.
type Result struct {
	Name string
	N    int

	Mean, StdDev         float32
	WantMean, WantStdDev float32

	// MeanErr and StdDevErr are the differences to the reference kernel
	// divided by the oracle's scale.
	MeanErr, StdDevErr float64

	// Drift is how far the reference kernel's standard deviation is from the
	// float64 oracle, relative to the same scale.
	Drift float64

	Oracle Oracle
}

// MaxErr returns the larger of MeanErr and StdDevErr.
func (r Result) MaxErr() float64 {
	return math.Max(r.MeanErr, r.StdDevErr)
}

// Compare runs k and ref on x and checks that both results agree within tol
// relative to the RMS scale of x. The error wraps ErrMismatch.
func Compare(name string, ref, k Kernel, x []float32, tol float64) (Result, error) {
	oracle := Reference(x)
	scale := oracle.Scale()

	wantMean, wantStd := ref.MeanStdDev(x)
	gotMean, gotStd := k.MeanStdDev(x)

	res := Result{
		Name:       name,
		N:          len(x),
		Mean:       gotMean,
		StdDev:     gotStd,
		WantMean:   wantMean,
		WantStdDev: wantStd,
		MeanErr:    relErr(gotMean, wantMean, scale),
		StdDevErr:  relErr(gotStd, wantStd, scale),
		Drift:      math.Abs(float64(wantStd)-oracle.StdDev) / scale,
		Oracle:     oracle,
	}

	if !(res.MeanErr <= tol) || !(res.StdDevErr <= tol) {
		return res, fmt.Errorf("%w: %s n=%d: got (%g, %g), want (%g, %g)",
			ErrMismatch, name, len(x), gotMean, gotStd, wantMean, wantStd)
	}

	return res, nil
}

func relErr(got, want float32, scale float64) float64 {
	g, w := float64(got), float64(want)
	if math.IsNaN(g) || math.IsNaN(w) {
		if math.IsNaN(g) && math.IsNaN(w) {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(g-w) / scale
}

// Report collects the results of a Verify run, grouped per kernel in the
// order the kernels were passed.
type Report struct {
	Results []Result
}

// Worst returns, per kernel name, the largest relative error seen.
func (r Report) Worst() map[string]float64 {
	worst := make(map[string]float64)
	for _, res := range r.Results {
		worst[res.Name] = math.Max(worst[res.Name], res.MaxErr())
	}
	return worst
}

// Verify checks every kernel against ref on deterministic noise of each size
// in sizes. Each kernel runs on its own goroutine. Input is copied onto the
// boundary the kernel requires. The first mismatch cancels the remaining
// work and is returned together with the results gathered so far.
func Verify(ctx context.Context, ref stddev.Variant, kernels []stddev.Variant, sizes []int, seed uint32, tol float64) (Report, error) {
	if len(kernels) == 0 {
		return Report{}, ErrNoKernels
	}

	perKernel := make([][]Result, len(kernels))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, k := range kernels {
		g.Go(func() error {
			for _, n := range sizes {
				if err := ctx.Err(); err != nil {
					return err
				}

				x := testutil.Noise(seed+uint32(n), 1, 0.5, n)
				if a := max(k.Alignment, ref.Alignment); a > 0 {
					b, err := align.Copy(x, a)
					if err != nil {
						return err
					}
					x = b.Floats()
				}

				res, err := Compare(k.Name, ref, k, x, tol)
				perKernel[i] = append(perKernel[i], res)
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	err := g.Wait()
	return Report{Results: lo.Flatten(perKernel)}, err
}

// TailSizes returns k*step-1, k*step and k*step+1 for each k, sorted and
// without duplicates or non-positive sizes. With no ks, k runs from 1 to 4.
func TailSizes(step int, ks ...int) []int {
	if len(ks) == 0 {
		ks = []int{1, 2, 3, 4}
	}

	sizes := lo.FlatMap(ks, func(k int, _ int) []int {
		return []int{k*step - 1, k * step, k*step + 1}
	})
	sizes = lo.Filter(sizes, func(n int, _ int) bool { return n > 0 })
	sizes = lo.Uniq(sizes)
	slices.Sort(sizes)

	return sizes
}
