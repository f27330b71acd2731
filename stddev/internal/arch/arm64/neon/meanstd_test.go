//go:build arm64 && !purego

package neon

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-stddev/stddev/internal/arch/generic"
)

func TestMeanStdDevReferenceParity(t *testing.T) {
	sizes := []int{0, 1, 3, 15, 16, 17, 31, 32, 33, 47, 48, 49, 63, 64, 65, 1000}
	for _, n := range sizes {
		x := make([]float32, n)
		for i := range x {
			x[i] = float32((i*37)%113)/113 - 0.3
		}

		gotMean, gotStd := MeanStdDev(x)
		wantMean, wantStd := generic.MeanStdDev(x)
		if math.Abs(float64(gotMean-wantMean)) > 1e-5 || math.Abs(float64(gotStd-wantStd)) > 1e-5 {
			t.Fatalf("n=%d: got (%v, %v), want (%v, %v)", n, gotMean, gotStd, wantMean, wantStd)
		}
	}
}
