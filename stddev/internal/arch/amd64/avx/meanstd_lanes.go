//go:build amd64 && !purego && !goexperiment.simd

package avx

import "github.com/cwbudde/algo-stddev/internal/lanes"

// usesArchSIMD reports whether the kernels execute real AVX instructions.
const usesArchSIMD = false

var kernel = lanes.NewKernel[lanes.F32x8](lanes.X8{}, Unroll, lanes.SquareDot)

// Go has no separate aligned load, so both flavours share the lane model.
func meanStdDevAligned(x []float32) (mean, stddev float32) {
	return kernel.MeanStdDev(x)
}

func meanStdDevUnaligned(x []float32) (mean, stddev float32) {
	return kernel.MeanStdDev(x)
}
