//go:build arm64 && !purego

// Package neon contains the arm64 kernel: four 128-bit registers (16
// samples) per step, squares accumulated with an elementwise multiply as
// FMLA would.
package neon

import "github.com/cwbudde/algo-stddev/internal/lanes"

var kernel = lanes.NewKernel[lanes.F32x4](lanes.X4{}, 4, lanes.SquareMul)

// MeanStdDev returns the mean and population standard deviation of x for
// any slice alignment. Returns (0, 0) for an empty slice.
func MeanStdDev(x []float32) (mean, stddev float32) {
	return kernel.MeanStdDev(x)
}
