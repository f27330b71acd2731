//go:build amd64 && !purego

// Package sse contains the 4-lane kernel: one 128-bit register per step,
// squares accumulated with an elementwise multiply.
package sse

import "github.com/cwbudde/algo-stddev/internal/lanes"

// Alignment is the byte boundary MeanStdDev requires of &x[0].
const Alignment = 16

var kernel = lanes.NewKernel[lanes.F32x4](lanes.X4{}, 1, lanes.SquareMul)

// MeanStdDev returns the mean and population standard deviation of x.
// Returns (0, 0) for an empty slice.
//
// x must start on a 16-byte boundary. The result for misaligned input is
// undefined; the dispatcher never routes such input here.
func MeanStdDev(x []float32) (mean, stddev float32) {
	return kernel.MeanStdDev(x)
}
