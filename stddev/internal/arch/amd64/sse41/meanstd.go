//go:build amd64 && !purego

// Package sse41 contains the 4-lane kernel unrolled over four registers
// (16 samples per step). Each register's squares are dotted into their own
// lane and the four results merged with OR before accumulation.
package sse41

import "github.com/cwbudde/algo-stddev/internal/lanes"

// Alignment is the byte boundary MeanStdDev requires of &x[0].
const Alignment = 16

var kernel = lanes.NewKernel[lanes.F32x4](lanes.X4{}, 4, lanes.SquareDot)

// MeanStdDev returns the mean and population standard deviation of x.
// Returns (0, 0) for an empty slice.
//
// x must start on a 16-byte boundary; misaligned input is undefined.
func MeanStdDev(x []float32) (mean, stddev float32) {
	return kernel.MeanStdDev(x)
}
