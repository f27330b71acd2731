//go:build amd64 && !purego

// Package avx contains the 8-lane kernels: four 256-bit registers (32
// samples) per step.
//
// Built with GOEXPERIMENT=simd the loop runs on simd/archsimd registers and
// squares are accumulated lane-wise. Otherwise it runs the lane model from
// internal/lanes, dotting squares per 128-bit half into one lane per
// register and OR-merging the four results before accumulation.
package avx

const (
	// Lanes is the register width in float32 lanes.
	Lanes = 8

	// Unroll is the number of registers loaded per step.
	Unroll = 4

	// Alignment is the byte boundary MeanStdDevAligned requires of &x[0].
	Alignment = 32

	step = Lanes * Unroll
)

// MeanStdDevAligned returns the mean and population standard deviation of x.
// Returns (0, 0) for an empty slice.
//
// x must start on a 32-byte boundary. Misaligned input is undefined
// behaviour for this variant; use MeanStdDevUnaligned for arbitrary slices.
func MeanStdDevAligned(x []float32) (mean, stddev float32) {
	return meanStdDevAligned(x)
}

// MeanStdDevUnaligned returns the mean and population standard deviation of
// x for any slice alignment. Returns (0, 0) for an empty slice.
func MeanStdDevUnaligned(x []float32) (mean, stddev float32) {
	return meanStdDevUnaligned(x)
}
