// Package stddev computes the mean and population standard deviation of a
// float32 buffer in a single pass.
//
// Several functionally identical kernels exist: a scalar reference, 4-lane
// kernels (SSE, SSE4.1, NEON) and 8-lane kernels (AVX, aligned and
// unaligned). [MeanStdDev] picks the best one for the running CPU and the
// alignment of its input; [Variants] exposes each of them by name.
//
// All kernels use sum and sum of squares, so variance = E[x²] - E[x]². Input
// with a large mean relative to its spread loses precision, and when rounding
// drives the variance below zero the standard deviation is NaN.
//
// Setting ALGO_STDDEV_FORCE_GENERIC=1 restricts dispatch to the scalar
// kernel. The purego build tag removes the vector kernels entirely.
package stddev
