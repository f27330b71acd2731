package lanes

import "math"

// Tail continues scalar accumulation of x into sum and sumSq.
func Tail(x []float32, sum, sumSq float32) (float32, float32) {
	for _, v := range x {
		sumSq += float32(v * v) // conversion keeps the product rounded, no FMA
		sum += v
	}
	return sum, sumSq
}

// Finalize turns totals over n > 0 samples into mean and population standard
// deviation using variance = sumSq/n - mean².
//
// The variance is not clamped: when rounding drives it below zero the
// returned standard deviation is NaN.
func Finalize(sum, sumSq float32, n int) (mean, stddev float32) {
	nf := float32(n)
	mean = sum / nf
	variance := sumSq/nf - float32(mean*mean)
	return mean, float32(math.Sqrt(float64(variance)))
}
