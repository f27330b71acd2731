// Package generic contains the scalar reference kernel. Its results define
// the numeric behaviour every vector variant is checked against.
package generic

import "github.com/cwbudde/algo-stddev/internal/lanes"

// MeanStdDev returns the mean and population standard deviation of x in a
// single sequential pass. Returns (0, 0) for an empty slice.
func MeanStdDev(x []float32) (mean, stddev float32) {
	if len(x) == 0 {
		return 0, 0
	}

	var sum, sumSq float32
	for _, v := range x {
		sumSq += float32(v * v)
		sum += v
	}

	return lanes.Finalize(sum, sumSq, len(x))
}
