// Package harness checks mean/stddev kernels against each other and against
// a float64 oracle, and measures their throughput.
package harness

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Oracle holds float64 statistics of a float32 buffer.
type Oracle struct {
	Mean   float64
	StdDev float64
	RMS    float64
}

// Scale returns the magnitude errors are measured against: the RMS of the
// samples, never less than 1.
func (o Oracle) Scale() float64 {
	return math.Max(1, o.RMS)
}

// Reference computes the population mean, standard deviation and RMS of x in
// float64. The zero Oracle is returned for an empty x.
func Reference(x []float32) Oracle {
	if len(x) == 0 {
		return Oracle{}
	}

	x64 := make([]float64, len(x))
	for i, v := range x {
		x64[i] = float64(v)
	}

	mean, std := stat.PopMeanStdDev(x64, nil)

	sq := make([]float64, len(x64))
	vecmath.MulBlock(sq, x64, x64)
	rms := math.Sqrt(floats.Sum(sq) / float64(len(x64)))

	return Oracle{Mean: mean, StdDev: std, RMS: rms}
}
