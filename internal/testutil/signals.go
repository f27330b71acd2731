package testutil

import (
	"math"

	"github.com/valyala/fastrand"
)

// Ramp returns 0, 1, ..., n-1.
func Ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float32 {
	return DC(1.0, n)
}

// Sine generates a sine of the given amplitude around offset, advancing
// step radians per sample.
func Sine(step, amplitude, offset float64, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = float32(offset + amplitude*math.Sin(step*float64(i)))
	}
	return out
}

// Noise generates uniform white noise in [offset-amplitude, offset+amplitude)
// from a fixed seed, so equal seeds give equal signals.
func Noise(seed uint32, amplitude, offset float32, length int) []float32 {
	out := make([]float32, length)
	rng := NewRNG(seed)
	for i := range out {
		u := float64(rng.Uint32()) / (1 << 32)
		out[i] = offset + amplitude*float32(2*u-1)
	}
	return out
}

// NewRNG returns a generator that replays the same sequence for the same
// seed. fastrand reseeds a zero state from the runtime, so 0 is remapped.
func NewRNG(seed uint32) *fastrand.RNG {
	if seed == 0 {
		seed = 0x9e3779b9
	}
	rng := &fastrand.RNG{}
	rng.Seed(seed)
	return rng
}
