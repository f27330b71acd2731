package harness

import "testing"

// Measurement is the outcome of timing one kernel on one buffer.
type Measurement struct {
	N          int
	Iterations int
	NsPerOp    float64

	// SamplesPerSec counts float32 samples consumed per second.
	SamplesPerSec float64
}

// MBPerSec returns the input bandwidth in MB/s (10^6 bytes).
func (m Measurement) MBPerSec() float64 {
	return m.SamplesPerSec * 4 / 1e6
}

var sink float32

// Throughput times k on x with the testing package's benchmark driver.
func Throughput(k Kernel, x []float32) Measurement {
	r := testing.Benchmark(func(b *testing.B) {
		b.SetBytes(int64(len(x) * 4))
		for i := 0; i < b.N; i++ {
			mean, sd := k.MeanStdDev(x)
			sink += mean + sd
		}
	})

	m := Measurement{N: len(x), Iterations: r.N}
	if r.N > 0 {
		m.NsPerOp = float64(r.T.Nanoseconds()) / float64(r.N)
	}
	if m.NsPerOp > 0 {
		m.SamplesPerSec = float64(len(x)) * 1e9 / m.NsPerOp
	}
	return m
}
