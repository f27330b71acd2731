package harness

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/algo-stddev/internal/testutil"
	"github.com/cwbudde/algo-stddev/stddev"
)

type kernelFunc func([]float32) (float32, float32)

func (f kernelFunc) MeanStdDev(x []float32) (float32, float32) { return f(x) }

func mustVariant(t *testing.T, name string) stddev.Variant {
	t.Helper()
	v, ok := stddev.Lookup(name)
	if !ok {
		t.Fatalf("variant %q not registered", name)
	}
	return v
}

func TestReference(t *testing.T) {
	o := Reference([]float32{2, 4, 4, 4, 5, 5, 7, 9})
	if o.Mean != 5 || o.StdDev != 2 {
		t.Fatalf("Reference = %+v, want mean 5 stddev 2", o)
	}
	if want := math.Sqrt(232.0 / 8); math.Abs(o.RMS-want) > 1e-12 {
		t.Fatalf("RMS = %v, want %v", o.RMS, want)
	}

	if got := Reference(nil); got != (Oracle{}) {
		t.Fatalf("Reference(nil) = %+v, want zero", got)
	}
}

func TestOracleScale(t *testing.T) {
	if got := (Oracle{RMS: 0.25}).Scale(); got != 1 {
		t.Fatalf("Scale = %v, want 1", got)
	}
	if got := (Oracle{RMS: 40}).Scale(); got != 40 {
		t.Fatalf("Scale = %v, want 40", got)
	}
}

func TestCompare(t *testing.T) {
	ref := mustVariant(t, "generic")
	x := testutil.Noise(4, 1, 0.5, 100)

	res, err := Compare("self", ref, ref, x, 1e-5)
	if err != nil {
		t.Fatal(err)
	}
	if res.MeanErr != 0 || res.StdDevErr != 0 || res.N != 100 {
		t.Fatalf("self comparison = %+v", res)
	}
	if res.Drift > 1e-5 {
		t.Fatalf("drift from float64 oracle = %g", res.Drift)
	}
}

func TestCompareMismatch(t *testing.T) {
	ref := mustVariant(t, "generic")
	off := kernelFunc(func(x []float32) (float32, float32) {
		m, s := ref.MeanStdDev(x)
		return m + 0.01, s
	})

	_, err := Compare("off", ref, off, testutil.Noise(1, 1, 0, 64), 1e-5)
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("err = %v, want ErrMismatch", err)
	}
}

func TestCompareNaN(t *testing.T) {
	nan := kernelFunc(func(x []float32) (float32, float32) { return 0, float32(math.NaN()) })

	if _, err := Compare("nan-vs-nan", nan, nan, []float32{1}, 1e-5); err != nil {
		t.Fatalf("matching NaNs rejected: %v", err)
	}
	if _, err := Compare("nan-vs-ref", mustVariant(t, "generic"), nan, []float32{1}, 1e-5); !errors.Is(err, ErrMismatch) {
		t.Fatalf("err = %v, want ErrMismatch", err)
	}
}

func TestVerifySupported(t *testing.T) {
	ref := mustVariant(t, "generic")
	kernels := stddev.Supported()

	sizes := []int{1, 7, 64, 333, 1025}
	for _, v := range kernels {
		sizes = append(sizes, TailSizes(v.Step())...)
	}

	report, err := Verify(context.Background(), ref, kernels, sizes, 1, 1e-5)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(report.Results), len(kernels)*len(sizes); got != want {
		t.Fatalf("got %d results, want %d", got, want)
	}

	worst := report.Worst()
	for _, v := range kernels {
		if e, ok := worst[v.Name]; !ok || e > 1e-5 {
			t.Fatalf("%s worst error %g (present %v)", v.Name, e, ok)
		}
	}
}

func TestVerifyNoKernels(t *testing.T) {
	if _, err := Verify(context.Background(), mustVariant(t, "generic"), nil, []int{1}, 0, 1e-5); !errors.Is(err, ErrNoKernels) {
		t.Fatalf("err = %v, want ErrNoKernels", err)
	}
}

func TestVerifyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ref := mustVariant(t, "generic")
	_, err := Verify(ctx, ref, []stddev.Variant{ref}, []int{10, 20}, 0, 1e-5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestTailSizes(t *testing.T) {
	tests := []struct {
		step int
		ks   []int
		want []int
	}{
		{32, nil, []int{31, 32, 33, 63, 64, 65, 95, 96, 97, 127, 128, 129}},
		{1, nil, []int{1, 2, 3, 4, 5}},
		{16, []int{2}, []int{31, 32, 33}},
		{4, []int{0, 1}, []int{1, 3, 4, 5}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, TailSizes(tt.step, tt.ks...)); diff != "" {
			t.Errorf("TailSizes(%d, %v) mismatch (-want +got):\n%s", tt.step, tt.ks, diff)
		}
	}
}

func TestThroughput(t *testing.T) {
	if testing.Short() {
		t.Skip("benchmark driver runs for about a second")
	}

	m := Throughput(mustVariant(t, "generic"), testutil.Noise(2, 1, 0, 1024))
	if m.N != 1024 || m.Iterations <= 0 || m.NsPerOp <= 0 || m.SamplesPerSec <= 0 {
		t.Fatalf("Throughput = %+v", m)
	}
	if math.Abs(m.MBPerSec()-m.SamplesPerSec*4/1e6) > 1e-9 {
		t.Fatalf("MBPerSec = %v", m.MBPerSec())
	}
}
