package stddev

import (
	"context"
	"math"
	"strconv"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-stddev/align"
	"github.com/cwbudde/algo-stddev/internal/cpu"
	"github.com/cwbudde/algo-stddev/internal/testutil"
	"github.com/cwbudde/algo-stddev/stddev/internal/arch/generic"
)

var paritySizes = []int{1, 2, 3, 4, 5, 7, 8, 15, 16, 17, 31, 32, 33, 63, 64, 65, 100, 127, 128, 129, 255, 256, 257, 1000, 1023, 1024, 1025}

func TestMeanStdDev(t *testing.T) {
	cases := []struct {
		name       string
		x          []float32
		wantMean   float32
		wantStdDev float32
	}{
		{name: "empty", x: nil, wantMean: 0, wantStdDev: 0},
		{name: "single", x: []float32{-3.5}, wantMean: -3.5, wantStdDev: 0},
		{name: "one to four", x: []float32{1, 2, 3, 4}, wantMean: 2.5, wantStdDev: 1.1180340},
		{name: "textbook", x: []float32{2, 4, 4, 4, 5, 5, 7, 9}, wantMean: 5, wantStdDev: 2},
		{name: "symmetric", x: []float32{-1, 1, -1, 1, -1, 1}, wantMean: 0, wantStdDev: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mean, stddev := MeanStdDev(tc.x)
			testutil.RequireMeanStdDev(t, tc.x, mean, stddev, tc.wantMean, tc.wantStdDev, testutil.DefaultTol)
		})
	}
}

func TestMeanStdDevEmptyIsExactlyZero(t *testing.T) {
	for _, x := range [][]float32{nil, {}, make([]float32, 8)[:0]} {
		if mean, stddev := MeanStdDev(x); mean != 0 || stddev != 0 {
			t.Fatalf("MeanStdDev(%v) = (%v, %v), want (0, 0)", x, mean, stddev)
		}
	}
	if mean, stddev := MeanStdDevAligned(align.Buffer{}); mean != 0 || stddev != 0 {
		t.Fatalf("MeanStdDevAligned(zero buffer) = (%v, %v), want (0, 0)", mean, stddev)
	}
}

func TestMeanStdDevConstant(t *testing.T) {
	for _, v := range Supported() {
		t.Run(v.Name, func(t *testing.T) {
			x := alignedFor(v, testutil.DC(2.5, 1000))
			mean, stddev := v.MeanStdDev(x)
			if mean != 2.5 || stddev != 0 {
				t.Fatalf("(%v, %v), want (2.5, 0)", mean, stddev)
			}
		})
	}
}

func TestMeanStdDevRampClosedForm(t *testing.T) {
	// Sums and sums of squares of 0..n-1 are exact in float32 for n <= 256.
	for _, v := range Supported() {
		for _, n := range []int{1, 2, 10, 31, 32, 33, 64, 100, 256} {
			t.Run(v.Name+"/n="+strconv.Itoa(n), func(t *testing.T) {
				x := alignedFor(v, testutil.Ramp(n))
				mean, stddev := v.MeanStdDev(x)

				wantMean := float32(n-1) / 2
				wantStd := float32(math.Sqrt(float64(n*n-1) / 12))
				if mean != wantMean {
					t.Fatalf("mean = %v, want %v", mean, wantMean)
				}
				if !testutil.Within(stddev, wantStd, testutil.DefaultTol, float64(wantStd)) {
					t.Fatalf("stddev = %v, want %v", stddev, wantStd)
				}
			})
		}
	}
}

func TestVariantsMatchReference(t *testing.T) {
	for _, v := range Supported() {
		for _, n := range paritySizes {
			t.Run(v.Name+"/n="+strconv.Itoa(n), func(t *testing.T) {
				x := alignedFor(v, testutil.Noise(uint32(n), 1, 0.5, n))
				wantMean, wantStd := generic.MeanStdDev(x)
				gotMean, gotStd := v.MeanStdDev(x)
				testutil.RequireMeanStdDev(t, x, gotMean, gotStd, wantMean, wantStd, testutil.DefaultTol)
			})
		}
	}
}

func TestVariantsTailBoundaries(t *testing.T) {
	for _, v := range Supported() {
		step := v.Step()
		for k := 1; k <= 4; k++ {
			for _, n := range []int{k*step - 1, k * step, k*step + 1} {
				if n == 0 {
					continue
				}
				t.Run(v.Name+"/n="+strconv.Itoa(n), func(t *testing.T) {
					x := alignedFor(v, testutil.Sine(0.37, 0.75, 0.25, n))
					wantMean, wantStd := generic.MeanStdDev(x)
					gotMean, gotStd := v.MeanStdDev(x)
					testutil.RequireMeanStdDev(t, x, gotMean, gotStd, wantMean, wantStd, testutil.DefaultTol)
				})
			}
		}
	}
}

func TestMeanStdDevAnyOffset(t *testing.T) {
	// Shifting the start by one sample walks the input through every
	// alignment class the dispatcher distinguishes.
	buf := align.MustMake(600, align.AVX512)
	copy(buf.Floats(), testutil.Noise(7, 2, -1, buf.Len()))

	for off := range 17 {
		x := buf.Floats()[off : off+500]
		wantMean, wantStd := generic.MeanStdDev(x)
		gotMean, gotStd := MeanStdDev(x)
		testutil.RequireMeanStdDev(t, x, gotMean, gotStd, wantMean, wantStd, testutil.DefaultTol)
	}
}

func TestMeanStdDevAlignedParity(t *testing.T) {
	for _, alignment := range []int{4, 8, align.SSE, align.AVX, align.AVX512} {
		for _, n := range paritySizes {
			src := testutil.Noise(uint32(n)+11, 3, 1, n)
			b, err := align.Copy(src, alignment)
			if err != nil {
				t.Fatal(err)
			}

			alignedMean, alignedStd := MeanStdDevAligned(b)
			plainMean, plainStd := MeanStdDev(src)
			testutil.RequireMeanStdDev(t, src, alignedMean, alignedStd, plainMean, plainStd, testutil.DefaultTol)
		}
	}
}

func TestMeanStdDevDoesNotMutate(t *testing.T) {
	x := testutil.Noise(3, 1, 0, 257)
	orig := append([]float32(nil), x...)

	MeanStdDev(x)

	d, err := testutil.MaxAbsDiff(x, orig)
	if err != nil || d != 0 {
		t.Fatalf("input modified (max diff %v, err %v)", d, err)
	}
}

func TestMeanStdDevConcurrent(t *testing.T) {
	x := testutil.Noise(99, 1, 0.25, 4099)
	wantMean, wantStd := MeanStdDev(x)

	g, _ := errgroup.WithContext(context.Background())
	for range 16 {
		g.Go(func() error {
			for range 50 {
				mean, stddev := MeanStdDev(x)
				if mean != wantMean || stddev != wantStd {
					t.Errorf("concurrent call = (%v, %v), want (%v, %v)", mean, stddev, wantMean, wantStd)
					return nil
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestVariantsListing(t *testing.T) {
	all := Variants()
	if len(all) == 0 {
		t.Fatal("no variants registered")
	}
	if all[len(all)-1].Name != "generic" {
		t.Fatalf("lowest-priority variant = %q, want generic", all[len(all)-1].Name)
	}

	for _, v := range all {
		got, ok := Lookup(v.Name)
		if !ok || got.Name != v.Name || got.Lanes != v.Lanes || got.Alignment != v.Alignment {
			t.Fatalf("Lookup(%q) = %+v, %v", v.Name, got, ok)
		}
		if v.Lanes < 1 || v.Unroll < 1 {
			t.Fatalf("%s: bad shape %dx%d", v.Name, v.Lanes, v.Unroll)
		}
	}

	if _, ok := Lookup("no_such_variant"); ok {
		t.Fatal("Lookup of unknown name succeeded")
	}
}

func TestSupportedIsSubsetOfVariants(t *testing.T) {
	features := cpu.DetectFeatures()
	supported := Supported()
	if len(supported) == 0 || supported[len(supported)-1].Name != "generic" {
		t.Fatalf("generic missing from Supported(): %+v", supported)
	}
	for _, v := range supported {
		if !cpu.Supports(features, v.level) {
			t.Fatalf("%s listed as supported on %+v", v.Name, features)
		}
	}
}

func TestSelectedHonoursAlignment(t *testing.T) {
	for _, alignment := range []int{0, 4, 8, align.SSE, align.AVX, align.AVX512, 4096} {
		v := Selected(alignment)
		if v.Alignment != 0 && (alignment == 0 || alignment%v.Alignment != 0) {
			t.Fatalf("Selected(%d) = %s requiring %d-byte alignment", alignment, v.Name, v.Alignment)
		}
	}
}

// alignedFor copies x onto the boundary v requires, or returns it as is.
func alignedFor(v Variant, x []float32) []float32 {
	if v.Alignment == 0 {
		return x
	}
	return align.MustCopy(x, v.Alignment).Floats()
}
