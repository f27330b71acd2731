// Command stdinfo lists, verifies and benchmarks the mean/stddev kernels
// compiled into this build.
//
// Usage:
//
//	stdinfo [flags] [variant ...]
//
// Without flags it prints every variant and which one is dispatched for
// each input alignment.
//
// Examples:
//
//	stdinfo -list
//	stdinfo -host
//	stdinfo -verify
//	stdinfo -bench -n 1048576 a_avx u_avx generic
//	stdinfo -bench -aligned 4 u_avx
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/pbnjay/memory"
	"github.com/samber/lo"

	"github.com/cwbudde/algo-stddev/align"
	"github.com/cwbudde/algo-stddev/internal/cpu"
	"github.com/cwbudde/algo-stddev/internal/harness"
	"github.com/cwbudde/algo-stddev/internal/testutil"
	"github.com/cwbudde/algo-stddev/stddev"
)

// Buffers may use at most this share of physical memory.
const memoryShare = 4

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	list, host, verify, bench bool

	n       int
	seed    uint
	tol     float64
	aligned int
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("stdinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.BoolVar(&o.list, "list", false, "list variant names compiled into this build")
	fs.BoolVar(&o.host, "host", false, "describe the host CPU and detected SIMD levels")
	fs.BoolVar(&o.verify, "verify", false, "check variants against the scalar reference")
	fs.BoolVar(&o.bench, "bench", false, "measure variant throughput")
	fs.IntVar(&o.n, "n", 4096, "benchmark buffer length / largest verify size in samples")
	fs.UintVar(&o.seed, "seed", 1, "noise seed for verify and bench input")
	fs.Float64Var(&o.tol, "tol", testutil.DefaultTol, "verify tolerance relative to signal RMS")
	fs.IntVar(&o.aligned, "aligned", 0, "byte alignment of the bench buffer (0 = cache line)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: stdinfo [flags] [variant ...]\n\n")
		fmt.Fprintf(stderr, "Lists, verifies and benchmarks the mean/stddev kernels.\n")
		fmt.Fprintf(stderr, "Without variant names, all variants the CPU supports are used.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		fmt.Fprintf(stderr, "  %s=1  restrict dispatch to the generic kernel\n", cpu.ForceGenericEnv)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if o.list {
		printList(stdout)
		return 0
	}
	if o.host {
		return report(stderr, printHost(stdout))
	}

	if o.n < 1 {
		fmt.Fprintf(stderr, "error: -n must be positive, got %d\n", o.n)
		return 1
	}
	o.n = capSamples(stderr, o.n)

	variants, err := resolveVariants(stderr, fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	switch {
	case o.verify:
		return report(stderr, runVerify(stdout, variants, o))
	case o.bench:
		return report(stderr, runBench(stdout, variants, o))
	default:
		return report(stderr, printVariants(stdout))
	}
}

func report(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

func printList(w io.Writer) {
	names := lo.Map(stddev.Variants(), func(v stddev.Variant, _ int) string { return v.Name })
	slices.Sort(names)
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

func printHost(w io.Writer) error {
	h := cpu.Host()
	features := cpu.DetectFeatures()
	levels := lo.Map(cpu.Levels(features), func(l cpu.SIMDLevel, _ int) string { return l.String() })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CPU\t%s\n", lo.Ternary(h.Brand != "", h.Brand, "unknown"))
	fmt.Fprintf(tw, "Architecture\t%s\n", features.Architecture)
	fmt.Fprintf(tw, "Cores\t%d physical, %d logical\n", h.PhysicalCores, h.LogicalCores)
	fmt.Fprintf(tw, "Cache line\t%d bytes\n", h.CacheLine)
	if h.L1D > 0 {
		fmt.Fprintf(tw, "L1 data\t%d KiB\n", h.L1D/1024)
	}
	fmt.Fprintf(tw, "Memory\t%d MiB\n", memory.TotalMemory()>>20)
	fmt.Fprintf(tw, "SIMD levels\t%s\n", strings.Join(levels, ", "))
	fmt.Fprintf(tw, "Force generic\t%v\n", features.ForceGeneric)
	fmt.Fprintf(tw, "Default alignment\t%d bytes\n", align.DefaultAlignment())
	return tw.Flush()
}

func printVariants(w io.Writer) error {
	features := cpu.DetectFeatures()
	supported := lo.SliceToMap(stddev.Supported(), func(v stddev.Variant) (string, bool) { return v.Name, true })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Variant\tLevel\tLanes\tUnroll\tStep\tAlignment\tSupported\n")
	fmt.Fprintf(tw, "-------\t-----\t-----\t------\t----\t---------\t---------\n")
	for _, v := range stddev.Variants() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			v.Name, v.Level, v.Lanes, v.Unroll, v.Step(),
			lo.Ternary(v.Alignment > 0, fmt.Sprintf("%d B", v.Alignment), "any"),
			lo.Ternary(supported[v.Name], "yes", "no"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nDispatch on %s:\n", features.Architecture)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, a := range []int{4, align.SSE, align.AVX, align.AVX512} {
		fmt.Fprintf(tw, "  %d-byte aligned input\t-> %s\n", a, stddev.Selected(a).Name)
	}
	return tw.Flush()
}

// resolveVariants maps names to variants. Variants the CPU cannot execute
// are dropped with a warning.
func resolveVariants(stderr io.Writer, names []string) ([]stddev.Variant, error) {
	supported := stddev.Supported()
	if len(names) == 0 {
		return supported, nil
	}

	var out []stddev.Variant
	for _, name := range lo.Uniq(names) {
		name = strings.ToLower(strings.TrimSpace(name))
		v, ok := stddev.Lookup(name)
		if !ok {
			fmt.Fprintf(stderr, "warning: unknown variant %q (use -list to see available)\n", name)
			continue
		}
		if !lo.ContainsBy(supported, func(s stddev.Variant) bool { return s.Name == v.Name }) {
			fmt.Fprintf(stderr, "warning: variant %q needs %s, not available on this CPU\n", name, v.Level)
			continue
		}
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, errors.New("no runnable variants selected")
	}
	return out, nil
}

// capSamples clamps n so the benchmark buffer stays within a share of
// physical memory.
func capSamples(stderr io.Writer, n int) int {
	total := memory.TotalMemory()
	if total == 0 {
		return n
	}
	limit := int(min(total/memoryShare/4, uint64(math.MaxInt32)))
	if n > limit {
		fmt.Fprintf(stderr, "warning: -n %d exceeds 1/%d of physical memory, using %d\n", n, memoryShare, limit)
		return limit
	}
	return n
}

func verifySizes(variants []stddev.Variant, n int) []int {
	sizes := []int{1, 2, 3, 5, 7, 100, 1000}
	for _, v := range variants {
		sizes = append(sizes, harness.TailSizes(v.Step())...)
	}
	sizes = append(sizes, n)
	sizes = lo.Filter(lo.Uniq(sizes), func(s int, _ int) bool { return s <= n })
	slices.Sort(sizes)
	return sizes
}

func runVerify(w io.Writer, variants []stddev.Variant, o options) error {
	ref, ok := stddev.Lookup("generic")
	if !ok {
		return errors.New("generic variant not registered")
	}

	sizes := verifySizes(variants, o.n)
	rep, verr := harness.Verify(context.Background(), ref, variants, sizes, uint32(o.seed), o.tol)

	worst := rep.Worst()
	counts := lo.CountValuesBy(rep.Results, func(r harness.Result) string { return r.Name })
	drift := lo.MaxBy(rep.Results, func(a, b harness.Result) bool { return a.Drift > b.Drift })

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Variant\tSizes\tWorst rel. error\tStatus\n")
	fmt.Fprintf(tw, "-------\t-----\t----------------\t------\n")
	for _, v := range variants {
		status := "ok"
		if worst[v.Name] > o.tol {
			status = "FAIL"
		} else if counts[v.Name] < len(sizes) {
			status = "incomplete"
		}
		fmt.Fprintf(tw, "%s\t%d/%d\t%.3g\t%s\n", v.Name, counts[v.Name], len(sizes), worst[v.Name], status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(rep.Results) > 0 {
		fmt.Fprintf(w, "\nLargest float32 drift from float64: %.3g (n=%d)\n", drift.Drift, drift.N)
	}

	return verr
}

func runBench(w io.Writer, variants []stddev.Variant, o options) error {
	alignment := o.aligned
	if alignment == 0 {
		alignment = align.DefaultAlignment()
	}

	x, err := exactlyAligned(o.n, alignment)
	if err != nil {
		return err
	}
	copy(x, testutil.Noise(uint32(o.seed), 1, 0.5, o.n))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Variant\tN\tns/op\tGsamples/s\tMB/s\n")
	fmt.Fprintf(tw, "-------\t-\t-----\t----------\t----\n")
	for _, v := range variants {
		if v.Alignment > 0 && !align.IsAligned(x, v.Alignment) {
			fmt.Fprintf(tw, "%s\t%d\t-\t-\tneeds %d-byte alignment\n", v.Name, len(x), v.Alignment)
			continue
		}
		m := harness.Throughput(v, x)
		fmt.Fprintf(tw, "%s\t%d\t%.0f\t%.3f\t%.0f\n", v.Name, m.N, m.NsPerOp, m.SamplesPerSec/1e9, m.MBPerSec())
	}

	m := harness.Throughput(kernelFunc(stddev.MeanStdDev), x)
	fmt.Fprintf(tw, "dispatch (%s)\t%d\t%.0f\t%.3f\t%.0f\n",
		stddev.Selected(align.Of(x)).Name, m.N, m.NsPerOp, m.SamplesPerSec/1e9, m.MBPerSec())

	return tw.Flush()
}

// exactlyAligned returns n samples starting on an alignment-byte boundary
// that is not also a 2*alignment boundary, so the dispatcher sees exactly
// the requested class.
func exactlyAligned(n, alignment int) ([]float32, error) {
	if alignment >= align.MaxAlignment {
		b, err := align.Make(n, alignment)
		return b.Floats(), err
	}
	b, err := align.Make(n+alignment/4, 2*alignment)
	if err != nil {
		return nil, err
	}
	return b.Floats()[alignment/4:], nil
}

type kernelFunc func([]float32) (float32, float32)

func (f kernelFunc) MeanStdDev(x []float32) (float32, float32) { return f(x) }
