//go:build amd64 && !purego && goexperiment.simd

package avx

import (
	"simd/archsimd"

	"github.com/cwbudde/algo-stddev/internal/lanes"
)

// usesArchSIMD reports whether the kernels execute real AVX instructions.
const usesArchSIMD = true

// archsimd exposes a single slice load; alignment only affects which entry
// the dispatcher may pick.
func meanStdDevAligned(x []float32) (mean, stddev float32) {
	return meanStdDevYMM(x)
}

func meanStdDevUnaligned(x []float32) (mean, stddev float32) {
	return meanStdDevYMM(x)
}

func meanStdDevYMM(x []float32) (mean, stddev float32) {
	n := len(x)
	if n == 0 {
		return 0, 0
	}

	acc := archsimd.BroadcastFloat32x8(0)
	sq := archsimd.BroadcastFloat32x8(0)

	done := (n / step) * step
	for i := 0; i < done; i += step {
		v0 := archsimd.LoadFloat32x8Slice(x[i:])
		v1 := archsimd.LoadFloat32x8Slice(x[i+8:])
		v2 := archsimd.LoadFloat32x8Slice(x[i+16:])
		v3 := archsimd.LoadFloat32x8Slice(x[i+24:])

		acc = acc.Add(v0)
		acc = acc.Add(v1)
		acc = acc.Add(v2)
		acc = acc.Add(v3)

		s01 := v0.Mul(v0).Add(v1.Mul(v1))
		s23 := v2.Mul(v2).Add(v3.Mul(v3))
		sq = sq.Add(s01.Add(s23))
	}

	var accLanes, sqLanes lanes.F32x8
	acc.StoreSlice(accLanes[:])
	sq.StoreSlice(sqLanes[:])

	o := lanes.X8{}
	sum, sumSq := lanes.Tail(x[done:], o.ReduceAdd(accLanes), o.ReduceAdd(sqLanes))

	return lanes.Finalize(sum, sumSq, n)
}
