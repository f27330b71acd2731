package lanes

// F32x4 is a 128-bit register of four float32 lanes.
type F32x4 [4]float32

// X4 implements [Ops] for 128-bit registers (SSE, NEON).
type X4 struct{}

func (X4) Lanes() int { return 4 }

func (X4) Zero() F32x4 { return F32x4{} }

func (X4) Load(x []float32) F32x4 { return F32x4(x[:4]) }

func (X4) Add(a, b F32x4) F32x4 {
	return F32x4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (X4) Mul(a, b F32x4) F32x4 {
	return F32x4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

func (X4) Or(a, b F32x4) F32x4 {
	return F32x4{orBits(a[0], b[0]), orBits(a[1], b[1]), orBits(a[2], b[2]), orBits(a[3], b[3])}
}

func (X4) DotSquares(v F32x4, slot int) F32x4 {
	var r F32x4
	r[slot] = dot4(v[0], v[1], v[2], v[3])
	return r
}

func (X4) ReduceAdd(v F32x4) float32 {
	s := v[0]
	s += v[1]
	s += v[2]
	s += v[3]
	return s
}
