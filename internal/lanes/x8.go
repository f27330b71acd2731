package lanes

// F32x8 is a 256-bit register of eight float32 lanes, two 128-bit blocks.
type F32x8 [8]float32

// X8 implements [Ops] for 256-bit registers (AVX).
type X8 struct{}

func (X8) Lanes() int { return 8 }

func (X8) Zero() F32x8 { return F32x8{} }

func (X8) Load(x []float32) F32x8 { return F32x8(x[:8]) }

func (X8) Add(a, b F32x8) F32x8 {
	return F32x8{
		a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3],
		a[4] + b[4], a[5] + b[5], a[6] + b[6], a[7] + b[7],
	}
}

func (X8) Mul(a, b F32x8) F32x8 {
	return F32x8{
		a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3],
		a[4] * b[4], a[5] * b[5], a[6] * b[6], a[7] * b[7],
	}
}

func (X8) Or(a, b F32x8) F32x8 {
	var r F32x8
	for i := range r {
		r[i] = orBits(a[i], b[i])
	}
	return r
}

// DotSquares works per 128-bit block, like VDPPS on a YMM register: the low
// block total lands in lane slot, the high block total in lane 4+slot.
func (X8) DotSquares(v F32x8, slot int) F32x8 {
	var r F32x8
	r[slot] = dot4(v[0], v[1], v[2], v[3])
	r[BlockLanes+slot] = dot4(v[4], v[5], v[6], v[7])
	return r
}

func (X8) ReduceAdd(v F32x8) float32 {
	s := v[0]
	for _, x := range v[1:] {
		s += x
	}
	return s
}
