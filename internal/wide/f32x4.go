// Package wide provides fixed-size array types for batch pixel processing,
// adapted from the teacher corpus's F32x8/U16x16 idiom: simple loops over
// fixed-size arrays let the Go compiler auto-vectorize on supported
// architectures without resorting to unsafe or assembly. The fragment
// processor's SIMD path batches 4 pixels at a time (one scan-line stride
// per inner iteration), so the wide types here are 4-lane.
package wide

// F32x4 holds 4 float32 lanes.
type F32x4 [4]float32

// SplatF32 returns an F32x4 with every lane set to n.
func SplatF32(n float32) F32x4 {
	return F32x4{n, n, n, n}
}

// Add returns the element-wise sum of v and o.
func (v F32x4) Add(o F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Mul returns the element-wise product of v and o.
func (v F32x4) Mul(o F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i] * o[i]
	}
	return r
}

// MulAdd returns v*a + b, element-wise.
func (v F32x4) MulAdd(a, b F32x4) F32x4 {
	var r F32x4
	for i := range v {
		r[i] = v[i]*a[i] + b[i]
	}
	return r
}

// Lt returns a Mask4 with lane i set where v[i] < o[i].
func (v F32x4) Lt(o F32x4) Mask4 {
	var m Mask4
	for i := range v {
		m[i] = v[i] < o[i]
	}
	return m
}

// Gt returns a Mask4 with lane i set where v[i] > o[i].
func (v F32x4) Gt(o F32x4) Mask4 {
	var m Mask4
	for i := range v {
		m[i] = v[i] > o[i]
	}
	return m
}

// Mask4 is a 4-lane boolean mask, e.g. the result of a depth comparison
// across 4 pixels in one SIMD inner-loop iteration.
type Mask4 [4]bool

// Bits packs the mask into the low 4 bits of a byte, lane 0 as bit 0.
// Used for popcount-indexed compaction of surviving fragments into the
// fragment queue.
func (m Mask4) Bits() uint8 {
	var b uint8
	for i, set := range m {
		if set {
			b |= 1 << i
		}
	}
	return b
}

// Any reports whether any lane is set.
func (m Mask4) Any() bool {
	return m.Bits() != 0
}

// popcountLUT maps a 4-bit mask to its set-bit count, used to size the
// compacted output without a bit-twiddling popcount intrinsic.
var popcountLUT = [16]uint8{0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4}

// Popcount returns the number of set lanes.
func (m Mask4) Popcount() int {
	return int(popcountLUT[m.Bits()])
}

// laneIndexLUT maps a 4-bit lane mask to its set lane indices in ascending
// order. Only the first Popcount(bits) entries of a row are meaningful;
// the rest are filler. Paired with Popcount, this lets a caller walk a
// mask's surviving lanes directly instead of re-testing every lane.
var laneIndexLUT = [16][4]uint8{
	{0, 0, 0, 0}, // 0000
	{0, 0, 0, 0}, // 0001: lane 0
	{1, 0, 0, 0}, // 0010: lane 1
	{0, 1, 0, 0}, // 0011: lanes 0,1
	{2, 0, 0, 0}, // 0100: lane 2
	{0, 2, 0, 0}, // 0101: lanes 0,2
	{1, 2, 0, 0}, // 0110: lanes 1,2
	{0, 1, 2, 0}, // 0111: lanes 0,1,2
	{3, 0, 0, 0}, // 1000: lane 3
	{0, 3, 0, 0}, // 1001: lanes 0,3
	{1, 3, 0, 0}, // 1010: lanes 1,3
	{0, 1, 3, 0}, // 1011: lanes 0,1,3
	{2, 3, 0, 0}, // 1100: lanes 2,3
	{0, 2, 3, 0}, // 1101: lanes 0,2,3
	{1, 2, 3, 0}, // 1110: lanes 1,2,3
	{0, 1, 2, 3}, // 1111: lanes 0,1,2,3
}

// LaneIndices returns this mask's set lane indices packed low-to-high,
// valid for the first Popcount(m) entries. Used for popcount-indexed
// compaction of surviving SIMD lanes into the fragment queue.
func (m Mask4) LaneIndices() [4]uint8 {
	return laneIndexLUT[m.Bits()]
}
