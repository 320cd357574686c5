// Package color implements the pixel-format dispatch table used by texture
// storage and sampling: the cartesian product of channel count
// ({R, RG, RGB, RGBA}) and element type ({u8, u16, u32, u64, f32, f64, f16})
// is handled by a runtime table of per-scalar encode/decode functions keyed
// on element type, applied once per channel of the format, rather than by
// generating one specialization per combination, trading a small amount of
// indirection for one code path to maintain.
package color

import "math"

// Channels is the channel layout of a pixel format.
type Channels uint8

const (
	ChannelsR Channels = iota
	ChannelsRG
	ChannelsRGB
	ChannelsRGBA
)

// Count returns the number of channels this layout carries.
func (c Channels) Count() int {
	switch c {
	case ChannelsR:
		return 1
	case ChannelsRG:
		return 2
	case ChannelsRGB:
		return 3
	case ChannelsRGBA:
		return 4
	default:
		return 0
	}
}

// ElemType is the scalar storage type of one channel.
type ElemType uint8

const (
	ElemU8 ElemType = iota
	ElemU16
	ElemU32
	ElemU64
	ElemF32
	ElemF64
	ElemF16
)

// Size returns the storage width in bytes of one scalar of this type.
func (e ElemType) Size() int {
	switch e {
	case ElemU8:
		return 1
	case ElemU16, ElemF16:
		return 2
	case ElemU32, ElemF32:
		return 4
	case ElemU64, ElemF64:
		return 8
	default:
		return 0
	}
}

// Format is a full pixel format: channel layout plus per-channel element
// type. SRGB marks an 8-bit format's color channels (not alpha) as
// sRGB-encoded storage; Decode/Encode linearize/re-encode through a
// lookup table so shading always operates on linear values.
type Format struct {
	Channels Channels
	Elem     ElemType
	SRGB     bool
}

// TexelSize returns the size in bytes of one texel in this format.
func (f Format) TexelSize() int {
	return f.Channels.Count() * f.Elem.Size()
}

// decodeFn reads one texel (TexelSize bytes) and returns up to 4 raw
// channel values, not normalized, in declaration order (R,G,B,A).
type decodeFn func(texel []byte) [4]float64

// encodeFn writes up to 4 raw channel values into a texel-sized byte slice.
type encodeFn func(texel []byte, v [4]float64)

var decodeTable = map[ElemType]decodeFn{
	ElemU8:  decodeU8,
	ElemU16: decodeU16,
	ElemU32: decodeU32,
	ElemU64: decodeU64,
	ElemF32: decodeF32,
	ElemF64: decodeF64,
	ElemF16: decodeF16,
}

var encodeTable = map[ElemType]encodeFn{
	ElemU8:  encodeU8,
	ElemU16: encodeU16,
	ElemU32: encodeU32,
	ElemU64: encodeU64,
	ElemF32: encodeF32,
	ElemF64: encodeF64,
	ElemF16: encodeF16,
}

// Decode reads channels raw channel values out of a texel for format f. If
// f is sRGB-encoded, color channels (all but the last, when the format
// carries alpha) are linearized; alpha is never gamma-encoded.
func Decode(f Format, texel []byte) [4]float64 {
	fn := decodeTable[f.Elem]
	n := f.Channels.Count()
	size := f.Elem.Size()
	alphaIdx := alphaChannelIndex(f)
	var out [4]float64
	for i := 0; i < n; i++ {
		v := fn(texel[i*size : (i+1)*size])[0]
		if f.SRGB && f.Elem == ElemU8 && i != alphaIdx {
			v = srgbToLinear(v)
		}
		out[i] = v
	}
	return out
}

// Encode writes raw channel values into a texel for format f, re-encoding
// color channels back to sRGB when f.SRGB is set.
func Encode(f Format, texel []byte, v [4]float64) {
	fn := encodeTable[f.Elem]
	n := f.Channels.Count()
	size := f.Elem.Size()
	alphaIdx := alphaChannelIndex(f)
	for i := 0; i < n; i++ {
		val := v[i]
		if f.SRGB && f.Elem == ElemU8 && i != alphaIdx {
			val = linearToSRGB(val)
		}
		fn(texel[i*size:(i+1)*size], [4]float64{val})
	}
}

// alphaChannelIndex returns the channel slot carrying alpha for f, or -1
// if f has no alpha channel (R/RG/RGB all pass every channel through
// gamma correction; only RGBA exempts its last channel).
func alphaChannelIndex(f Format) int {
	if f.Channels == ChannelsRGBA {
		return 3
	}
	return -1
}

func decodeU8(t []byte) [4]float64  { return [4]float64{float64(t[0])} }
func encodeU8(t []byte, v [4]float64) { t[0] = uint8(clampU(v[0], 255)) }

func decodeU16(t []byte) [4]float64 {
	return [4]float64{float64(uint16(t[0]) | uint16(t[1])<<8)}
}
func encodeU16(t []byte, v [4]float64) {
	x := uint16(clampU(v[0], 65535))
	t[0] = byte(x)
	t[1] = byte(x >> 8)
}

func decodeU32(t []byte) [4]float64 {
	x := uint32(t[0]) | uint32(t[1])<<8 | uint32(t[2])<<16 | uint32(t[3])<<24
	return [4]float64{float64(x)}
}
func encodeU32(t []byte, v [4]float64) {
	x := uint32(clampU(v[0], 4294967295))
	t[0] = byte(x)
	t[1] = byte(x >> 8)
	t[2] = byte(x >> 16)
	t[3] = byte(x >> 24)
}

func decodeU64(t []byte) [4]float64 {
	var x uint64
	for i := 0; i < 8; i++ {
		x |= uint64(t[i]) << (8 * i)
	}
	return [4]float64{float64(x)}
}
func encodeU64(t []byte, v [4]float64) {
	x := uint64(v[0])
	for i := 0; i < 8; i++ {
		t[i] = byte(x >> (8 * i))
	}
}

func decodeF32(t []byte) [4]float64 {
	bits := uint32(t[0]) | uint32(t[1])<<8 | uint32(t[2])<<16 | uint32(t[3])<<24
	return [4]float64{float64(math.Float32frombits(bits))}
}
func encodeF32(t []byte, v [4]float64) {
	bits := math.Float32bits(float32(v[0]))
	t[0] = byte(bits)
	t[1] = byte(bits >> 8)
	t[2] = byte(bits >> 16)
	t[3] = byte(bits >> 24)
}

func decodeF64(t []byte) [4]float64 {
	var bits uint64
	for i := 0; i < 8; i++ {
		bits |= uint64(t[i]) << (8 * i)
	}
	return [4]float64{math.Float64frombits(bits)}
}
func encodeF64(t []byte, v [4]float64) {
	bits := math.Float64bits(v[0])
	for i := 0; i < 8; i++ {
		t[i] = byte(bits >> (8 * i))
	}
}

func decodeF16(t []byte) [4]float64 {
	bits := uint16(t[0]) | uint16(t[1])<<8
	return [4]float64{float64(Float16ToFloat32(bits))}
}
func encodeF16(t []byte, v [4]float64) {
	bits := Float32ToFloat16(float32(v[0]))
	t[0] = byte(bits)
	t[1] = byte(bits >> 8)
}

func clampU(v float64, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
