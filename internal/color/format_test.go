package color

import (
	"math"
	"testing"
)

func TestChannelsCount(t *testing.T) {
	cases := map[Channels]int{
		ChannelsR:    1,
		ChannelsRG:   2,
		ChannelsRGB:  3,
		ChannelsRGBA: 4,
	}
	for c, want := range cases {
		if got := c.Count(); got != want {
			t.Errorf("Channels(%d).Count() = %d, want %d", c, got, want)
		}
	}
}

func TestElemTypeSize(t *testing.T) {
	cases := map[ElemType]int{
		ElemU8:  1,
		ElemU16: 2,
		ElemU32: 4,
		ElemU64: 8,
		ElemF32: 4,
		ElemF64: 8,
		ElemF16: 2,
	}
	for e, want := range cases {
		if got := e.Size(); got != want {
			t.Errorf("ElemType(%d).Size() = %d, want %d", e, got, want)
		}
	}
}

func TestFormatTexelSize(t *testing.T) {
	f := Format{Channels: ChannelsRGBA, Elem: ElemU8}
	if got := f.TexelSize(); got != 4 {
		t.Fatalf("TexelSize() = %d, want 4", got)
	}
	f = Format{Channels: ChannelsRGB, Elem: ElemF32}
	if got := f.TexelSize(); got != 12 {
		t.Fatalf("TexelSize() = %d, want 12", got)
	}
}

func TestEncodeDecodeRoundTripU8(t *testing.T) {
	f := Format{Channels: ChannelsRGBA, Elem: ElemU8}
	texel := make([]byte, f.TexelSize())
	in := [4]float64{10, 20, 30, 255}
	Encode(f, texel, in)
	out := Decode(f, texel)
	if out != in {
		t.Fatalf("round trip = %v, want %v", out, in)
	}
}

func TestEncodeDecodeRoundTripF32(t *testing.T) {
	f := Format{Channels: ChannelsR, Elem: ElemF32}
	texel := make([]byte, f.TexelSize())
	in := [4]float64{float64(float32(3.14159))}
	Encode(f, texel, in)
	out := Decode(f, texel)
	if out[0] != in[0] {
		t.Fatalf("round trip = %v, want %v", out[0], in[0])
	}
}

func TestEncodeDecodeRoundTripF16LossyButStable(t *testing.T) {
	f := Format{Channels: ChannelsR, Elem: ElemF16}
	texel := make([]byte, f.TexelSize())
	Encode(f, texel, [4]float64{0.5})
	out := Decode(f, texel)
	if math.Abs(out[0]-0.5) > 1e-3 {
		t.Fatalf("decode(encode(0.5)) = %v, want ~0.5", out[0])
	}
}

func TestEncodeU8Clamps(t *testing.T) {
	f := Format{Channels: ChannelsR, Elem: ElemU8}
	texel := make([]byte, f.TexelSize())
	Encode(f, texel, [4]float64{500})
	out := Decode(f, texel)
	if out[0] != 255 {
		t.Fatalf("Encode should clamp to 255, got %v", out[0])
	}
	Encode(f, texel, [4]float64{-10})
	out = Decode(f, texel)
	if out[0] != 0 {
		t.Fatalf("Encode should clamp to 0, got %v", out[0])
	}
}

func TestDecodeRGBAMultiChannelOrder(t *testing.T) {
	f := Format{Channels: ChannelsRGBA, Elem: ElemU8}
	texel := []byte{10, 20, 30, 40}
	got := Decode(f, texel)
	want := [4]float64{10, 20, 30, 40}
	if got != want {
		t.Fatalf("Decode() = %v, want %v", got, want)
	}
}
