package color

import (
	"math"
	"testing"
)

func TestSRGBToLinearEndpoints(t *testing.T) {
	if got := srgbToLinear(0); got != 0 {
		t.Errorf("srgbToLinear(0) = %v, want 0", got)
	}
	if got := srgbToLinear(255); math.Abs(got-255) > 1e-6 {
		t.Errorf("srgbToLinear(255) = %v, want ~255", got)
	}
}

func TestLinearToSRGBEndpoints(t *testing.T) {
	if got := linearToSRGB(0); got != 0 {
		t.Errorf("linearToSRGB(0) = %v, want 0", got)
	}
	if got := linearToSRGB(255); got != 255 {
		t.Errorf("linearToSRGB(255) = %v, want 255", got)
	}
}

func TestSRGBRoundTripMidtone(t *testing.T) {
	// sRGB 128 is the canonical "not half of 255 in linear" example: gamma
	// decoding should land well below the naive linear midpoint.
	linear := srgbToLinear(128)
	if linear <= 0 || linear >= 128 {
		t.Fatalf("srgbToLinear(128) = %v, want strictly between 0 and 128", linear)
	}
	back := linearToSRGB(linear)
	if math.Abs(back-128) > 1 {
		t.Fatalf("round trip srgb->linear->srgb drifted: got %v, want ~128", back)
	}
}

func TestFormatSRGBDecodeLinearizesColorNotAlpha(t *testing.T) {
	f := Format{Channels: ChannelsRGBA, Elem: ElemU8, SRGB: true}
	texel := []byte{128, 128, 128, 128}
	got := Decode(f, texel)

	if got[0] <= 0 || got[0] >= 128 {
		t.Fatalf("color channel should be linearized and reduced, got %v", got[0])
	}
	if got[3] != 128 {
		t.Fatalf("alpha channel must not be gamma-decoded, got %v, want 128", got[3])
	}
}

func TestFormatSRGBEncodeRoundTrip(t *testing.T) {
	f := Format{Channels: ChannelsRGBA, Elem: ElemU8, SRGB: true}
	texel := make([]byte, f.TexelSize())
	in := [4]float64{50, 128, 200, 230}
	Encode(f, texel, in)
	got := Decode(f, texel)
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-in[i]) > 2 {
			t.Errorf("channel %d round trip = %v, want ~%v", i, got[i], in[i])
		}
	}
	// Alpha passes through the ordinary u8 path unchanged aside from rounding.
	if got[3] != in[3] {
		t.Errorf("alpha channel should not be gamma round-tripped, got %v, want %v", got[3], in[3])
	}
}

func TestFormatWithoutSRGBFlagSkipsConversion(t *testing.T) {
	f := Format{Channels: ChannelsR, Elem: ElemU8}
	texel := []byte{128}
	got := Decode(f, texel)
	if got[0] != 128 {
		t.Fatalf("non-sRGB format must not be gamma-decoded, got %v", got[0])
	}
}
