package color

import "math"

// sRGBToLinearLUT converts an 8-bit sRGB-encoded channel value to linear.
// 256 entries, built once at init from the sRGB transfer function.
var sRGBToLinearLUT [256]float64

// linearToSRGBLUT converts a linear channel value to 8-bit sRGB. 4096
// entries (12-bit) is more precision than an 8-bit output needs but keeps
// quantization error well below one sRGB step.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range sRGBToLinearLUT {
		sRGBToLinearLUT[i] = srgbToLinearExact(float64(i) / 255.0)
	}
	for i := range linearToSRGBLUT {
		linear := float64(i) / float64(len(linearToSRGBLUT)-1)
		linearToSRGBLUT[i] = uint8(clampU(linearToSRGBExact(linear)*255.0+0.5, 255))
	}
}

func srgbToLinearExact(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func linearToSRGBExact(l float64) float64 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// srgbToLinear converts an 8-bit sRGB-encoded channel value, in the same
// raw [0, 255] range every other u8 channel decodes to, into its linear
// equivalent, still scaled to [0, 255] so every channel of a decoded
// texel shares one unit regardless of whether it passed through gamma
// correction.
func srgbToLinear(v float64) float64 {
	i := int(v)
	if i < 0 {
		i = 0
	}
	if i > 255 {
		i = 255
	}
	return sRGBToLinearLUT[i] * 255.0
}

// linearToSRGB converts a linear channel value in [0, 255] back to its
// 8-bit sRGB encoding, in [0, 255], ready for the ordinary u8 encode path.
func linearToSRGB(v float64) float64 {
	n := len(linearToSRGBLUT) - 1
	i := int(v/255.0*float64(n) + 0.5)
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return float64(linearToSRGBLUT[i])
}
