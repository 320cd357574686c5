// Package blend implements the four framebuffer blend modes the fragment
// processor applies on writeback, adapted from the teacher corpus's
// Porter-Duff mode-table idiom: a BlendMode value dispatches through a
// small switch rather than per-mode specialized call sites.
package blend

// Mode is a framebuffer blend mode applied per color attachment.
type Mode uint8

const (
	Off Mode = iota
	Alpha
	PremulAlpha
	Additive
	Screen
)

// Apply blends src (shader output, straight alpha in src.A) over dst
// (existing attachment contents) per mode, returning the new attachment
// value. All four channels are in [0,1].
func Apply(mode Mode, src, dst [4]float64) [4]float64 {
	switch mode {
	case Alpha:
		a := src[3]
		inv := 1 - a
		return [4]float64{
			dst[0]*inv + src[0]*a,
			dst[1]*inv + src[1]*a,
			dst[2]*inv + src[2]*a,
			dst[3]*inv + src[3]*a,
		}
	case PremulAlpha:
		inv := 1 - src[3]
		return [4]float64{
			dst[0]*inv + src[0],
			dst[1]*inv + src[1],
			dst[2]*inv + src[2],
			dst[3]*inv + src[3],
		}
	case Additive:
		return [4]float64{dst[0] + src[0], dst[1] + src[1], dst[2] + src[2], dst[3] + src[3]}
	case Screen:
		return [4]float64{
			1 - (1-dst[0])*(1-src[0]),
			1 - (1-dst[1])*(1-src[1]),
			1 - (1-dst[2])*(1-src[2]),
			1 - (1-dst[3])*(1-src[3]),
		}
	default: // Off: replace outright.
		return src
	}
}
