package gfx

import "github.com/Kim-Du-Yeon/SoftLight/internal/color"

// TextureID is an opaque handle to a texture.
type TextureID uint64

// PixelChannels names the channel layout of a texture format.
type PixelChannels = color.Channels

// Channel layout constants.
const (
	ChannelsR    = color.ChannelsR
	ChannelsRG   = color.ChannelsRG
	ChannelsRGB  = color.ChannelsRGB
	ChannelsRGBA = color.ChannelsRGBA
)

// PixelElemType names the per-channel scalar storage type of a texture format.
type PixelElemType = color.ElemType

// Scalar storage type constants.
const (
	ElemU8  = color.ElemU8
	ElemU16 = color.ElemU16
	ElemU32 = color.ElemU32
	ElemU64 = color.ElemU64
	ElemF32 = color.ElemF32
	ElemF64 = color.ElemF64
	ElemF16 = color.ElemF16
)

// PixelFormat is the cartesian product of channel layout and element type
// that a [Texture] stores its texels in.
type PixelFormat = color.Format

// DepthFormat restricts a framebuffer's depth attachment to the three
// formats the rasterizer's depth test supports.
type DepthFormat uint8

const (
	DepthF16 DepthFormat = iota
	DepthF32
	DepthF64
)

// pixelFormat returns the equivalent PixelFormat (always single-channel)
// for a depth attachment.
func (d DepthFormat) pixelFormat() PixelFormat {
	switch d {
	case DepthF16:
		return PixelFormat{Channels: ChannelsR, Elem: ElemF16}
	case DepthF64:
		return PixelFormat{Channels: ChannelsR, Elem: ElemF64}
	default:
		return PixelFormat{Channels: ChannelsR, Elem: ElemF32}
	}
}

// Texture is a Width x Height x Depth grid of texels in a declared pixel
// format. Texels are addressable by integer coordinates (raw access) or by
// normalized [0,1) coordinates (sampling).
//
// Row-major, then layer-major, tightly packed; there is no padding between
// rows, matching the layout the blitter and fragment processor assume.
type Texture struct {
	width, height, depth int
	format                PixelFormat
	data                  []byte
}

// NewTexture allocates a zero-filled texture of the given extent and format.
// Returns nil if any dimension is <= 0 or the format is unrecognized.
func NewTexture(width, height, depth int, format PixelFormat) *Texture {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil
	}
	texelSize := format.TexelSize()
	if texelSize == 0 {
		return nil
	}
	return &Texture{
		width:  width,
		height: height,
		depth:  depth,
		format: format,
		data:   make([]byte, width*height*depth*texelSize),
	}
}

// Width, Height, Depth return the texture's extent in texels.
func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }
func (t *Texture) Depth() int  { return t.depth }

// Format returns the texture's pixel format.
func (t *Texture) Format() PixelFormat { return t.format }

// Bytes returns the texture's raw backing storage.
func (t *Texture) Bytes() []byte { return t.data }

// texelOffset returns the byte offset of the texel at (x, y, z), row-major
// then layer-major.
func (t *Texture) texelOffset(x, y, z int) int {
	texelSize := t.format.TexelSize()
	return ((z*t.height+y)*t.width + x) * texelSize
}

// inBounds reports whether (x, y, z) addresses a texel within the texture.
func (t *Texture) inBounds(x, y, z int) bool {
	return x >= 0 && x < t.width && y >= 0 && y < t.height && z >= 0 && z < t.depth
}

// TexelAt returns the raw (non-normalized) channel values at integer
// coordinates (x, y, z). Out-of-range coordinates return a zero value.
func (t *Texture) TexelAt(x, y, z int) [4]float64 {
	if !t.inBounds(x, y, z) {
		return [4]float64{}
	}
	off := t.texelOffset(x, y, z)
	size := t.format.TexelSize()
	return color.Decode(t.format, t.data[off:off+size])
}

// SetTexelAt writes raw channel values at integer coordinates (x, y, z).
// Out-of-range coordinates are silently ignored.
func (t *Texture) SetTexelAt(x, y, z int, v [4]float64) {
	if !t.inBounds(x, y, z) {
		return
	}
	off := t.texelOffset(x, y, z)
	size := t.format.TexelSize()
	color.Encode(t.format, t.data[off:off+size], v)
}

// Sample performs nearest-neighbor lookup at normalized coordinates (u, v)
// in [0,1) on layer z. This is the minimum contract the fragment shader
// uses; texture sampling algorithms beyond nearest-neighbor (bilinear,
// mipmapping) are an external collaborator's concern.
func (t *Texture) Sample(u, v float32, z int) [4]float64 {
	x := int(u * float32(t.width))
	y := int(v * float32(t.height))
	if x < 0 {
		x = 0
	} else if x >= t.width {
		x = t.width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.height {
		y = t.height - 1
	}
	return t.TexelAt(x, y, z)
}

// depthAt returns the depth value at (x, y) as float32, regardless of the
// attachment's underlying storage width.
func (t *Texture) depthAt(x, y int) float32 {
	v := t.TexelAt(x, y, 0)
	return float32(v[0])
}

// setDepthAt writes a depth value at (x, y).
func (t *Texture) setDepthAt(x, y int, d float32) {
	t.SetTexelAt(x, y, 0, [4]float64{float64(d)})
}
