package gfx

import "github.com/Kim-Du-Yeon/SoftLight/internal/blend"

// BlendMode names a framebuffer blend mode applied on fragment writeback.
type BlendMode = blend.Mode

// Blend mode constants.
const (
	BlendOff         = blend.Off
	BlendAlpha       = blend.Alpha
	BlendPremulAlpha = blend.PremulAlpha
	BlendAdditive    = blend.Additive
	BlendScreen      = blend.Screen
)

// DepthConvention chooses between normal (near < far in the buffer) and
// reversed-Z (near > far) depth semantics. This is a context-time choice:
// switching it with a bound framebuffer mid-draw is undefined, per the
// error-handling design.
type DepthConvention uint8

const (
	DepthNormal DepthConvention = iota
	DepthReversed
)

// Passes reports whether candidate z beats the existing texel value per
// this convention: normal wants smaller (nearer), reversed wants larger.
func (d DepthConvention) Passes(candidate, existing float32) bool {
	if d == DepthReversed {
		return candidate > existing
	}
	return candidate < existing
}

// Framebuffer is an ordered list of up to MaxColorAttachments color
// attachments plus one depth attachment. All attachments, including depth,
// must share identical width and height.
const MaxColorAttachments = 8

// Framebuffer holds the attachments one draw call renders into.
type Framebuffer struct {
	width, height int
	color          []*Texture
	depth          *Texture
	depthFormat    DepthFormat
}

// FramebufferDesc describes the attachments to bind when creating a
// framebuffer through the context.
type FramebufferDesc struct {
	Color       []TextureID
	Depth       TextureID
	DepthFormat DepthFormat
}

// NewFramebuffer assembles a framebuffer from already-resolved
// attachments. Extent is taken from the first non-nil attachment; the
// caller (Context.CreateFramebuffer) is responsible for having already
// validated that every attachment shares that extent.
func NewFramebuffer(color []*Texture, depth *Texture, depthFormat DepthFormat) *Framebuffer {
	f := &Framebuffer{color: color, depth: depth, depthFormat: depthFormat}
	for _, t := range color {
		if t != nil {
			f.width, f.height = t.Width(), t.Height()
			return f
		}
	}
	if depth != nil {
		f.width, f.height = depth.Width(), depth.Height()
	}
	return f
}

// ColorAttachment returns the i-th color attachment, or nil if out of range.
func (f *Framebuffer) ColorAttachment(i int) *Texture {
	if i < 0 || i >= len(f.color) {
		return nil
	}
	return f.color[i]
}

// NumColorAttachments returns the number of bound color attachments.
func (f *Framebuffer) NumColorAttachments() int { return len(f.color) }

// Depth returns the depth attachment.
func (f *Framebuffer) Depth() *Texture { return f.depth }

// DepthFormat returns the declared storage format of the depth attachment.
func (f *Framebuffer) DepthFormat() DepthFormat { return f.depthFormat }

// Width, Height return the framebuffer's shared attachment extent.
func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// ClearColorAttachment writes c into every texel of color attachment
// index; an out-of-range index is ignored. Each attachment is cleared by
// its own call so the caller (Context.ClearFramebuffer) can fan the
// clears out across the worker pool, one task per attachment.
func (f *Framebuffer) ClearColorAttachment(index int, c [4]float64) {
	tex := f.ColorAttachment(index)
	if tex == nil {
		return
	}
	for y := 0; y < tex.Height(); y++ {
		for x := 0; x < tex.Width(); x++ {
			tex.SetTexelAt(x, y, 0, c)
		}
	}
}

// ClearDepth fills the depth attachment with clearDepth.
func (f *Framebuffer) ClearDepth(clearDepth float32) {
	if f.depth == nil {
		return
	}
	for y := 0; y < f.depth.Height(); y++ {
		for x := 0; x < f.depth.Width(); x++ {
			f.depth.setDepthAt(x, y, clearDepth)
		}
	}
}

// DepthTestAndWrite performs the depth comparison at (x, y) against conv,
// optionally writing the new depth when the test passes and mask is true.
// Returns whether the fragment passed (and thus should be shaded/written).
func (f *Framebuffer) DepthTestAndWrite(conv DepthConvention, x, y int, z float32, test, mask bool) bool {
	if f.depth == nil || !test {
		if mask && f.depth != nil {
			f.depth.setDepthAt(x, y, z)
		}
		return true
	}
	existing := f.depth.depthAt(x, y)
	if !conv.Passes(z, existing) {
		return false
	}
	if mask {
		f.depth.setDepthAt(x, y, z)
	}
	return true
}

// WriteColor writes (or blends, per mode) src into color attachment index
// at (x, y). Mode Off replaces the texel outright.
func (f *Framebuffer) WriteColor(index int, x, y int, src [4]float64, mode BlendMode) {
	tex := f.ColorAttachment(index)
	if tex == nil {
		return
	}
	if mode == BlendOff {
		tex.SetTexelAt(x, y, 0, src)
		return
	}
	dst := tex.TexelAt(x, y, 0)
	tex.SetTexelAt(x, y, 0, blend.Apply(mode, src, dst))
}
