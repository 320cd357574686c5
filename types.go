package sl

import (
	"github.com/Kim-Du-Yeon/SoftLight/internal/gfx"
	"github.com/Kim-Du-Yeon/SoftLight/internal/raster"
)

// Core geometry, shading, and resource types live in internal/gfx so that
// internal/raster can operate on them directly without importing this
// package (which would be an import cycle, since this package dispatches
// into internal/raster for the hot path). Everything below is a thin
// re-export.

// Vec4 is a 4-component float vector used for clip-space positions,
// varyings, and fragment outputs.
type Vec4 = gfx.Vec4

// ElementType names the scalar type an attribute or index stream is stored as.
type ElementType = gfx.ElementType

const (
	ElementByte   = gfx.ElementByte
	ElementShort  = gfx.ElementShort
	ElementInt    = gfx.ElementInt
	ElementFloat  = gfx.ElementFloat
	ElementDouble = gfx.ElementDouble
)

// IndexWidth names the width of entries in an index buffer.
type IndexWidth = gfx.IndexWidth

const (
	Index8  = gfx.Index8
	Index16 = gfx.Index16
	Index32 = gfx.Index32
)

// Buffer is a typed opaque byte store backing VBOs, IBOs, and UBOs.
type Buffer = gfx.Buffer

// AttribDim is the component count of a vertex attribute: 1..4.
type AttribDim = gfx.AttribDim

// VertexAttrib describes one binding slot of a [VAO].
type VertexAttrib = gfx.VertexAttrib

// VAODesc describes a vertex array: its VBO, attribute layout, and an
// optional IBO.
type VAODesc = gfx.VAODesc

// VAO is the live, context-resolved form of a VAODesc.
type VAO = gfx.VAO

// PixelChannels, PixelElemType, PixelFormat describe texture storage.
type (
	PixelChannels = gfx.PixelChannels
	PixelElemType = gfx.PixelElemType
	PixelFormat   = gfx.PixelFormat
)

const (
	ChannelsR    = gfx.ChannelsR
	ChannelsRG   = gfx.ChannelsRG
	ChannelsRGB  = gfx.ChannelsRGB
	ChannelsRGBA = gfx.ChannelsRGBA

	ElemU8  = gfx.ElemU8
	ElemU16 = gfx.ElemU16
	ElemU32 = gfx.ElemU32
	ElemU64 = gfx.ElemU64
	ElemF32 = gfx.ElemF32
	ElemF64 = gfx.ElemF64
	ElemF16 = gfx.ElemF16
)

// DepthFormat restricts a framebuffer's depth attachment to f16, f32, or f64.
type DepthFormat = gfx.DepthFormat

const (
	DepthF16 = gfx.DepthF16
	DepthF32 = gfx.DepthF32
	DepthF64 = gfx.DepthF64
)

// Texture is a Width x Height x Depth grid of texels.
type Texture = gfx.Texture

// NewTexture allocates a zero-filled texture.
func NewTexture(width, height, depth int, format PixelFormat) *Texture {
	return gfx.NewTexture(width, height, depth, format)
}

// BlendMode names a framebuffer blend mode applied on fragment writeback.
type BlendMode = gfx.BlendMode

const (
	BlendOff         = gfx.BlendOff
	BlendAlpha       = gfx.BlendAlpha
	BlendPremulAlpha = gfx.BlendPremulAlpha
	BlendAdditive    = gfx.BlendAdditive
	BlendScreen      = gfx.BlendScreen
)

// DepthConvention chooses between normal and reversed-Z depth semantics.
type DepthConvention = gfx.DepthConvention

const (
	DepthNormal   = gfx.DepthNormal
	DepthReversed = gfx.DepthReversed
)

// Framebuffer holds the attachments one draw call renders into.
type Framebuffer = gfx.Framebuffer

// FramebufferDesc describes the attachments to bind when creating a framebuffer.
type FramebufferDesc = gfx.FramebufferDesc

// CullMode selects which winding of a triangle is discarded before rasterization.
type CullMode = gfx.CullMode

const (
	CullOff   = gfx.CullOff
	CullBack  = gfx.CullBack
	CullFront = gfx.CullFront
)

type (
	DepthTestMode = gfx.DepthTestMode
	DepthMaskMode = gfx.DepthMaskMode
)

const (
	DepthTestOff = gfx.DepthTestOff
	DepthTestOn  = gfx.DepthTestOn
	DepthMaskOff = gfx.DepthMaskOff
	DepthMaskOn  = gfx.DepthMaskOn
)

// MaxVaryings and MaxOutputs bound the per-vertex varying count and
// per-fragment output count.
const (
	MaxVaryings = gfx.MaxVaryings
	MaxOutputs  = gfx.MaxOutputs
)

// MaxColorAttachments bounds the number of color attachments a framebuffer
// may have.
const MaxColorAttachments = gfx.MaxColorAttachments

// FragCoord is the integer/float screen position handed to a fragment shader.
type FragCoord = gfx.FragCoord

// VertexParam is the argument passed to a [VertexShader] invocation.
type VertexParam = gfx.VertexParam

// VertexShader computes a clip-space position for one vertex.
type VertexShader = gfx.VertexShader

// FragmentParam is the argument passed to a [FragmentShader] invocation.
type FragmentParam = gfx.FragmentParam

// FragmentShader computes up to NumOutputs color outputs for one fragment.
type FragmentShader = gfx.FragmentShader

// ShaderDesc describes a complete shader: callables plus pipeline metadata.
type ShaderDesc = gfx.ShaderDesc

// Shader is the context-resolved, validated form of a ShaderDesc.
type Shader = gfx.Shader

// WindowBuffer is the opaque destination a [Context.Blit] call copies
// into: width, height, and a tightly packed 8-bit RGBA backing store the
// caller owns.
type WindowBuffer = raster.WindowBuffer
