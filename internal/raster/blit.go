package raster

import (
	"encoding/binary"
	"math"

	"github.com/Kim-Du-Yeon/SoftLight/internal/gfx"
)

const fixedShift = 16

// WindowBuffer is the opaque destination the blitter copies into: width,
// height, and a tightly packed 8-bit RGBA backing store the caller owns.
// The core treats this as a dumb byte sink; everything about how it
// reaches the screen is a window-system concern outside this package.
type WindowBuffer struct {
	Width, Height int
	Pixels        []byte // len == Width*Height*4, row-major, top-left origin
}

// Blit scales src into dst using nearest-neighbor sampling at a
// low-precision Q16.16 fixed-point step ratio, flipping Y so src's
// bottom-left texel lands at dst's top-left. tileID/numWorkers restrict
// this call to rows y ≡ tileID (mod numWorkers), matching the rest of the
// pipeline's scan-line worker partitioning.
func Blit(src *gfx.Texture, dst *WindowBuffer, tileID, numWorkers int) {
	if src == nil || dst == nil || dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	xRatio := fixedRatio(src.Width(), dst.Width)
	yRatio := fixedRatio(src.Height(), dst.Height)

	switch {
	case isRGBA8(src.Format()):
		blitRGBA8(src, dst, xRatio, yRatio, tileID, numWorkers)
	case isRGBAF32(src.Format()):
		blitRGBAF32(src, dst, xRatio, yRatio, tileID, numWorkers)
	default:
		blitGeneric(src, dst, xRatio, yRatio, tileID, numWorkers)
	}
}

func fixedRatio(srcExtent, dstExtent int) int {
	if dstExtent == 0 {
		return 0
	}
	return (srcExtent << fixedShift) / dstExtent
}

func isRGBA8(f gfx.PixelFormat) bool {
	return f.Channels == gfx.ChannelsRGBA && f.Elem == gfx.ElemU8
}

func isRGBAF32(f gfx.PixelFormat) bool {
	return f.Channels == gfx.ChannelsRGBA && f.Elem == gfx.ElemF32
}

// flippedSrcRow maps a destination row to the (Y-flipped) source row the
// fixed-point ratio selects, clamped to the source's extent.
func flippedSrcRow(y, yRatio, srcHeight int) int {
	srcY := (y * yRatio) >> fixedShift
	flipped := srcHeight - 1 - srcY
	if flipped < 0 {
		flipped = 0
	} else if flipped >= srcHeight {
		flipped = srcHeight - 1
	}
	return flipped
}

// blitGeneric handles every pixel format through the decode table:
// correct for any (channel count x element type) combination, slowest.
func blitGeneric(src *gfx.Texture, dst *WindowBuffer, xRatio, yRatio, tileID, numWorkers int) {
	srcH := src.Height()
	inv := 1 / elemScale(src.Format().Elem)
	for y := 0; y < dst.Height; y++ {
		if mod(y, numWorkers) != tileID {
			continue
		}
		flippedY := flippedSrcRow(y, yRatio, srcH)
		rowOff := y * dst.Width * 4
		for x := 0; x < dst.Width; x++ {
			srcX := (x * xRatio) >> fixedShift
			v := src.TexelAt(srcX, flippedY, 0)
			off := rowOff + x*4
			dst.Pixels[off+0] = toU8(v[0] * inv)
			dst.Pixels[off+1] = toU8(v[1] * inv)
			dst.Pixels[off+2] = toU8(v[2] * inv)
			dst.Pixels[off+3] = toU8(v[3] * inv)
		}
	}
}

// elemScale returns the native maximum of an integer element type's raw
// decoded range, the divisor that normalizes color.Decode's raw channel
// values onto [0,1] before toU8 saturates them. Float element types are
// assumed already normalized, matching blitRGBAF32's convention.
func elemScale(e gfx.PixelElemType) float64 {
	switch e {
	case gfx.ElemU8:
		return 255
	case gfx.ElemU16:
		return 65535
	case gfx.ElemU32:
		return 4294967295
	case gfx.ElemU64:
		return 18446744073709551615
	default:
		return 1
	}
}

// blitRGBA8 specializes the already-8-bit-RGBA case: every texel copies
// straight into the destination with no decode/encode round trip at all,
// the nearest idiomatic Go has to the source's streaming-store fast path.
func blitRGBA8(src *gfx.Texture, dst *WindowBuffer, xRatio, yRatio, tileID, numWorkers int) {
	srcH := src.Height()
	srcBytes := src.Bytes()
	srcStride := src.Width() * 4
	for y := 0; y < dst.Height; y++ {
		if mod(y, numWorkers) != tileID {
			continue
		}
		rowBase := flippedSrcRow(y, yRatio, srcH) * srcStride
		dstRowOff := y * dst.Width * 4
		for x := 0; x < dst.Width; x++ {
			srcOff := rowBase + ((x*xRatio)>>fixedShift)*4
			dstOff := dstRowOff + x*4
			copy(dst.Pixels[dstOff:dstOff+4], srcBytes[srcOff:srcOff+4])
		}
	}
}

// blitRGBAF32 specializes the f32-RGBA case: reads the four raw float32
// lanes directly instead of going through the generic decode table, with
// a saturating conversion to u8 per channel.
func blitRGBAF32(src *gfx.Texture, dst *WindowBuffer, xRatio, yRatio, tileID, numWorkers int) {
	srcH := src.Height()
	srcBytes := src.Bytes()
	srcStride := src.Width() * 16
	for y := 0; y < dst.Height; y++ {
		if mod(y, numWorkers) != tileID {
			continue
		}
		rowBase := flippedSrcRow(y, yRatio, srcH) * srcStride
		dstRowOff := y * dst.Width * 4
		for x := 0; x < dst.Width; x++ {
			srcOff := rowBase + ((x*xRatio)>>fixedShift)*16
			dstOff := dstRowOff + x*4
			for c := 0; c < 4; c++ {
				bits := binary.LittleEndian.Uint32(srcBytes[srcOff+c*4 : srcOff+c*4+4])
				dst.Pixels[dstOff+c] = toU8(float64(math.Float32frombits(bits)))
			}
		}
	}
}

func toU8(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
