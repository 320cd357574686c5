// Package raster implements the hot path of the pipeline: the vertex
// processor (C7), the Sutherland-Hodgman clipper (C8), the binning layer
// (C9), and the scan-line fragment rasterizer (C10), plus the
// nearest-neighbor blitter (C11). Everything here operates on
// internal/gfx types directly so that this package never needs to import
// the public root package (which itself imports raster to drive draws).
package raster

import "github.com/Kim-Du-Yeon/SoftLight/internal/gfx"

// MaxBinnedPrims is the fixed capacity of each worker's bin array.
const MaxBinnedPrims = 1024

// MaxQueuedFrags bounds the fragment queue a scan-line run buffers before
// flushing through the shader and into the framebuffer.
const MaxQueuedFrags = 64

// ScreenVertex is one vertex of a binned primitive after perspective
// divide and screen mapping: x, y in pixels, z the post-divide depth, and
// w the reciprocal of the original clip-space w, carried for
// perspective-correct interpolation.
type ScreenVertex struct {
	X, Y, Z, W float32
}

// Bin is one fully-assembled primitive queued for rasterization, immutable
// once constructed. Triangles (filled or wireframe) populate all three
// vertex slots and the barycentric coefficient rows; lines use slots 0-1;
// points use slot 0 only.
type Bin struct {
	Prim        gfx.PrimType
	NumVerts    int
	Pos         [3]ScreenVertex
	Row0        [3]float32 // bc[i] = Row0[i]*x + Row1[i]*y + Row2[i]
	Row1        [3]float32
	Row2        [3]float32
	Varyings    [3][gfx.MaxVaryings]gfx.Vec4
	NumVaryings int
}

// queuedFrag is one fragment buffered between the depth test and the
// shader/writeback flush.
type queuedFrag struct {
	x, y    int
	z       float32
	weights [3]float32 // perspective-corrected barycentric weights (triangles)
	t       float32    // parametric position (lines)
}
