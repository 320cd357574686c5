package raster

import (
	"github.com/Kim-Du-Yeon/SoftLight/internal/gfx"
	"github.com/Kim-Du-Yeon/SoftLight/internal/wide"
)

// UseSIMD reports whether a depth attachment's storage format qualifies
// for the 4-wide batched inner loop. f64 depth is excluded: the wide
// package's lanes are float32, and round-tripping f64 through them would
// widen the documented ULP tolerance beyond what ships as "SIMD path
// agrees with scalar."
func UseSIMD(format gfx.DepthFormat) bool {
	return format == gfx.DepthF16 || format == gfx.DepthF32
}

// rasterizeTriangleSIMD mirrors rasterizeTriangle's scan-line structure
// exactly — same bounding box, same per-scan-line inside/out span search —
// but walks the inside span four pixels at a time through evalQuad once
// the iteration count allows, falling back to the scalar per-pixel path
// for the remainder. Depth write and shading happen identically to the
// scalar path: SIMD only batches barycentric evaluation and the depth
// comparison, not fragment output, so the two paths share
// flushTriangleQueue verbatim.
func (fp *FragmentProcessor) rasterizeTriangleSIMD(b Bin) {
	width, height := fp.Framebuffer.Width(), fp.Framebuffer.Height()
	p := b.Pos

	yMin := int(minOf3(p[0].Y, p[1].Y, p[2].Y))
	yMax := int(maxOf3(p[0].Y, p[1].Y, p[2].Y)) + 1
	if yMin < 0 {
		yMin = 0
	}
	if yMax > height {
		yMax = height
	}
	xBoundMin := int(minOf3(p[0].X, p[1].X, p[2].X))
	xBoundMax := int(maxOf3(p[0].X, p[1].X, p[2].X)) + 1
	if xBoundMin < 0 {
		xBoundMin = 0
	}
	if xBoundMax > width {
		xBoundMax = width
	}

	for y := yMin; y < yMax; y++ {
		if mod(y, fp.NumWorkers) != fp.TileID {
			continue
		}

		first, last := -1, -1
		for x := xBoundMin; x < xBoundMax; x++ {
			if _, inside := fp.evalBC(b, x, y); inside {
				if first == -1 {
					first = x
				}
				last = x
			}
		}
		if first == -1 {
			continue
		}

		fp.qlen = 0
		x := first
		for x+4 <= last+1 {
			fp.evalQuad(b, x, y)
			x += 4
		}
		for ; x <= last; x++ {
			fp.evalTrianglePixel(b, x, y)
		}
		fp.flushTriangleQueue(b)
	}
}

// evalQuad evaluates barycentrics and the depth test for four contiguous
// pixels (x..x+3, all already known to lie inside the triangle's span on
// this scan-line) in one batch, then compacts the surviving lanes via
// Popcount/LaneIndices and queues each one using the same
// perspective-correction formula as the scalar path.
func (fp *FragmentProcessor) evalQuad(b Bin, x, y int) {
	p := b.Pos
	fy := float32(y) + 0.5

	var bc [3]wide.F32x4
	xVec := wide.F32x4{float32(x) + 0.5, float32(x) + 1.5, float32(x) + 2.5, float32(x) + 3.5}
	for i := 0; i < 3; i++ {
		c := b.Row1[i]*fy + b.Row2[i]
		bc[i] = xVec.MulAdd(wide.SplatF32(b.Row0[i]), wide.SplatF32(c))
	}

	zVec := bc[0].Mul(wide.SplatF32(p[0].Z))
	zVec = zVec.Add(bc[1].Mul(wide.SplatF32(p[1].Z)))
	zVec = zVec.Add(bc[2].Mul(wide.SplatF32(p[2].Z)))

	depth := fp.Framebuffer.Depth()
	var existing wide.F32x4
	for i := 0; i < 4; i++ {
		if depth != nil {
			existing[i] = float32(depth.TexelAt(x+i, y, 0)[0])
		}
	}

	var mask wide.Mask4
	switch {
	case !fp.Shader.DepthTest() || depth == nil:
		mask = wide.Mask4{true, true, true, true}
	case fp.DepthConv == gfx.DepthReversed:
		mask = zVec.Gt(existing)
	default:
		mask = zVec.Lt(existing)
	}
	survivors := mask.Popcount()
	if survivors == 0 {
		return
	}

	lanes := mask.LaneIndices()
	for k := 0; k < survivors; k++ {
		i := int(lanes[k])
		lane := [3]float32{bc[0][i], bc[1][i], bc[2][i]}
		denom := lane[0]*p[0].W + lane[1]*p[1].W + lane[2]*p[2].W
		persp := float32(1)
		if denom != 0 {
			persp = 1 / denom
		}
		weights := [3]float32{
			lane[0] * p[0].W * persp,
			lane[1] * p[1].W * persp,
			lane[2] * p[2].W * persp,
		}
		fp.push(b, queuedFrag{x: x + i, y: y, z: zVec[i], weights: weights})
	}
}
