package raster

import "github.com/Kim-Du-Yeon/SoftLight/internal/gfx"

// FragmentProcessor is the per-worker C10 stage: it drains bins handed to
// it by the binning layer, rasterizing only the scan-lines this worker
// owns (y mod NumWorkers == TileID) and invoking the fragment shader on
// every surviving sample. One FragmentProcessor is constructed per worker
// per draw; it is not safe for concurrent use by more than one goroutine.
//
// This is the scalar reference path; fragproc_simd.go's SIMD path must
// agree with it bit-for-bit aside from the documented reciprocal ULP
// tolerance.
type FragmentProcessor struct {
	Shader      *gfx.Shader
	Uniforms    *gfx.Buffer
	Framebuffer *gfx.Framebuffer
	DepthConv   gfx.DepthConvention
	TileID      int
	NumWorkers  int

	// SIMD selects the 4-wide batched inner loop for filled triangles,
	// set by the caller once per draw from UseSIMD(depthFormat). Lines,
	// points, and wireframe triangles always use the scalar path: there
	// is too little per-primitive work to amortize a batch.
	SIMD bool

	queue          [MaxQueuedFrags]queuedFrag
	qlen           int
	varyingScratch [gfx.MaxVaryings]gfx.Vec4
	outputScratch  [gfx.MaxOutputs]gfx.Vec4
}

// RasterizeBin implements Rasterizer.
func (fp *FragmentProcessor) RasterizeBin(_ int, b Bin) {
	switch b.Prim {
	case gfx.PrimLines:
		fp.rasterizeLine(b)
	case gfx.PrimPoints:
		fp.rasterizePoint(b)
	case gfx.PrimTrianglesWireframe:
		fp.rasterizeTriangle(b, true)
	default: // gfx.PrimTriangles
		if fp.SIMD {
			fp.rasterizeTriangleSIMD(b)
		} else {
			fp.rasterizeTriangle(b, false)
		}
	}
}

// triangleEdges pairs each barycentric weight slot with the two vertex
// indices of the edge opposite it, matching the convention baked into
// Bin.Row0/Row1/Row2 by barycentricRows.
var triangleEdges = [3][2]int{{1, 2}, {2, 0}, {0, 1}}

func (fp *FragmentProcessor) rasterizeTriangle(b Bin, wireframe bool) {
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
		if wireframe {
			fp.evalTrianglePixel(b, first, y)
			if last != first {
				fp.evalTrianglePixel(b, last, y)
			}
		} else {
			// The span between the first and last inside pixel on a
			// scan-line is entirely inside: triangles are convex, so the
			// half-plane tests that pass at the endpoints pass throughout.
			for x := first; x <= last; x++ {
				fp.evalTrianglePixel(b, x, y)
			}
		}
		fp.flushTriangleQueue(b)
	}
}

// evalBC evaluates the three barycentric weights at pixel center
// (x+0.5, y+0.5) and reports whether the sample lies inside the
// triangle, applying the top-left rule to break exact-zero ties on shared
// edges so neither triangle double-shades them.
func (fp *FragmentProcessor) evalBC(b Bin, x, y int) (bc [3]float32, inside bool) {
	fx, fy := float32(x)+0.5, float32(y)+0.5
	inside = true
	for i := 0; i < 3; i++ {
		bc[i] = b.Row0[i]*fx + b.Row1[i]*fy + b.Row2[i]
		if bc[i] < 0 {
			inside = false
			continue
		}
		if bc[i] == 0 {
			e := triangleEdges[i]
			ax, ay := b.Pos[e[0]].X, b.Pos[e[0]].Y
			bx, by := b.Pos[e[1]].X, b.Pos[e[1]].Y
			if !isTopLeftEdge(bx-ax, by-ay) {
				inside = false
			}
		}
	}
	return bc, inside
}

// isTopLeftEdge classifies the directed edge (dx, dy): horizontal edges
// going left-to-right are "top", and any edge going upward on screen
// (decreasing y) is "left" — together the top-left rule that decides
// which triangle owns a pixel exactly on a shared edge.
func isTopLeftEdge(dx, dy float32) bool {
	if dy == 0 {
		return dx > 0
	}
	return dy < 0
}

func (fp *FragmentProcessor) evalTrianglePixel(b Bin, x, y int) {
	bc, inside := fp.evalBC(b, x, y)
	if !inside {
		return
	}
	p := b.Pos
	z := bc[0]*p[0].Z + bc[1]*p[1].Z + bc[2]*p[2].Z
	if !fp.Framebuffer.DepthTestAndWrite(fp.DepthConv, x, y, z, fp.Shader.DepthTest(), false) {
		return
	}

	denom := bc[0]*p[0].W + bc[1]*p[1].W + bc[2]*p[2].W
	persp := float32(1)
	if denom != 0 {
		persp = 1 / denom
	}
	weights := [3]float32{
		bc[0] * p[0].W * persp,
		bc[1] * p[1].W * persp,
		bc[2] * p[2].W * persp,
	}
	fp.push(b, queuedFrag{x: x, y: y, z: z, weights: weights})
}

func (fp *FragmentProcessor) push(b Bin, f queuedFrag) {
	fp.queue[fp.qlen] = f
	fp.qlen++
	if fp.qlen == MaxQueuedFrags {
		fp.flushTriangleQueue(b)
	}
}

// flushTriangleQueue shades and writes back every queued fragment,
// interpolating varyings with the perspective-corrected barycentric
// weights computed at queue time.
func (fp *FragmentProcessor) flushTriangleQueue(b Bin) {
	n := b.NumVaryings
	for i := 0; i < fp.qlen; i++ {
		f := fp.queue[i]
		varyings := fp.varyingScratch[:n]
		for k := 0; k < n; k++ {
			v0, v1, v2 := b.Varyings[0][k], b.Varyings[1][k], b.Varyings[2][k]
			varyings[k] = v0.Scale(f.weights[0]).Add(v1.Scale(f.weights[1])).Add(v2.Scale(f.weights[2]))
		}
		fp.shadeAndWrite(f.x, f.y, f.z, varyings)
	}
	fp.qlen = 0
}

// rasterizeLine walks the two-endpoint segment with a Bresenham
// integer-error traversal, interpolating depth and varyings by the
// parametric position t along the line.
func (fp *FragmentProcessor) rasterizeLine(b Bin) {
	x0, y0 := int(b.Pos[0].X), int(b.Pos[0].Y)
	x1, y1 := int(b.Pos[1].X), int(b.Pos[1].Y)

	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	steps := dx
	if dy > steps {
		steps = dy
	}
	if steps == 0 {
		steps = 1
	}

	fp.qlen = 0
	x, y := x0, y0
	errv := dx - dy
	for i := 0; ; i++ {
		if mod(y, fp.NumWorkers) == fp.TileID {
			t := float32(i) / float32(steps)
			fp.evalLinePixel(b, x, y, t)
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * errv
		if e2 > -dy {
			errv -= dy
			x += sx
		}
		if e2 < dx {
			errv += dx
			y += sy
		}
	}
	fp.flushLineQueue(b)
}

func (fp *FragmentProcessor) evalLinePixel(b Bin, x, y int, t float32) {
	width, height := fp.Framebuffer.Width(), fp.Framebuffer.Height()
	if x < 0 || x >= width || y < 0 || y >= height {
		return
	}
	z := b.Pos[0].Z + (b.Pos[1].Z-b.Pos[0].Z)*t
	if !fp.Framebuffer.DepthTestAndWrite(fp.DepthConv, x, y, z, fp.Shader.DepthTest(), false) {
		return
	}
	fp.push(b, queuedFrag{x: x, y: y, z: z, t: t})
}

func (fp *FragmentProcessor) flushLineQueue(b Bin) {
	n := b.NumVaryings
	for i := 0; i < fp.qlen; i++ {
		f := fp.queue[i]
		varyings := fp.varyingScratch[:n]
		for k := 0; k < n; k++ {
			varyings[k] = b.Varyings[0][k].Lerp(b.Varyings[1][k], f.t)
		}
		fp.shadeAndWrite(f.x, f.y, f.z, varyings)
	}
	fp.qlen = 0
}

func (fp *FragmentProcessor) rasterizePoint(b Bin) {
	x, y := int(b.Pos[0].X), int(b.Pos[0].Y)
	if mod(y, fp.NumWorkers) != fp.TileID {
		return
	}
	width, height := fp.Framebuffer.Width(), fp.Framebuffer.Height()
	if x < 0 || x >= width || y < 0 || y >= height {
		return
	}
	z := b.Pos[0].Z
	if !fp.Framebuffer.DepthTestAndWrite(fp.DepthConv, x, y, z, fp.Shader.DepthTest(), false) {
		return
	}
	n := b.NumVaryings
	fp.shadeAndWrite(x, y, z, b.Varyings[0][:n])
}

// shadeAndWrite invokes the fragment shader for one sample and, if it
// returns true, writes the depth (when depth masking is on) and every
// declared color output (blended per the shader's mode). A false return
// discards the fragment: no color or depth write occurs.
func (fp *FragmentProcessor) shadeAndWrite(x, y int, z float32, varyings []gfx.Vec4) {
	outputs := fp.outputScratch[:fp.Shader.NumOutputs()]
	param := gfx.FragmentParam{
		Uniforms: fp.Uniforms,
		Coord:    gfx.FragCoord{X: uint16(x), Y: uint16(y), Z: z},
		Varyings: varyings,
		Outputs:  outputs,
	}
	if !fp.Shader.FS()(&param) {
		return
	}

	fp.Framebuffer.DepthTestAndWrite(fp.DepthConv, x, y, z, false, fp.Shader.DepthMask())

	mode := fp.Shader.Blend()
	for i := 0; i < len(outputs) && i < fp.Framebuffer.NumColorAttachments(); i++ {
		v := outputs[i]
		fp.Framebuffer.WriteColor(i, x, y, [4]float64{float64(v.X), float64(v.Y), float64(v.Z), float64(v.W)}, mode)
	}
}

func minOf3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// mod is plain y % n. Callers pass screen-space rows (y >= 0) and a
// worker count n >= 1, so the result is non-negative; a negative y would
// yield a negative result.
func mod(y, n int) int {
	return y % n
}
