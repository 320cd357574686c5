package raster

import (
	"math"

	"github.com/Kim-Du-Yeon/SoftLight/internal/gfx"
)

// ptvCacheSize is the direct-mapped PTV cache's entry count: a power of
// two in the [4,32] range named by the pipeline's caching contract.
const ptvCacheSize = 16

// ptvEntry holds one cached vertex shader invocation's result.
type ptvEntry struct {
	valid    bool
	index    uint32
	pos      gfx.Vec4
	varyings [gfx.MaxVaryings]gfx.Vec4
}

// ptvCache is a small worker-local, direct-mapped cache of vertex shader
// results keyed by index & (cacheSize-1). It is scoped to a single
// primitive-stream pass and overwritten unconditionally on miss; there is
// no eviction policy beyond "last write wins for this slot."
type ptvCache struct {
	entries [ptvCacheSize]ptvEntry
}

func (c *ptvCache) lookup(index uint32) (pos gfx.Vec4, varyings [gfx.MaxVaryings]gfx.Vec4, hit bool) {
	e := &c.entries[index&(ptvCacheSize-1)]
	if e.valid && e.index == index {
		return e.pos, e.varyings, true
	}
	return gfx.Vec4{}, varyings, false
}

func (c *ptvCache) store(index uint32, pos gfx.Vec4, varyings [gfx.MaxVaryings]gfx.Vec4) {
	e := &c.entries[index&(ptvCacheSize-1)]
	e.valid = true
	e.index = index
	e.pos = pos
	e.varyings = varyings
}

// Emitter receives fully-assembled bins from the vertex processor. The
// binning layer's per-worker bin array is the production implementation;
// tests substitute a slice-backed stub.
type Emitter interface {
	Emit(b Bin)
}

// VertexProcessor is the per-worker C7 stage: it walks a slice of a
// primitive stream, invokes the vertex shader (through the PTV cache),
// culls and clips triangles, and emits screen-space bins to an Emitter.
// One VertexProcessor is constructed per worker per draw; it is not safe
// for concurrent use by more than one goroutine.
type VertexProcessor struct {
	Shader       *gfx.Shader
	VAO          *gfx.VAO
	Uniforms     *gfx.Buffer
	Prim         gfx.PrimType
	ScreenWidth  int
	ScreenHeight int
	ZClipEnabled bool
	InstanceID   uint32

	cache   ptvCache
	scratch [gfx.MaxVaryings]gfx.Vec4
}

// fetchIndex resolves a vertex slot (the i-th vertex of the stream, not a
// byte offset) to a vertex id: through the bound IBO if present, else the
// slot itself.
func (vp *VertexProcessor) fetchIndex(slot uint32) uint32 {
	if vp.VAO.HasIndices() {
		return vp.VAO.Index(int(slot))
	}
	return slot
}

// shade returns the clip-space position and varyings for vertex index,
// invoking the vertex shader on a PTV cache miss.
func (vp *VertexProcessor) shade(index uint32) (gfx.Vec4, [gfx.MaxVaryings]gfx.Vec4) {
	if pos, varyings, hit := vp.cache.lookup(index); hit {
		return pos, varyings
	}
	numVaryings := vp.Shader.NumVaryings()
	param := gfx.VertexParam{
		Uniforms:    vp.Uniforms,
		VAO:         vp.VAO,
		VBO:         vp.VAO.VBO(),
		VertID:      index,
		InstanceID:  vp.InstanceID,
		OutVaryings: vp.scratch[:numVaryings],
	}
	pos := vp.Shader.VS()(&param)
	var varyings [gfx.MaxVaryings]gfx.Vec4
	copy(varyings[:numVaryings], param.OutVaryings)
	vp.cache.store(index, pos, varyings)
	return pos, varyings
}

// ProcessPrimitiveRange shades, culls, clips, and bins every primitive in
// [startPrim, endPrim) of the stream, where a "primitive" is Prim.Arity()
// consecutive vertex slots.
func (vp *VertexProcessor) ProcessPrimitiveRange(startPrim, endPrim int, emit Emitter) {
	arity := vp.Prim.Arity()
	for p := startPrim; p < endPrim; p++ {
		base := uint32(p * arity)
		switch vp.Prim {
		case gfx.PrimLines:
			vp.processLine(base, emit)
		case gfx.PrimPoints:
			vp.processPoint(base, emit)
		default: // triangles, wireframe triangles
			vp.processTriangle(base, emit)
		}
	}
}

func (vp *VertexProcessor) processTriangle(base uint32, emit Emitter) {
	var clipPos [3]gfx.Vec4
	var varyings [3][gfx.MaxVaryings]gfx.Vec4
	for i := 0; i < 3; i++ {
		idx := vp.fetchIndex(base + uint32(i))
		clipPos[i], varyings[i] = vp.shade(idx)
	}

	if cull := vp.Shader.Cull(); cull != gfx.CullOff {
		backFacing := determinant3x3(clipPos) > 0
		if backFacing == (cull == gfx.CullBack) {
			return
		}
	}

	switch ClassifyTriangle(clipPos) {
	case NotVisible:
		return
	case FullyVisible:
		vp.emitTriangle(clipPos, varyings, emit)
	default: // PartiallyVisible
		var cv [3]clipVertex
		for i := 0; i < 3; i++ {
			cv[i] = clipVertex{Pos: clipPos[i], Varyings: varyings[i]}
		}
		poly := ClipTriangle(cv, vp.Shader.NumVaryings(), vp.ZClipEnabled)
		for _, tri := range FanTriangulate(poly) {
			var pos [3]gfx.Vec4
			var vary [3][gfx.MaxVaryings]gfx.Vec4
			for i := 0; i < 3; i++ {
				pos[i] = tri[i].Pos
				vary[i] = tri[i].Varyings
			}
			vp.emitTriangle(pos, vary, emit)
		}
	}
}

// determinant3x3 returns the sign-bearing 3x3 homogeneous determinant of
// the three vertices' (x, y, w); positive means back-facing under this
// engine's winding convention.
func determinant3x3(v [3]gfx.Vec4) float32 {
	x0, y0, w0 := v[0].X, v[0].Y, v[0].W
	x1, y1, w1 := v[1].X, v[1].Y, v[1].W
	x2, y2, w2 := v[2].X, v[2].Y, v[2].W
	return x0*(y1*w2-y2*w1) - y0*(x1*w2-x2*w1) + w0*(x1*y2-x2*y1)
}

func (vp *VertexProcessor) processLine(base uint32, emit Emitter) {
	var clipPos [2]gfx.Vec4
	var varyings [2][gfx.MaxVaryings]gfx.Vec4
	for i := 0; i < 2; i++ {
		idx := vp.fetchIndex(base + uint32(i))
		clipPos[i], varyings[i] = vp.shade(idx)
	}
	if clipPos[0].W < 0 || clipPos[1].W < 0 {
		return
	}

	var bin Bin
	bin.Prim = vp.Prim
	bin.NumVerts = 2
	bin.Pos[0] = vp.projectToScreen(clipPos[0])
	bin.Pos[1] = vp.projectToScreen(clipPos[1])
	bin.Varyings[0] = varyings[0]
	bin.Varyings[1] = varyings[1]
	bin.NumVaryings = vp.Shader.NumVaryings()
	emit.Emit(bin)
}

func (vp *VertexProcessor) processPoint(base uint32, emit Emitter) {
	idx := vp.fetchIndex(base)
	clipPos, varyings := vp.shade(idx)
	if clipPos.W <= 0 {
		return
	}

	var bin Bin
	bin.Prim = vp.Prim
	bin.NumVerts = 1
	bin.Pos[0] = vp.projectToScreen(clipPos)
	bin.Varyings[0] = varyings
	bin.NumVaryings = vp.Shader.NumVaryings()
	emit.Emit(bin)
}

func (vp *VertexProcessor) emitTriangle(clipPos [3]gfx.Vec4, varyings [3][gfx.MaxVaryings]gfx.Vec4, emit Emitter) {
	var bin Bin
	bin.Prim = vp.Prim
	bin.NumVerts = 3
	for i, p := range clipPos {
		bin.Pos[i] = vp.projectToScreen(p)
	}
	bin.Row0, bin.Row1, bin.Row2 = barycentricRows(bin.Pos)
	bin.Varyings = varyings
	bin.NumVaryings = vp.Shader.NumVaryings()
	emit.Emit(bin)
}

// projectToScreen performs the perspective divide — (x,y,z,w) ->
// (x/w, y/w, z/w, 1/w), the last slot carrying the reciprocal W used for
// perspective-correct interpolation — followed by the screen-space map.
func (vp *VertexProcessor) projectToScreen(p gfx.Vec4) ScreenVertex {
	invW := 1 / p.W
	ndcX := p.X * invW
	ndcY := p.Y * invW
	ndcZ := p.Z * invW

	halfW := float32(vp.ScreenWidth) / 2
	halfH := float32(vp.ScreenHeight) / 2
	sx := float32(math.Floor(float64(halfW + ndcX*halfW)))
	sy := float32(math.Floor(float64(halfH + ndcY*halfH)))
	if sx < 0 {
		sx = 0
	}
	if sy < 0 {
		sy = 0
	}
	return ScreenVertex{X: sx, Y: sy, Z: ndcZ, W: invW}
}

// barycentricRows precomputes the three homogeneous coefficient rows such
// that bc[i] = Row0[i]*x + Row1[i]*y + Row2[i] evaluates the i-th
// (unnormalized-then-normalized) barycentric weight at screen point (x,y).
//
// Weight i uses the edge opposite vertex i: edge(v[1],v[2]) for weight 0,
// edge(v[2],v[0]) for weight 1, edge(v[0],v[1]) for weight 2, normalized by
// the signed area of the whole triangle.
func barycentricRows(v [3]ScreenVertex) (row0, row1, row2 [3]float32) {
	area := edgeFunction(v[0].X, v[0].Y, v[1].X, v[1].Y, v[2].X, v[2].Y)
	invArea := float32(0)
	if area != 0 {
		invArea = 1 / area
	}
	edges := [3][2]int{{1, 2}, {2, 0}, {0, 1}}
	for i, e := range edges {
		ax, ay := v[e[0]].X, v[e[0]].Y
		bx, by := v[e[1]].X, v[e[1]].Y
		row0[i] = -(by - ay) * invArea
		row1[i] = (bx - ax) * invArea
		row2[i] = ((by-ay)*ax - (bx-ax)*ay) * invArea
	}
	return
}

// edgeFunction is the standard 2D edge function E(A,B,C) =
// (Bx-Ax)(Cy-Ay) - (By-Ay)(Cx-Ax): positive when C is to the left of the
// directed edge A->B.
func edgeFunction(ax, ay, bx, by, cx, cy float32) float32 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}
