package raster

import (
	"math"
	"testing"

	"github.com/Kim-Du-Yeon/SoftLight/internal/gfx"
)

type stubEmitter struct {
	bins []Bin
}

func (s *stubEmitter) Emit(b Bin) { s.bins = append(s.bins, b) }

func TestDeterminant3x3Sign(t *testing.T) {
	ccw := [3]gfx.Vec4{
		{X: 0, Y: 0, Z: 0, W: 1},
		{X: 1, Y: 0, Z: 0, W: 1},
		{X: 0, Y: 1, Z: 0, W: 1},
	}
	cw := [3]gfx.Vec4{ccw[0], ccw[2], ccw[1]}

	d1 := determinant3x3(ccw)
	d2 := determinant3x3(cw)
	if (d1 > 0) == (d2 > 0) {
		t.Fatalf("reversing winding should flip the determinant's sign: got %v and %v", d1, d2)
	}
}

func TestBarycentricRowsAtVertices(t *testing.T) {
	v := [3]ScreenVertex{
		{X: 0, Y: 0, Z: 0, W: 1},
		{X: 10, Y: 0, Z: 0, W: 1},
		{X: 0, Y: 10, Z: 0, W: 1},
	}
	row0, row1, row2 := barycentricRows(v)

	bcAt := func(x, y float32) [3]float32 {
		var bc [3]float32
		for i := 0; i < 3; i++ {
			bc[i] = row0[i]*x + row1[i]*y + row2[i]
		}
		return bc
	}

	checkOneHot := func(bc [3]float32, hotIdx int) {
		for i, w := range bc {
			want := float32(0)
			if i == hotIdx {
				want = 1
			}
			if diff := w - want; diff > 1e-3 || diff < -1e-3 {
				t.Errorf("bc[%d] = %v, want %v", i, w, want)
			}
		}
	}

	checkOneHot(bcAt(v[0].X, v[0].Y), 0)
	checkOneHot(bcAt(v[1].X, v[1].Y), 1)
	checkOneHot(bcAt(v[2].X, v[2].Y), 2)
}

func TestBarycentricRowsDegenerateTriangleIsZero(t *testing.T) {
	v := [3]ScreenVertex{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 10}}
	row0, row1, row2 := barycentricRows(v)
	for i := 0; i < 3; i++ {
		if row0[i] != 0 || row1[i] != 0 || row2[i] != 0 {
			t.Errorf("degenerate (zero-area) triangle should produce zero rows, got row0=%v row1=%v row2=%v", row0, row1, row2)
		}
	}
}

func identityVS(p *gfx.VertexParam) gfx.Vec4 {
	off := p.VAO.AttribOffset(0, p.VertID)
	x := p.VBO.ReadFloat32(off)
	y := p.VBO.ReadFloat32(off + 4)
	z := p.VBO.ReadFloat32(off + 8)
	return gfx.Vec4{X: x, Y: y, Z: z, W: 1}
}

func newTestVAO(positions [][3]float32) *gfx.VAO {
	data := make([]byte, 0, len(positions)*12)
	for _, p := range positions {
		data = append(data, f32le(p[0])...)
		data = append(data, f32le(p[1])...)
		data = append(data, f32le(p[2])...)
	}
	vbo := gfx.NewBuffer(data)
	desc := gfx.VAODesc{
		Attribs: []gfx.VertexAttrib{{Offset: 0, Stride: 12, Dim: 3, Type: gfx.ElementFloat}},
	}
	return gfx.NewVAO(desc, vbo, nil)
}

func f32le(f float32) []byte {
	bits := math.Float32bits(f)
	return []byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
}

func TestVertexProcessorEmitsFullyVisibleTriangle(t *testing.T) {
	vao := newTestVAO([][3]float32{
		{-0.5, -0.5, 0},
		{0.5, -0.5, 0},
		{0, 0.5, 0},
	})
	shader := gfx.NewShader(gfx.ShaderDesc{
		VS:        identityVS,
		FS:        func(p *gfx.FragmentParam) bool { return true },
		CullMode:  gfx.CullOff,
		DepthTest: gfx.DepthTestOn,
	})
	vp := &VertexProcessor{
		Shader:       shader,
		VAO:          vao,
		Uniforms:     shader.Uniforms(),
		Prim:         gfx.PrimTriangles,
		ScreenWidth:  100,
		ScreenHeight: 100,
		ZClipEnabled: true,
	}

	var e stubEmitter
	vp.ProcessPrimitiveRange(0, 1, &e)

	if len(e.bins) != 1 {
		t.Fatalf("got %d bins, want 1", len(e.bins))
	}
	b := e.bins[0]
	if b.NumVerts != 3 {
		t.Fatalf("NumVerts = %d, want 3", b.NumVerts)
	}
}

func TestVertexProcessorCullsBackFace(t *testing.T) {
	// Same winding as TestVertexProcessorEmitsFullyVisibleTriangle, which is
	// back-facing under this engine's determinant3x3 sign convention; with
	// CullOff it passes through untouched, so flip to CullBack here.
	vao := newTestVAO([][3]float32{
		{-0.5, -0.5, 0},
		{0.5, -0.5, 0},
		{0, 0.5, 0},
	})
	shader := gfx.NewShader(gfx.ShaderDesc{
		VS:       identityVS,
		FS:       func(p *gfx.FragmentParam) bool { return true },
		CullMode: gfx.CullBack,
	})
	vp := &VertexProcessor{
		Shader:       shader,
		VAO:          vao,
		Uniforms:     shader.Uniforms(),
		Prim:         gfx.PrimTriangles,
		ScreenWidth:  100,
		ScreenHeight: 100,
		ZClipEnabled: true,
	}

	var e stubEmitter
	vp.ProcessPrimitiveRange(0, 1, &e)

	if len(e.bins) != 0 {
		t.Fatalf("got %d bins, want 0 (back face should be culled)", len(e.bins))
	}
}

func TestVertexProcessorPTVCacheReusesSharedVertex(t *testing.T) {
	calls := 0
	vao := newTestVAO([][3]float32{
		{-0.5, -0.5, 0},
		{0.5, -0.5, 0},
		{0, 0.5, 0},
		{0.5, 0.5, 0},
	})
	shader := gfx.NewShader(gfx.ShaderDesc{
		VS: func(p *gfx.VertexParam) gfx.Vec4 {
			calls++
			return identityVS(p)
		},
		FS: func(p *gfx.FragmentParam) bool { return true },
	})
	vp := &VertexProcessor{
		Shader:       shader,
		VAO:          vao,
		Uniforms:     shader.Uniforms(),
		Prim:         gfx.PrimTriangles,
		ScreenWidth:  100,
		ScreenHeight: 100,
		ZClipEnabled: true,
	}

	// Two triangles sharing vertex indices 1 and 2 (vertex 1 reused across
	// both triangles) via an index buffer.
	ibo := gfx.NewBuffer([]byte{0, 0, 1, 0, 2, 0, 1, 0, 3, 0, 2, 0})
	vao2 := gfx.NewVAO(gfx.VAODesc{
		Attribs:  []gfx.VertexAttrib{{Offset: 0, Stride: 12, Dim: 3, Type: gfx.ElementFloat}},
		IdxWidth: gfx.Index16,
	}, vao.VBO(), ibo)
	vp.VAO = vao2

	var e stubEmitter
	vp.ProcessPrimitiveRange(0, 2, &e)

	if calls != 4 {
		t.Fatalf("vertex shader invoked %d times, want 4 (vertex 1 and 2 reused via PTV cache)", calls)
	}
}
