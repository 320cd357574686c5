package raster

import (
	"testing"

	"github.com/Kim-Du-Yeon/SoftLight/internal/gfx"
)

func TestUseSIMDGatesOnDepthFormat(t *testing.T) {
	cases := map[gfx.DepthFormat]bool{
		gfx.DepthF16: true,
		gfx.DepthF32: true,
		gfx.DepthF64: false,
	}
	for format, want := range cases {
		if got := UseSIMD(format); got != want {
			t.Errorf("UseSIMD(%v) = %v, want %v", format, got, want)
		}
	}
}

func TestRasterizeTriangleSIMDMatchesScalar(t *testing.T) {
	tri := [3]ScreenVertex{
		{X: 0, Y: 0, Z: 0.2, W: 1},
		{X: 7, Y: 0, Z: 0.2, W: 1},
		{X: 0, Y: 7, Z: 0.2, W: 1},
	}

	run := func(simd bool) map[[2]int]bool {
		fb := newTestFramebuffer(8, 8)
		fb.ClearDepth(1.0)
		shaded := map[[2]int]bool{}
		shader := gfx.NewShader(gfx.ShaderDesc{
			FS: func(p *gfx.FragmentParam) bool {
				shaded[[2]int{int(p.Coord.X), int(p.Coord.Y)}] = true
				return true
			},
			DepthTest: gfx.DepthTestOn,
			DepthMask: gfx.DepthMaskOn,
			FSOutputs: 1,
		})
		b := triangleBin(tri)
		fp := &FragmentProcessor{
			Shader:      shader,
			Uniforms:    shader.Uniforms(),
			Framebuffer: fb,
			DepthConv:   gfx.DepthNormal,
			TileID:      0,
			NumWorkers:  1,
			SIMD:        simd,
		}
		fp.RasterizeBin(0, b)
		return shaded
	}

	scalarShaded := run(false)
	simdShaded := run(true)

	if len(scalarShaded) == 0 {
		t.Fatal("scalar path shaded nothing")
	}
	if len(scalarShaded) != len(simdShaded) {
		t.Fatalf("scalar shaded %d pixels, SIMD shaded %d, want equal", len(scalarShaded), len(simdShaded))
	}
	for px := range scalarShaded {
		if !simdShaded[px] {
			t.Errorf("pixel %v shaded by scalar path but not SIMD path", px)
		}
	}
}
