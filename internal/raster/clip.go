package raster

import "github.com/Kim-Du-Yeon/SoftLight/internal/gfx"

// clipVertex is one vertex of the polygon the clipper operates on: a
// clip-space position plus its interpolated varyings.
type clipVertex struct {
	Pos      gfx.Vec4
	Varyings [gfx.MaxVaryings]gfx.Vec4
}

// Visibility classifies a primitive against the clip-space frustum before
// the clipper runs.
type Visibility uint8

const (
	FullyVisible Visibility = iota
	NotVisible
	PartiallyVisible
)

// ClassifyTriangle implements the clip-space visibility test: fully visible
// if every vertex satisfies |x|,|y|,|z| <= w; not visible if every vertex
// has w <= 0 and none are inside; otherwise partially visible.
func ClassifyTriangle(tri [3]gfx.Vec4) Visibility {
	allInside := true
	allBehind := true
	for _, v := range tri {
		inside := abs32(v.X) <= v.W && abs32(v.Y) <= v.W && abs32(v.Z) <= v.W
		if !inside {
			allInside = false
		} else {
			allBehind = false
		}
		if v.W > 0 {
			allBehind = false
		}
	}
	switch {
	case allInside:
		return FullyVisible
	case allBehind:
		return NotVisible
	default:
		return PartiallyVisible
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clipPlane is one of the six (or four, if z-clipping is disabled) frustum
// planes, expressed as the vector E such that dot(P, E) is the signed
// distance used by Sutherland-Hodgman: visible iff dot(P,E) >= 0.
type clipPlane gfx.Vec4

var clipPlanes6 = [6]clipPlane{
	{X: -1, Y: 0, Z: 0, W: 1}, // +x <= w
	{X: 1, Y: 0, Z: 0, W: 1},  // -x <= w
	{X: 0, Y: -1, Z: 0, W: 1}, // +y <= w
	{X: 0, Y: 1, Z: 0, W: 1},  // -y <= w
	{X: 0, Y: 0, Z: -1, W: 1}, // +z <= w
	{X: 0, Y: 0, Z: 1, W: 1},  // -z <= w
}

var clipPlanes4 = [4]clipPlane{
	clipPlanes6[0], clipPlanes6[1], clipPlanes6[2], clipPlanes6[3],
}

func dot4(p gfx.Vec4, e clipPlane) float32 {
	return p.Dot(gfx.Vec4(e))
}

// ClipTriangle clips a triangle against the view frustum, interpolating
// varyings linearly in clip space. zClipEnabled selects 6-plane clipping
// (±x, ±y, ±z against w) or, when false, the reduced 4-plane form
// (±x, ±y only). The resulting convex polygon has at most 9 vertices.
func ClipTriangle(tri [3]clipVertex, numVaryings int, zClipEnabled bool) []clipVertex {
	poly := tri[:]
	if zClipEnabled {
		for _, plane := range clipPlanes6 {
			poly = clipAgainstPlane(poly, plane, numVaryings)
			if len(poly) == 0 {
				return nil
			}
		}
	} else {
		for _, plane := range clipPlanes4 {
			poly = clipAgainstPlane(poly, plane, numVaryings)
			if len(poly) == 0 {
				return nil
			}
		}
	}
	if len(poly) > 9 {
		poly = poly[:9]
	}
	return poly
}

// clipAgainstPlane runs one Sutherland-Hodgman pass: walks each oriented
// edge (P_i, P_i+1) of the polygon, emitting the intersection with the
// plane on a visibility transition and emitting P_i+1 itself when it is
// visible.
func clipAgainstPlane(poly []clipVertex, plane clipPlane, numVaryings int) []clipVertex {
	if len(poly) == 0 {
		return nil
	}
	out := make([]clipVertex, 0, len(poly)+1)
	n := len(poly)
	for i := 0; i < n; i++ {
		cur := poly[i]
		next := poly[(i+1)%n]
		tCur := dot4(cur.Pos, plane)
		tNext := dot4(next.Pos, plane)
		curVisible := tCur >= 0
		nextVisible := tNext >= 0

		if curVisible != nextVisible {
			t := tCur / (tCur - tNext)
			out = append(out, lerpClipVertex(cur, next, t, numVaryings))
		}
		if nextVisible {
			out = append(out, next)
		}
	}
	return out
}

func lerpClipVertex(a, b clipVertex, t float32, numVaryings int) clipVertex {
	var v clipVertex
	v.Pos = a.Pos.Lerp(b.Pos, t)
	for i := 0; i < numVaryings; i++ {
		v.Varyings[i] = a.Varyings[i].Lerp(b.Varyings[i], t)
	}
	return v
}

// FanTriangulate splits a convex polygon (as produced by ClipTriangle) into
// a fan of triangles around vertex 0.
func FanTriangulate(poly []clipVertex) [][3]clipVertex {
	if len(poly) < 3 {
		return nil
	}
	tris := make([][3]clipVertex, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, [3]clipVertex{poly[0], poly[i], poly[i+1]})
	}
	return tris
}
