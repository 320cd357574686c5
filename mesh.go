package sl

import "github.com/Kim-Du-Yeon/SoftLight/internal/gfx"

// PrimType names the primitive topology a draw call assembles vertices
// into.
type PrimType = gfx.PrimType

// Primitive topology constants.
const (
	PrimTriangles          = gfx.PrimTriangles
	PrimLines              = gfx.PrimLines
	PrimPoints             = gfx.PrimPoints
	PrimTrianglesWireframe = gfx.PrimTrianglesWireframe
)

// Mesh describes one draw call's input: the vertex array to read from, how
// many vertices to consume (for non-indexed draws), and the primitive
// topology to assemble them into.
type Mesh struct {
	VAO           VAOID
	PrimType      PrimType
	VertexCount   int // used when the VAO has no IBO
	InstanceCount int // defaults to 1 when 0
}
