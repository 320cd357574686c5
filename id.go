package sl

import "github.com/Kim-Du-Yeon/SoftLight/internal/gfx"

// BufferID is an opaque handle to a VBO, IBO, or UBO.
type BufferID = gfx.BufferID

// TextureID is an opaque handle to a texture.
type TextureID = gfx.TextureID

// VAOID is an opaque handle to a vertex array descriptor.
type VAOID uint64

// ShaderID is an opaque handle to a shader descriptor.
type ShaderID uint64

// FramebufferID is an opaque handle to a framebuffer.
type FramebufferID uint64

// InvalidID is the zero value shared by every id type, representing no resource.
const InvalidID = 0

// idAllocator hands out monotonically increasing, never-reused ids for one
// resource table. Zero is reserved as InvalidID so it is never issued.
type idAllocator struct {
	next uint64
}

func (a *idAllocator) alloc() uint64 {
	a.next++
	return a.next
}
