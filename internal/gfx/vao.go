package gfx

// AttribDim is the component count of a vertex attribute: 1..4.
type AttribDim uint8

// VertexAttrib describes one binding slot: where it reads from a VBO and
// how to interpret the bytes at each vertex.
//
// Binding 0 is implicitly consumed by the vertex shader to fetch the base
// position data; higher bindings are shader-visible via [VertexParam.VBO]
// and [VertexParam.VAO].
type VertexAttrib struct {
	Offset int         // byte offset of the first element within the stride
	Stride int         // bytes between consecutive vertices
	Dim    AttribDim   // 1, 2, 3, or 4 components
	Type   ElementType // scalar element type
}

// VAODesc describes a vertex array: the VBO it reads from, its per-binding
// attribute layout, and an optional IBO for indexed draws.
type VAODesc struct {
	VBO      BufferID
	Attribs  []VertexAttrib
	IBO      BufferID // InvalidID for non-indexed draws
	IdxWidth IndexWidth
}

// VAO is the live (context-resolved) form of a VAODesc: a vertex array
// descriptor bound to concrete buffers.
type VAO struct {
	vbo      *Buffer
	attribs  []VertexAttrib
	ibo      *Buffer // nil for non-indexed draws
	idxWidth IndexWidth
}

// NewVAO resolves a VAODesc against its concrete buffers.
func NewVAO(desc VAODesc, vbo, ibo *Buffer) *VAO {
	return &VAO{vbo: vbo, attribs: desc.Attribs, ibo: ibo, idxWidth: desc.IdxWidth}
}

// AttribOffset returns the byte offset of attribute slot binding for vertex
// vertexID: base + offset + stride*vertexID.
func (v *VAO) AttribOffset(binding int, vertexID uint32) int {
	DebugAssert(binding >= 0 && binding < len(v.attribs), "attribute binding out of range")
	a := v.attribs[binding]
	return a.Offset + a.Stride*int(vertexID)
}

// VBO returns the vertex buffer this VAO reads attribute binding 0 from,
// exposed for the vertex processor to pass through to shader-visible
// higher bindings via VertexParam.VBO.
func (v *VAO) VBO() *Buffer { return v.vbo }

// HasIndices reports whether this VAO draws through an index buffer.
func (v *VAO) HasIndices() bool { return v.ibo != nil }

// IndexCount returns the number of indices in the bound IBO, or 0 if there
// is none.
func (v *VAO) IndexCount() int {
	if v.ibo == nil {
		return 0
	}
	w := v.idxWidth.Size()
	if w == 0 {
		return 0
	}
	return v.ibo.Len() / w
}

// Index fetches the i-th index from the bound IBO. i is expected to have
// already been range-checked against IndexCount by the caller before a
// draw is dispatched; this is a hot-path lookup, not a validated entry
// point.
func (v *VAO) Index(i int) uint32 {
	DebugAssert(i >= 0 && i < v.IndexCount(), "index out of range")
	return v.ibo.ReadIndex(v.idxWidth, i)
}

// VertexExtent returns the number of vertices whose binding-0 attribute
// (Dim elements of Type at Offset + Stride*i) lies wholly inside the bound
// VBO. The context checks a non-indexed draw's vertex count against it
// (an ErrBadArg-class check); the index values of an indexed draw are not
// checked against it.
func (v *VAO) VertexExtent() int {
	if len(v.attribs) == 0 {
		return 0
	}
	a := v.attribs[0]
	if a.Stride <= 0 {
		return 0
	}
	avail := v.vbo.Len() - a.Offset - int(a.Dim)*a.Type.Size()
	if avail < 0 {
		return 0
	}
	return avail/a.Stride + 1
}
