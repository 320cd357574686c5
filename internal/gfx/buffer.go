package gfx

import (
	"encoding/binary"
	"math"
)

// BufferID is an opaque handle to a VBO, IBO, or UBO.
type BufferID uint64

// ElementType names the scalar type an attribute or index stream is stored
// as. These are the only widths the pipeline understands.
type ElementType uint8

const (
	ElementByte ElementType = iota
	ElementShort
	ElementInt
	ElementFloat
	ElementDouble
)

// Size returns the width in bytes of one scalar of this element type.
func (e ElementType) Size() int {
	switch e {
	case ElementByte:
		return 1
	case ElementShort:
		return 2
	case ElementInt, ElementFloat:
		return 4
	case ElementDouble:
		return 8
	default:
		return 0
	}
}

// IndexWidth names the width of entries in an index buffer.
type IndexWidth uint8

const (
	Index8 IndexWidth = iota
	Index16
	Index32
)

// Size returns the width in bytes of one index of this width.
func (w IndexWidth) Size() int {
	switch w {
	case Index8:
		return 1
	case Index16:
		return 2
	case Index32:
		return 4
	default:
		return 0
	}
}

// Buffer is a typed opaque byte store. VBOs, IBOs, and UBOs are all backed
// by one, distinguished only by how the VAO/shader interprets their bytes.
//
// A Buffer is owned exclusively by the [Context] that created it; callers
// never hold a Buffer directly, only a [BufferID].
type Buffer struct {
	data []byte
}

// NewBuffer copies src into a new fixed-capacity buffer. Zero-length
// buffers are rejected by the caller (Context.CreateVBO etc.) before this
// is reached.
func NewBuffer(src []byte) *Buffer {
	b := &Buffer{data: make([]byte, len(src))}
	copy(b.data, src)
	return b
}

// Len returns the buffer's size in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the buffer's raw backing storage. Callers in the hot path
// index into this directly rather than going through per-element getters.
func (b *Buffer) Bytes() []byte { return b.data }

// Write overwrites the buffer contents starting at byteOffset. It is the
// caller's responsibility to keep offset+len(src) within bounds; this is a
// hot-path-adjacent operation and panics on overflow rather than returning
// an error, matching the "no recoverable errors once dispatched" contract
// for anything that runs between draws on a context's own goroutine.
func (b *Buffer) Write(byteOffset int, src []byte) {
	copy(b.data[byteOffset:byteOffset+len(src)], src)
}

// ReadFloat32 reads a float32 at the given byte offset, little-endian.
func (b *Buffer) ReadFloat32(offset int) float32 {
	bits := binary.LittleEndian.Uint32(b.data[offset : offset+4])
	return math.Float32frombits(bits)
}

// ReadIndex reads one index of the given width at elemIdx (not byte offset).
func (b *Buffer) ReadIndex(width IndexWidth, elemIdx int) uint32 {
	switch width {
	case Index8:
		return uint32(b.data[elemIdx])
	case Index16:
		off := elemIdx * 2
		return uint32(binary.LittleEndian.Uint16(b.data[off : off+2]))
	case Index32:
		off := elemIdx * 4
		return binary.LittleEndian.Uint32(b.data[off : off+4])
	default:
		return 0
	}
}

