package gfx

import "testing"

func TestBufferLenAndBytes(t *testing.T) {
	b := NewBuffer([]byte{1, 2, 3, 4})
	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b.Len())
	}
	if got := b.Bytes(); len(got) != 4 || got[0] != 1 || got[3] != 4 {
		t.Fatalf("Bytes() = %v", got)
	}
}

func TestBufferNewCopiesSource(t *testing.T) {
	src := []byte{9, 9, 9}
	b := NewBuffer(src)
	src[0] = 0
	if b.Bytes()[0] != 9 {
		t.Fatalf("NewBuffer aliased its source slice; got %d, want 9", b.Bytes()[0])
	}
}

func TestBufferWrite(t *testing.T) {
	b := NewBuffer([]byte{0, 0, 0, 0})
	b.Write(1, []byte{7, 8})
	want := []byte{0, 7, 8, 0}
	got := b.Bytes()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Write() = %v, want %v", got, want)
		}
	}
}

func TestBufferReadFloat32(t *testing.T) {
	b := NewBuffer(make([]byte, 4))
	b.Write(0, []byte{0, 0, 128, 63}) // 1.0f little-endian
	if got := b.ReadFloat32(0); got != 1.0 {
		t.Fatalf("ReadFloat32() = %v, want 1.0", got)
	}
}

func TestBufferReadIndex(t *testing.T) {
	cases := []struct {
		width IndexWidth
		data  []byte
		idx   int
		want  uint32
	}{
		{Index8, []byte{0x2A}, 0, 0x2A},
		{Index16, []byte{0x34, 0x12}, 0, 0x1234},
		{Index32, []byte{0x78, 0x56, 0x34, 0x12}, 0, 0x12345678},
	}
	for _, c := range cases {
		b := NewBuffer(c.data)
		if got := b.ReadIndex(c.width, c.idx); got != c.want {
			t.Errorf("ReadIndex(%v) = %#x, want %#x", c.width, got, c.want)
		}
	}
}

func TestElementTypeSize(t *testing.T) {
	cases := map[ElementType]int{
		ElementByte:   1,
		ElementShort:  2,
		ElementInt:    4,
		ElementFloat:  4,
		ElementDouble: 8,
	}
	for e, want := range cases {
		if got := e.Size(); got != want {
			t.Errorf("ElementType(%d).Size() = %d, want %d", e, got, want)
		}
	}
}

func TestIndexWidthSize(t *testing.T) {
	cases := map[IndexWidth]int{Index8: 1, Index16: 2, Index32: 4}
	for w, want := range cases {
		if got := w.Size(); got != want {
			t.Errorf("IndexWidth(%d).Size() = %d, want %d", w, got, want)
		}
	}
}
