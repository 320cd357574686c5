package gfx

import "testing"

func newTestFramebuffer(width, height int) *Framebuffer {
	color := NewTexture(width, height, 1, PixelFormat{Channels: ChannelsRGBA, Elem: ElemU8})
	depth := NewTexture(width, height, 1, PixelFormat{Channels: ChannelsR, Elem: ElemF32})
	return NewFramebuffer([]*Texture{color}, depth, DepthF32)
}

func TestDepthConventionPasses(t *testing.T) {
	if !DepthNormal.Passes(0.1, 0.5) {
		t.Error("normal convention: nearer (smaller) depth should pass")
	}
	if DepthNormal.Passes(0.9, 0.5) {
		t.Error("normal convention: farther (larger) depth should fail")
	}
	if !DepthReversed.Passes(0.9, 0.5) {
		t.Error("reversed convention: larger depth should pass")
	}
	if DepthReversed.Passes(0.1, 0.5) {
		t.Error("reversed convention: smaller depth should fail")
	}
}

func TestDepthTestAndWriteDeferredWrite(t *testing.T) {
	fb := newTestFramebuffer(1, 1)
	fb.ClearDepth(1.0)

	// Eager test-only pass: nearer fragment passes the test but must not
	// write yet (mask=false).
	passed := fb.DepthTestAndWrite(DepthNormal, 0, 0, 0.2, true, false)
	if !passed {
		t.Fatal("expected nearer fragment to pass the depth test")
	}
	if got := fb.Depth().depthAt(0, 0); got != 1.0 {
		t.Fatalf("depth buffer written during test-only pass: got %v, want unchanged 1.0", got)
	}

	// Deferred write pass: the fragment shader accepted the fragment, so
	// now the write actually lands.
	fb.DepthTestAndWrite(DepthNormal, 0, 0, 0.2, false, true)
	if got := fb.Depth().depthAt(0, 0); got != 0.2 {
		t.Fatalf("depth after deferred write = %v, want 0.2", got)
	}
}

func TestDepthTestAndWriteRejectsFartherFragment(t *testing.T) {
	fb := newTestFramebuffer(1, 1)
	fb.ClearDepth(0.2)
	if fb.DepthTestAndWrite(DepthNormal, 0, 0, 0.8, true, false) {
		t.Fatal("farther fragment should fail the normal-convention depth test")
	}
}

func TestClearColorAttachment(t *testing.T) {
	fb := newTestFramebuffer(2, 2)
	fb.ClearColorAttachment(0, [4]float64{255, 0, 0, 255})
	got := fb.ColorAttachment(0).TexelAt(1, 1, 0)
	want := [4]float64{255, 0, 0, 255}
	if got != want {
		t.Fatalf("ClearColorAttachment: texel = %v, want %v", got, want)
	}
}

func TestNewFramebufferDerivesExtentFromColor(t *testing.T) {
	fb := newTestFramebuffer(4, 3)
	if fb.Width() != 4 || fb.Height() != 3 {
		t.Fatalf("Width/Height = %d/%d, want 4/3", fb.Width(), fb.Height())
	}
}

func TestWriteColorBlendOffReplaces(t *testing.T) {
	fb := newTestFramebuffer(1, 1)
	fb.ColorAttachment(0).SetTexelAt(0, 0, 0, [4]float64{10, 10, 10, 10})
	fb.WriteColor(0, 0, 0, [4]float64{200, 0, 0, 255}, BlendOff)
	got := fb.ColorAttachment(0).TexelAt(0, 0, 0)
	want := [4]float64{200, 0, 0, 255}
	if got != want {
		t.Fatalf("WriteColor(BlendOff) = %v, want %v", got, want)
	}
}
