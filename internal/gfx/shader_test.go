package gfx

import "testing"

func TestNewShaderAllocatesUniformBuffer(t *testing.T) {
	desc := ShaderDesc{
		VS:          func(p *VertexParam) Vec4 { return Vec4{} },
		FS:          func(p *FragmentParam) bool { return true },
		UBOCapacity: 64,
	}
	s := NewShader(desc)
	if got := s.Uniforms().Len(); got != 64 {
		t.Fatalf("Uniforms().Len() = %d, want 64", got)
	}
}

func TestNewShaderNegativeCapacityClampsToZero(t *testing.T) {
	s := NewShader(ShaderDesc{UBOCapacity: -10})
	if got := s.Uniforms().Len(); got != 0 {
		t.Fatalf("Uniforms().Len() = %d, want 0", got)
	}
}

func TestShaderAccessors(t *testing.T) {
	desc := ShaderDesc{
		CullMode:  CullBack,
		Blend:     BlendAlpha,
		DepthTest: DepthTestOn,
		DepthMask: DepthMaskOn,
	}
	s := NewShader(desc)
	if s.Cull() != CullBack {
		t.Errorf("Cull() = %v, want CullBack", s.Cull())
	}
	if s.Blend() != BlendAlpha {
		t.Errorf("Blend() = %v, want BlendAlpha", s.Blend())
	}
	if !s.DepthTest() {
		t.Error("DepthTest() = false, want true")
	}
	if !s.DepthMask() {
		t.Error("DepthMask() = false, want true")
	}
}
