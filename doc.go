// Package sl implements a CPU-only, programmable, parallel rasterization
// pipeline: vertex processing, frustum clipping, tile/bin dispatch across a
// worker pool, and scan-line fragment rasterization with perspective-correct
// interpolation, depth testing, and blending.
//
// A typical draw call flows through a [Context]:
//
//	ctx := sl.NewContext(sl.WithThreads(4))
//	vbo, _ := ctx.CreateVBO(vertexBytes)
//	vao, _ := ctx.CreateVAO(sl.VAODesc{...})
//	shader, _ := ctx.CreateShader(sl.ShaderDesc{VS: myVS, FS: myFS, ...})
//	fbo, _ := ctx.CreateFramebuffer(sl.FramebufferDesc{...})
//	ctx.Draw(sl.Mesh{VAO: vao, PrimType: sl.PrimTriangles, VertexCount: 3}, shader, fbo)
//
// Shaders are native Go callables registered with the context; there is no
// shader source language and no GPU offload. See [ShaderDesc], [VertexParam]
// and [FragmentParam] for the ABI.
package sl
