package sl

import (
	"sync"

	"github.com/Kim-Du-Yeon/SoftLight/internal/gfx"
	"github.com/Kim-Du-Yeon/SoftLight/internal/parallel"
	"github.com/Kim-Du-Yeon/SoftLight/internal/raster"
)

// Context owns every buffer, texture, VAO, shader, and framebuffer by a
// stable opaque id, and dispatches draw calls across its worker pool.
// Resource tables are guarded by a mutex; the hot path (a running Draw)
// never touches it directly, only the id lookups at the top of Draw do.
type Context struct {
	mu sync.Mutex

	buffers      map[BufferID]*gfx.Buffer
	textures     map[TextureID]*gfx.Texture
	vaos         map[VAOID]*gfx.VAO
	shaders      map[ShaderID]*gfx.Shader
	framebuffers map[FramebufferID]*gfx.Framebuffer

	bufferIDs   idAllocator
	textureIDs  idAllocator
	vaoIDs      idAllocator
	shaderIDs   idAllocator
	fboIDs      idAllocator

	pool         *parallel.Pool
	reversedZ    bool
	zClipEnabled bool
}

// NewContext constructs a Context with the given options applied. With no
// options: GOMAXPROCS worker threads, the normal depth convention, and
// six-plane (Z-clipping enabled) clipping.
func NewContext(opts ...Option) *Context {
	c := &Context{
		buffers:      make(map[BufferID]*gfx.Buffer),
		textures:     make(map[TextureID]*gfx.Texture),
		vaos:         make(map[VAOID]*gfx.VAO),
		shaders:      make(map[ShaderID]*gfx.Shader),
		framebuffers: make(map[FramebufferID]*gfx.Framebuffer),
		pool:         parallel.NewPool(0),
		zClipEnabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NumThreads returns the current worker pool size.
func (c *Context) NumThreads() int { return c.pool.N() }

// SetThreads grows or shrinks the worker pool. Idempotent; n <= 0 selects
// GOMAXPROCS. Safe to call between draws, never concurrently with one.
func (c *Context) SetThreads(n int) {
	c.pool.SetN(n)
	Logger().Info("worker pool resized", "threads", c.pool.N())
}

// CreateVBO copies data into a new vertex buffer.
func (c *Context) CreateVBO(data []byte) (BufferID, error) { return c.createBuffer(data) }

// CreateIBO copies data into a new index buffer.
func (c *Context) CreateIBO(data []byte) (BufferID, error) { return c.createBuffer(data) }

// CreateUBO allocates a zero-filled uniform buffer of size bytes.
// Shaders normally get their own UBO via CreateShader's UBOCapacity; this
// exists for callers that want to share one buffer across shaders.
func (c *Context) CreateUBO(size int) (BufferID, error) {
	if size <= 0 {
		return InvalidID, ErrBadArg.withReason("ubo size must be positive")
	}
	return c.createBuffer(make([]byte, size))
}

func (c *Context) createBuffer(data []byte) (BufferID, error) {
	if len(data) == 0 {
		return InvalidID, ErrBadArg.withReason("buffer data is empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := BufferID(c.bufferIDs.alloc())
	c.buffers[id] = gfx.NewBuffer(data)
	return id, nil
}

// ReleaseBuffer releases a VBO/IBO/UBO. No-op if id is unknown.
func (c *Context) ReleaseBuffer(id BufferID) {
	c.mu.Lock()
	_, ok := c.buffers[id]
	delete(c.buffers, id)
	c.mu.Unlock()
	if !ok {
		Logger().Warn("release of unknown buffer id", "id", id)
	}
}

// CreateTexture allocates a zero-filled texture.
func (c *Context) CreateTexture(width, height, depth int, format PixelFormat) (TextureID, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return InvalidID, ErrBadArg.withReason("texture dimensions must be positive")
	}
	if format.TexelSize() == 0 {
		return InvalidID, ErrUnsupported.withReason("unrecognized pixel format")
	}
	tex := gfx.NewTexture(width, height, depth, format)
	if tex == nil {
		return InvalidID, ErrAllocFail
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := TextureID(c.textureIDs.alloc())
	c.textures[id] = tex
	return id, nil
}

// ReleaseTexture releases a texture. No-op if id is unknown.
func (c *Context) ReleaseTexture(id TextureID) {
	c.mu.Lock()
	delete(c.textures, id)
	c.mu.Unlock()
}

// CreateVAO resolves a VAODesc against its buffers and registers it.
func (c *Context) CreateVAO(desc VAODesc) (VAOID, error) {
	if len(desc.Attribs) == 0 {
		return InvalidID, ErrBadArg.withReason("vao has no attributes")
	}
	c.mu.Lock()
	vbo, ok := c.buffers[desc.VBO]
	if !ok {
		c.mu.Unlock()
		return InvalidID, ErrBadID
	}
	var ibo *gfx.Buffer
	if desc.IBO != InvalidID {
		ibo, ok = c.buffers[desc.IBO]
		if !ok {
			c.mu.Unlock()
			return InvalidID, ErrBadID
		}
	}
	id := VAOID(c.vaoIDs.alloc())
	c.vaos[id] = gfx.NewVAO(desc, vbo, ibo)
	c.mu.Unlock()
	return id, nil
}

// ReleaseVAO releases a VAO descriptor. No-op if id is unknown.
func (c *Context) ReleaseVAO(id VAOID) {
	c.mu.Lock()
	delete(c.vaos, id)
	c.mu.Unlock()
}

// CreateShader validates and registers a shader, allocating its uniform
// buffer from UBOCapacity.
func (c *Context) CreateShader(desc ShaderDesc) (ShaderID, error) {
	if desc.VS == nil || desc.FS == nil {
		return InvalidID, ErrBadArg.withReason("shader is missing vs or fs")
	}
	if desc.VSVaryings != desc.FSVaryings {
		return InvalidID, ErrBadArg.withReason("vs/fs varying count mismatch")
	}
	if desc.VSVaryings < 0 || desc.VSVaryings > MaxVaryings || desc.FSOutputs < 0 || desc.FSOutputs > MaxOutputs {
		return InvalidID, ErrBadArg.withReason("varying or output count out of range")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := ShaderID(c.shaderIDs.alloc())
	c.shaders[id] = gfx.NewShader(desc)
	return id, nil
}

// ReleaseShader releases a shader descriptor. No-op if id is unknown.
func (c *Context) ReleaseShader(id ShaderID) {
	c.mu.Lock()
	delete(c.shaders, id)
	c.mu.Unlock()
}

// CreateFramebuffer resolves a FramebufferDesc against its textures,
// validating that every attachment shares one extent and a depth
// attachment is present.
func (c *Context) CreateFramebuffer(desc FramebufferDesc) (FramebufferID, error) {
	if len(desc.Color) == 0 && desc.Depth == InvalidID {
		return InvalidID, ErrBadArg.withReason("framebuffer has no attachments")
	}
	if len(desc.Color) > MaxColorAttachments {
		return InvalidID, ErrBadArg.withReason("too many color attachments")
	}
	if desc.Depth == InvalidID {
		return InvalidID, ErrFboIncomplete.withReason("missing depth attachment")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	depthTex, ok := c.textures[desc.Depth]
	if !ok {
		return InvalidID, ErrBadID
	}
	width, height := depthTex.Width(), depthTex.Height()

	color := make([]*gfx.Texture, len(desc.Color))
	for i, tid := range desc.Color {
		tex, ok := c.textures[tid]
		if !ok {
			return InvalidID, ErrBadID
		}
		if tex.Width() != width || tex.Height() != height {
			return InvalidID, ErrFboIncomplete.withReason("attachment size mismatch")
		}
		color[i] = tex
	}

	id := FramebufferID(c.fboIDs.alloc())
	c.framebuffers[id] = gfx.NewFramebuffer(color, depthTex, desc.DepthFormat)
	return id, nil
}

// ReleaseFramebuffer releases a framebuffer. No-op if id is unknown.
func (c *Context) ReleaseFramebuffer(id FramebufferID) {
	c.mu.Lock()
	delete(c.framebuffers, id)
	c.mu.Unlock()
}

// ClearFramebuffer clears the listed color attachment indices to their
// paired colors and, if clearDepth is true, the depth attachment to
// depthValue. Attachments not listed are left untouched. Every listed
// attachment (plus depth) is cleared by a separate worker-pool task, so
// clearing fans out across the same pool a draw does.
func (c *Context) ClearFramebuffer(fboID FramebufferID, indices []int, colors [][4]float64, clearDepth bool, depthValue float32) error {
	c.mu.Lock()
	fb, ok := c.framebuffers[fboID]
	c.mu.Unlock()
	if !ok {
		return ErrBadID
	}
	if len(indices) != len(colors) {
		return ErrBadArg.withReason("indices and colors length mismatch")
	}

	jobs := make([]func(), 0, len(indices)+1)
	for i, idx := range indices {
		idx, color := idx, colors[i]
		jobs = append(jobs, func() { fb.ClearColorAttachment(idx, color) })
	}
	if clearDepth {
		jobs = append(jobs, func() { fb.ClearDepth(depthValue) })
	}
	if len(jobs) == 0 {
		return nil
	}

	n := c.pool.N()
	c.pool.Run(func(workerID int) {
		for j := workerID; j < len(jobs); j += n {
			jobs[j]()
		}
	})
	return nil
}

// Draw executes one draw call: mesh's vertices (through shaderID's vertex
// shader) are culled, clipped, binned, and rasterized into fboID via
// shaderID's fragment shader, fanned out across the worker pool. Fails
// with ErrBadID if any referenced resource is unknown, or ErrBadArg if
// the mesh's vertex/index count is not a multiple of its primitive's
// arity or a non-indexed vertex count exceeds the bound VAO's extent; a
// count of zero draws nothing and succeeds. Otherwise Draw is infallible from
// the caller's perspective: shading failures are ordinary discarded
// fragments, not errors.
func (c *Context) Draw(mesh Mesh, shaderID ShaderID, fboID FramebufferID) error {
	c.mu.Lock()
	vao, okV := c.vaos[mesh.VAO]
	shader, okS := c.shaders[shaderID]
	fb, okF := c.framebuffers[fboID]
	c.mu.Unlock()
	if !okV || !okS || !okF {
		return ErrBadID
	}

	arity := mesh.PrimType.Arity()
	var vertexExtent int
	if vao.HasIndices() {
		vertexExtent = vao.IndexCount()
	} else {
		vertexExtent = mesh.VertexCount
		if vertexExtent > vao.VertexExtent() {
			return ErrBadArg.withReason("vertex count exceeds the bound VAO's extent")
		}
	}
	if vertexExtent < 0 || vertexExtent%arity != 0 {
		return ErrBadArg.withReason("vertex/index count is not a multiple of the primitive's arity")
	}

	totalPrims := vertexExtent / arity
	if totalPrims == 0 {
		return nil
	}

	instances := mesh.InstanceCount
	if instances <= 0 {
		instances = 1
	}

	n := c.pool.N()
	depthConv := gfx.DepthNormal
	if c.reversedZ {
		depthConv = gfx.DepthReversed
	}
	useSIMD := raster.UseSIMD(fb.DepthFormat())
	blend := shader.Blend() != BlendOff

	base := totalPrims / n
	extra := totalPrims % n

	for inst := 0; inst < instances; inst++ {
		binSet := raster.NewBinSet(n, blend, c.reversedZ)
		instanceID := uint32(inst)

		c.pool.Run(func(workerID int) {
			start := workerID*base + minInt(workerID, extra)
			length := base
			if workerID < extra {
				length++
			}
			end := start + length

			fp := &raster.FragmentProcessor{
				Shader:      shader,
				Uniforms:    shader.Uniforms(),
				Framebuffer: fb,
				DepthConv:   depthConv,
				TileID:      workerID,
				NumWorkers:  n,
				SIMD:        useSIMD,
			}
			binner := binSet.Binner(workerID, fp)

			vp := &raster.VertexProcessor{
				Shader:       shader,
				VAO:          vao,
				Uniforms:     shader.Uniforms(),
				Prim:         mesh.PrimType,
				ScreenWidth:  fb.Width(),
				ScreenHeight: fb.Height(),
				ZClipEnabled: c.zClipEnabled,
				InstanceID:   instanceID,
			}
			vp.ProcessPrimitiveRange(start, end, binner)
			binner.Finish()
		})
	}
	return nil
}

// Blit scales fboID's colorIndex-th color attachment into dst, fanned out
// across the worker pool by scan-line the same way a draw's fragment
// stage is.
func (c *Context) Blit(fboID FramebufferID, colorIndex int, dst *WindowBuffer) error {
	c.mu.Lock()
	fb, ok := c.framebuffers[fboID]
	c.mu.Unlock()
	if !ok {
		return ErrBadID
	}
	tex := fb.ColorAttachment(colorIndex)
	if tex == nil {
		return ErrBadArg.withReason("color attachment index out of range")
	}

	n := c.pool.N()
	c.pool.Run(func(workerID int) {
		raster.Blit(tex, dst, workerID, n)
	})
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
