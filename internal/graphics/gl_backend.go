package graphics

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// x, y, z, r, g, b, a
	floatsPerVertex = 7
	vertexStride    = floatsPerVertex * 4
)

// GLBackend executes command lists on an OpenGL 4.1 core context. The
// fixed-function batch (Begin, Color, Vertex, End) is collected on the CPU
// and drawn from a dynamic buffer on End.
type GLBackend struct {
	shader *Shader
	vao    uint32
	vbo    uint32

	projection mgl32.Mat4
	modelView  mgl32.Mat4

	batch     []float32
	batching  bool
	primitive Primitive
	color     mgl32.Vec4

	font *FontRenderer
	swap func()
}

// NewGLBackend compiles the triangle program and allocates buffers.
// The GL context must be current and gl.Init must have succeeded.
// swap is called for OpPresent. withText enables OpText support.
func NewGLBackend(swap func(), withText bool) (*GLBackend, error) {
	shader, err := NewShader(
		filepath.Join(ShadersDir, "triangle.vert"),
		filepath.Join(ShadersDir, "triangle.frag"),
	)
	if err != nil {
		return nil, err
	}

	b := &GLBackend{
		shader:     shader,
		projection: mgl32.Ident4(),
		modelView:  mgl32.Ident4(),
		color:      mgl32.Vec4{1, 1, 1, 1},
		batch:      make([]float32, 0, 3*floatsPerVertex),
		swap:       swap,
	}
	b.setupVAO()

	if withText {
		atlas, err := BuildFontAtlas(DefaultFontPixels)
		if err != nil {
			b.Dispose()
			return nil, err
		}
		b.font, err = NewFontRenderer(atlas)
		if err != nil {
			b.Dispose()
			return nil, err
		}
	}

	return b, nil
}

func (b *GLBackend) setupVAO() {
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	gl.BufferData(gl.ARRAY_BUFFER, cap(b.batch)*4, nil, gl.DYNAMIC_DRAW)

	// position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	// color
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, vertexStride, gl.PtrOffset(3*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Execute runs every command in order
func (b *GLBackend) Execute(list *CommandList) error {
	for i := range list.Commands {
		if err := b.exec(&list.Commands[i]); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, list.Commands[i].Op, err)
		}
	}
	return nil
}

func (b *GLBackend) exec(c *Command) error {
	switch c.Op {
	case OpSetClearColor:
		gl.ClearColor(c.Vec[0], c.Vec[1], c.Vec[2], c.Vec[3])
	case OpEnableDepthTest:
		gl.Enable(gl.DEPTH_TEST)
	case OpViewport:
		gl.Viewport(c.Rect[0], c.Rect[1], c.Rect[2], c.Rect[3])
		if b.font != nil {
			b.font.SetViewport(c.Rect[2], c.Rect[3])
		}
	case OpSetProjection:
		b.projection = c.Mat
	case OpClear:
		var mask uint32
		if c.Mask&ClearColorBuffer != 0 {
			mask |= gl.COLOR_BUFFER_BIT
		}
		if c.Mask&ClearDepthBuffer != 0 {
			mask |= gl.DEPTH_BUFFER_BIT
		}
		gl.Clear(mask)
	case OpSetModelView:
		b.modelView = c.Mat
	case OpBegin:
		if b.batching {
			return fmt.Errorf("begin inside an open batch")
		}
		b.batching = true
		b.primitive = c.Primitive
		b.batch = b.batch[:0]
	case OpColor:
		b.color = c.Vec
	case OpVertex:
		if !b.batching {
			return fmt.Errorf("vertex outside a batch")
		}
		b.batch = append(b.batch,
			c.Vec[0], c.Vec[1], c.Vec[2],
			b.color[0], b.color[1], b.color[2], b.color[3])
	case OpEnd:
		if !b.batching {
			return fmt.Errorf("end without begin")
		}
		b.batching = false
		b.flush()
	case OpText:
		if b.font != nil {
			b.font.Render(c.Text, c.Vec[0], c.Vec[1], 1, mgl32.Vec3{1, 1, 1})
		}
	case OpPresent:
		b.swap()
	default:
		return fmt.Errorf("unknown op %d", c.Op)
	}
	return nil
}

func (b *GLBackend) flush() {
	count := int32(len(b.batch) / floatsPerVertex)
	if count == 0 {
		return
	}

	mvp := b.projection.Mul4(b.modelView)

	b.shader.Use()
	b.shader.SetMatrix4("mvp", &mvp[0])

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	// orphan then upload
	size := len(b.batch) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(b.batch))

	switch b.primitive {
	case PrimitiveTriangles:
		gl.DrawArrays(gl.TRIANGLES, 0, count)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Dispose releases GL objects
func (b *GLBackend) Dispose() {
	if b.font != nil {
		b.font.Dispose()
		b.font = nil
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.shader != nil {
		b.shader.Delete()
		b.shader = nil
	}
}
