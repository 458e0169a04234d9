package graphics

import (
	"fmt"
	"io"

	"triview/internal/interaction"
	"triview/internal/profiling"
	"triview/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// ShadersDir is where GLSL sources are loaded from
const ShadersDir = "assets/shaders"

// Backend executes command lists
type Backend interface {
	Execute(list *CommandList) error
	Dispose()
}

var (
	// ClearColor is the sky blue background
	ClearColor = mgl32.Vec4{0.39, 0.58, 0.93, 1.0}

	// VertexColors are the fixed draw colors of vertex 0, 1 and 2
	VertexColors = [scene.VertexCount]mgl32.Vec3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
)

// Fixed orthographic volume
const (
	orthoLeft   = -1.0
	orthoRight  = 1.0
	orthoBottom = -1.0
	orthoTop    = 1.0
	orthoNear   = -10.0
	orthoFar    = 10.0
)

// Projection returns the fixed orthographic projection. It does not depend on
// the window aspect ratio, so the triangle stretches with the window.
func Projection() mgl32.Mat4 {
	return mgl32.Ortho(orthoLeft, orthoRight, orthoBottom, orthoTop, orthoNear, orthoFar)
}

// ModelView rotates by angleX degrees about the Y axis, then by angleY degrees
// about the X axis, composed the way successive fixed-function rotations are:
// M = Ry(angleX) * Rx(angleY).
func ModelView(angleX, angleY float32) mgl32.Mat4 {
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(angleX))
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(angleY))
	return mgl32.Ident4().Mul4(ry).Mul4(rx)
}

// Renderer turns viewer state into command lists and submits them
type Renderer struct {
	backend Backend

	frame CommandList

	diag    io.Writer
	overlay bool
}

// NewRenderer creates a renderer submitting to b
func NewRenderer(b Backend) *Renderer {
	return &Renderer{backend: b}
}

// SetDiagnostics sets where the per-frame vertex color lines go; nil disables them
func (r *Renderer) SetDiagnostics(w io.Writer) {
	r.diag = w
}

// SetOverlay toggles the state text overlay
func (r *Renderer) SetOverlay(enabled bool) {
	r.overlay = enabled
}

// Setup submits the one-time state: background color and depth testing
func (r *Renderer) Setup() error {
	var l CommandList
	l.SetClearColor(ClearColor)
	l.EnableDepthTest()
	return r.backend.Execute(&l)
}

// Resize points the viewport at the full framebuffer and resets the projection
func (r *Renderer) Resize(width, height int) error {
	var l CommandList
	l.Viewport(0, 0, int32(width), int32(height))
	l.SetProjection(Projection())
	return r.backend.Execute(&l)
}

// BuildFrame records one frame. The user color in s is shown by the overlay
// only; the triangle always uses VertexColors.
func (r *Renderer) BuildFrame(s *interaction.State, v *scene.Vertices) *CommandList {
	l := &r.frame
	l.Reset()

	l.Clear(ClearColorBuffer | ClearDepthBuffer)
	l.SetModelView(ModelView(s.CameraAngleX, s.CameraAngleY))

	l.Begin(PrimitiveTriangles)
	for i, pos := range v {
		c := VertexColors[i]
		l.Color(c)
		l.Vertex(pos)
		if r.diag != nil {
			fmt.Fprintf(r.diag, "Vertex %d RGB: %.1f, %.1f, %.1f\n", i+1, c[0], c[1], c[2])
		}
	}
	l.End()

	if r.overlay {
		l.Text(10, 24, s.Color.String())
		l.Text(10, 48, fmt.Sprintf("angles %.1f %.1f", s.CameraAngleX, s.CameraAngleY))
	}

	l.Present()
	return l
}

// Render builds the frame for the current state and submits it
func (r *Renderer) Render(s *interaction.State, v *scene.Vertices) error {
	defer profiling.Track("renderer.Render")()
	return r.backend.Execute(r.BuildFrame(s, v))
}

// Dispose releases backend resources
func (r *Renderer) Dispose() {
	r.backend.Dispose()
}
