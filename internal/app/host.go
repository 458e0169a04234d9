package app

import (
	"fmt"
	"log"
	"time"

	"triview/internal/action"
	"triview/internal/graphics"
	"triview/internal/input"
	"triview/internal/interaction"
	"triview/internal/profiling"
	"triview/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Phase is the host lifecycle state
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoaded
	PhaseRunning
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLoaded:
		return "loaded"
	case PhaseRunning:
		return "running"
	case PhaseClosed:
		return "closed"
	}
	return "unknown"
}

// Surface is the window the host drives. *glfw.Window satisfies it.
type Surface interface {
	ShouldClose() bool
	SetShouldClose(value bool)
	GetFramebufferSize() (width, height int)
}

// Host owns the viewer state and runs the single-threaded tick loop.
// Every method must be called from the thread that owns the window.
type Host struct {
	surface  Surface
	poll     func()
	renderer *graphics.Renderer
	input    *input.Manager

	state    *interaction.State
	handler  *interaction.Handler
	vertices scene.Vertices

	phase   Phase
	limiter *TickLimiter

	slowFrame        time.Duration
	frames           int
	lastFPSCheckTime time.Time
}

// NewHost creates a host. poll pumps pending window events, dispatching
// them synchronously to the Handle* methods.
func NewHost(surface Surface, poll func(), r *graphics.Renderer, im *input.Manager, tickRate int) *Host {
	state := interaction.NewState()
	return &Host{
		surface:  surface,
		poll:     poll,
		renderer: r,
		input:    im,
		state:    state,
		handler:  interaction.NewHandler(state),
		limiter:  NewTickLimiter(tickRate),
	}
}

// SetSlowFrameThreshold sets the processing time above which a tick is logged; 0 disables it
func (h *Host) SetSlowFrameThreshold(d time.Duration) {
	h.slowFrame = d
}

// Phase returns the current lifecycle phase
func (h *Host) Phase() Phase {
	return h.phase
}

// State returns the interaction state
func (h *Host) State() *interaction.State {
	return h.state
}

// Vertices returns the loaded triangle
func (h *Host) Vertices() scene.Vertices {
	return h.vertices
}

// Load reads the vertex file and prepares render state.
// Uninitialized -> Loaded. A load error is fatal; the phase does not change.
func (h *Host) Load(vertexPath string) error {
	if h.phase != PhaseUninitialized {
		return fmt.Errorf("load: host is %s", h.phase)
	}

	verts, err := scene.LoadFile(vertexPath)
	if err != nil {
		return err
	}

	if err := h.renderer.Setup(); err != nil {
		return fmt.Errorf("renderer setup: %w", err)
	}

	h.vertices = verts
	h.phase = PhaseLoaded
	log.Printf("loaded vertices from %s: %v", vertexPath, verts)

	// first frame needs a viewport and projection
	w, ht := h.surface.GetFramebufferSize()
	h.HandleResize(w, ht)

	return nil
}

// Run starts the fixed-rate loop and returns once the host is closed.
// Loaded -> Running -> Closed.
func (h *Host) Run() error {
	if h.phase != PhaseLoaded {
		return fmt.Errorf("run: host is %s", h.phase)
	}
	h.phase = PhaseRunning
	h.lastFPSCheckTime = time.Now()
	log.Printf("running at %v per tick", h.limiter.Interval())

	for h.phase == PhaseRunning {
		if err := h.Step(); err != nil {
			h.Close()
			return err
		}
		if h.phase == PhaseRunning {
			h.limiter.Wait()
		}
	}
	return nil
}

// Step runs one tick: pump events, apply held keys, render
func (h *Host) Step() error {
	profiling.ResetFrame()
	start := time.Now()

	func() { defer profiling.Track("glfw.PollEvents")(); h.poll() }()

	if h.input.JustPressed(action.Close) || h.surface.ShouldClose() {
		h.Close()
	}
	if h.phase != PhaseRunning {
		return nil
	}

	func() { defer profiling.Track("input.Tick")(); h.handler.OnTick(h.input.Held()) }()

	if err := h.renderer.Render(h.state, &h.vertices); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// Clear edge flags at end of tick
	h.input.PostUpdate()

	h.frames++
	if time.Since(h.lastFPSCheckTime) >= time.Second {
		log.Printf("FPS: %d", h.frames)
		h.frames = 0
		h.lastFPSCheckTime = time.Now()
	}

	if d := time.Since(start); h.slowFrame > 0 && d > h.slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}
	return nil
}

// Close moves a running host to Closed and asks the surface to close.
// It is a no-op in any other phase.
func (h *Host) Close() {
	if h.phase != PhaseRunning {
		return
	}
	h.phase = PhaseClosed
	h.surface.SetShouldClose(true)
	log.Printf("closing")
}

// HandleKey records a key event. Events after Close are ignored.
func (h *Host) HandleKey(key glfw.Key, event glfw.Action) {
	if h.phase == PhaseClosed {
		return
	}
	h.input.HandleKeyEvent(key, event)
}

// HandleCursorPos turns an absolute cursor position into a camera delta
func (h *Host) HandleCursorPos(xpos, ypos float64) {
	dx, dy := h.input.HandleCursorPos(xpos, ypos)
	if h.phase != PhaseRunning {
		return
	}
	h.handler.OnPointerMove(float32(dx), float32(dy))
}

// HandleResize updates viewport and projection for a new framebuffer size
func (h *Host) HandleResize(width, height int) {
	if h.phase != PhaseLoaded && h.phase != PhaseRunning {
		return
	}
	if err := h.renderer.Resize(width, height); err != nil {
		log.Printf("resize to %dx%d: %v", width, height, err)
	}
}
