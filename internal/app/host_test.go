package app

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"triview/internal/action"
	"triview/internal/graphics"
	"triview/internal/input"
	"triview/internal/interaction"
	"triview/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeSurface struct {
	shouldClose   bool
	setCloseCalls int
	width, height int
}

func (s *fakeSurface) ShouldClose() bool { return s.shouldClose }

func (s *fakeSurface) SetShouldClose(v bool) {
	s.shouldClose = v
	s.setCloseCalls++
}

func (s *fakeSurface) GetFramebufferSize() (int, int) { return s.width, s.height }

type recorder struct {
	lists [][]graphics.Command
	fail  error
}

func (r *recorder) Execute(l *graphics.CommandList) error {
	if r.fail != nil {
		return r.fail
	}
	cp := make([]graphics.Command, len(l.Commands))
	copy(cp, l.Commands)
	r.lists = append(r.lists, cp)
	return nil
}

func (r *recorder) Dispose() {}

func (r *recorder) frames() int {
	n := 0
	for _, l := range r.lists {
		if len(l) > 0 && l[len(l)-1].Op == graphics.OpPresent {
			n++
		}
	}
	return n
}

// events queued here are delivered on the next poll
type eventQueue struct {
	pending []func()
}

func (q *eventQueue) push(f func()) { q.pending = append(q.pending, f) }

func (q *eventQueue) poll() {
	p := q.pending
	q.pending = nil
	for _, f := range p {
		f()
	}
}

var vertexPath string

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)

	dir, err := os.MkdirTemp("", "triview-host")
	if err != nil {
		panic(err)
	}
	vertexPath = filepath.Join(dir, "triangle_vertices.txt")
	if err := os.WriteFile(vertexPath, []byte("-0.5 -0.5 0\n0.5 -0.5 0\n0 0.5 0\n"), 0644); err != nil {
		panic(err)
	}

	exitCode := m.Run()
	os.RemoveAll(dir)
	os.Exit(exitCode)
}

func newTestHost() (*Host, *fakeSurface, *recorder, *eventQueue) {
	surface := &fakeSurface{width: 800, height: 600}
	rec := &recorder{}
	q := &eventQueue{}
	h := NewHost(surface, q.poll, graphics.NewRenderer(rec), input.NewManager(), 0)
	return h, surface, rec, q
}

func loadedHost(t *testing.T) (*Host, *fakeSurface, *recorder, *eventQueue) {
	t.Helper()
	h, s, rec, q := newTestHost()
	if err := h.Load(vertexPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return h, s, rec, q
}

// running host without entering the blocking loop
func runningHost(t *testing.T) (*Host, *fakeSurface, *recorder, *eventQueue) {
	t.Helper()
	h, s, rec, q := loadedHost(t)
	h.phase = PhaseRunning
	return h, s, rec, q
}

func TestLoad(t *testing.T) {
	h, _, rec, _ := newTestHost()
	if h.Phase() != PhaseUninitialized {
		t.Fatalf("Expected uninitialized, got %s", h.Phase())
	}
	if err := h.Load(vertexPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if h.Phase() != PhaseLoaded {
		t.Errorf("Expected loaded, got %s", h.Phase())
	}
	if h.Vertices()[2] != (mgl32.Vec3{0, 0.5, 0}) {
		t.Errorf("Unexpected third vertex %v", h.Vertices()[2])
	}

	// setup then initial resize
	if len(rec.lists) != 2 {
		t.Fatalf("Expected setup and resize lists, got %d", len(rec.lists))
	}
	if rec.lists[0][0].Op != graphics.OpSetClearColor || rec.lists[0][1].Op != graphics.OpEnableDepthTest {
		t.Errorf("Expected setup list first, got %v", rec.lists[0])
	}
	if rec.lists[1][0].Rect != [4]int32{0, 0, 800, 600} {
		t.Errorf("Expected initial viewport 800x600, got %v", rec.lists[1][0].Rect)
	}
}

func TestLoadFailureIsFatal(t *testing.T) {
	h, _, rec, _ := newTestHost()

	err := h.Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, scene.ErrMissingData) {
		t.Fatalf("Expected ErrMissingData, got %v", err)
	}
	if h.Phase() != PhaseUninitialized {
		t.Errorf("Expected phase to stay uninitialized, got %s", h.Phase())
	}
	if h.Vertices() != (scene.Vertices{}) {
		t.Errorf("Expected no vertices after failed load, got %v", h.Vertices())
	}
	if len(rec.lists) != 0 {
		t.Errorf("Expected nothing submitted after failed load")
	}
	if err := h.Run(); err == nil {
		t.Errorf("Expected Run to refuse an unloaded host")
	}
}

func TestLoadTwice(t *testing.T) {
	h, _, _, _ := loadedHost(t)
	if err := h.Load(vertexPath); err == nil {
		t.Errorf("Expected second Load to fail")
	}
}

func TestStepAppliesHeldKeysEveryTick(t *testing.T) {
	h, _, rec, q := runningHost(t)
	h.State().Color.G = 0

	q.push(func() { h.HandleKey(glfw.KeyG, glfw.Press) })
	for i := 0; i < 3; i++ {
		if err := h.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}

	if g := h.State().Color.G; g < 0.029 || g > 0.031 {
		t.Errorf("Expected green at 0.03 after three ticks, got %v", g)
	}
	if rec.frames() != 3 {
		t.Errorf("Expected 3 rendered frames, got %d", rec.frames())
	}
}

func TestPointerMoveRotatesCamera(t *testing.T) {
	h, _, rec, q := runningHost(t)

	q.push(func() {
		h.HandleCursorPos(100, 100)
		h.HandleCursorPos(150, 80)
	})
	if err := h.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	s := h.State()
	if s.CameraAngleX < 4.999 || s.CameraAngleX > 5.001 || s.CameraAngleY < -2.001 || s.CameraAngleY > -1.999 {
		t.Errorf("Expected angles (5, -2), got (%v, %v)", s.CameraAngleX, s.CameraAngleY)
	}

	frame := rec.lists[len(rec.lists)-1]
	if !frame[1].Mat.ApproxEqual(graphics.ModelView(s.CameraAngleX, s.CameraAngleY)) {
		t.Errorf("Expected frame model-view to follow camera angles")
	}
}

func TestEscapeClosesOnce(t *testing.T) {
	h, s, rec, q := runningHost(t)

	q.push(func() { h.HandleKey(glfw.KeyEscape, glfw.Press) })
	if err := h.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if h.Phase() != PhaseClosed {
		t.Fatalf("Expected closed after Escape, got %s", h.Phase())
	}
	if !s.shouldClose || s.setCloseCalls != 1 {
		t.Errorf("Expected one close request, got %d", s.setCloseCalls)
	}
	if rec.frames() != 0 {
		t.Errorf("Expected no frame rendered on the closing tick, got %d", rec.frames())
	}

	// further events and closes are ignored
	h.HandleKey(glfw.KeyEscape, glfw.Release)
	h.HandleKey(glfw.KeyEscape, glfw.Press)
	h.HandleKey(glfw.KeyR, glfw.Press)
	h.Close()
	if err := h.Step(); err != nil {
		t.Fatalf("Step after close failed: %v", err)
	}
	if h.Phase() != PhaseClosed || s.setCloseCalls != 1 {
		t.Errorf("Expected close to happen exactly once, got %d calls, phase %s", s.setCloseCalls, h.Phase())
	}
	if h.input.Held().Has(action.RaiseRed) {
		t.Errorf("Expected key events after close to be ignored")
	}
}

func TestEscapeHeldDoesNotRetrigger(t *testing.T) {
	h, _, _, q := runningHost(t)

	q.push(func() {
		h.HandleKey(glfw.KeyEscape, glfw.Press)
		h.HandleKey(glfw.KeyEscape, glfw.Release)
	})
	_ = h.Step()
	if h.Phase() != PhaseClosed {
		t.Errorf("Expected a press-release within one tick to close, got %s", h.Phase())
	}
}

func TestWindowCloseButton(t *testing.T) {
	h, s, _, _ := runningHost(t)
	s.shouldClose = true

	if err := h.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if h.Phase() != PhaseClosed {
		t.Errorf("Expected closed after window close request, got %s", h.Phase())
	}
}

func TestResizeWhileRunning(t *testing.T) {
	h, _, rec, q := runningHost(t)

	q.push(func() { h.HandleResize(400, 600) })
	if err := h.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	resize := rec.lists[len(rec.lists)-2]
	if resize[0].Op != graphics.OpViewport || resize[0].Rect != [4]int32{0, 0, 400, 600} {
		t.Errorf("Expected viewport (0,0,400,600), got %v", resize[0])
	}
	if resize[1].Mat != graphics.Projection() {
		t.Errorf("Expected fixed projection")
	}
	if rec.lists[len(rec.lists)-1][0].Op != graphics.OpClear {
		t.Errorf("Expected frame after resize")
	}
}

func TestRenderErrorStopsRun(t *testing.T) {
	h, s, rec, _ := loadedHost(t)
	boom := errors.New("device lost")
	rec.fail = boom

	err := h.Run()
	if !errors.Is(err, boom) {
		t.Fatalf("Expected render error from Run, got %v", err)
	}
	if h.Phase() != PhaseClosed || !s.shouldClose {
		t.Errorf("Expected host closed after render error, got %s", h.Phase())
	}
}

func TestRunUntilEscape(t *testing.T) {
	h, _, rec, q := loadedHost(t)

	ticks := 0
	h.poll = func() {
		ticks++
		if ticks == 5 {
			q.push(func() { h.HandleKey(glfw.KeyEscape, glfw.Press) })
		}
		q.poll()
	}
	h.limiter = NewTickLimiter(1000)

	if err := h.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if h.Phase() != PhaseClosed {
		t.Errorf("Expected closed, got %s", h.Phase())
	}
	if rec.frames() != 4 {
		t.Errorf("Expected 4 frames before Escape, got %d", rec.frames())
	}
}

func TestCursorBeforeRunDoesNotRotate(t *testing.T) {
	h, _, _, _ := loadedHost(t)
	h.HandleCursorPos(0, 0)
	h.HandleCursorPos(300, 300)

	if *h.State() != *interaction.NewState() {
		t.Errorf("Expected untouched state before running, got %+v", *h.State())
	}
}

func TestTickLimiter(t *testing.T) {
	l := NewTickLimiter(500)
	if l.Interval() != 2*time.Millisecond {
		t.Fatalf("Expected 2ms interval, got %v", l.Interval())
	}

	start := time.Now()
	for i := 0; i < 10; i++ {
		l.Wait()
	}
	if elapsed := time.Since(start); elapsed < 18*time.Millisecond {
		t.Errorf("Expected about 20ms for 10 ticks, got %v", elapsed)
	}

	off := NewTickLimiter(0)
	start = time.Now()
	off.Wait()
	if time.Since(start) > 5*time.Millisecond {
		t.Errorf("Expected disabled limiter not to block")
	}
}
