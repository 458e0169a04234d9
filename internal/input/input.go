package input

import (
	"triview/internal/action"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Manager maps physical keys to logical actions and tracks held state,
// press edges and pointer motion. It is driven from the event loop
// thread only and does no locking.
type Manager struct {
	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]action.Action

	// Current state (indexed by Action)
	currentState [action.Count]bool

	// Just pressed flags (reset each tick)
	justPressed [action.Count]bool

	// Pointer tracking
	firstMouse bool
	lastX      float64
	lastY      float64
}

// NewManager creates a new Manager with default key bindings
func NewManager() *Manager {
	m := &Manager{
		keyToActions: make(map[glfw.Key][]action.Action),
		firstMouse:   true,
	}

	m.BindKey(glfw.KeyR, action.RaiseRed)
	m.BindKey(glfw.KeyG, action.RaiseGreen)
	m.BindKey(glfw.KeyB, action.RaiseBlue)
	m.BindKey(glfw.KeyA, action.LowerAlpha)
	m.BindKey(glfw.KeyC, action.ResetColor)
	m.BindKey(glfw.KeyEscape, action.Close)

	return m
}

// BindKey binds a physical key to a logical action
func (m *Manager) BindKey(key glfw.Key, a action.Action) {
	if !a.Valid() {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], a)
}

// HandleKeyEvent processes a key event and updates internal state.
// Unbound keys are ignored.
func (m *Manager) HandleKeyEvent(key glfw.Key, event glfw.Action) {
	actions, exists := m.keyToActions[key]
	if !exists {
		return
	}

	isPressed := event == glfw.Press || event == glfw.Repeat

	for _, act := range actions {
		// Detect edges immediately when event arrives
		if isPressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		m.currentState[act] = isPressed
	}
}

// HandleCursorPos records an absolute cursor position and returns the
// delta from the previous one. The first position yields a zero delta.
func (m *Manager) HandleCursorPos(xpos, ypos float64) (dx, dy float64) {
	if m.firstMouse {
		m.lastX = xpos
		m.lastY = ypos
		m.firstMouse = false
		return 0, 0
	}

	dx = xpos - m.lastX
	dy = ypos - m.lastY
	m.lastX = xpos
	m.lastY = ypos
	return dx, dy
}

// PostUpdate must be called at the end of each tick to clear edge flags
func (m *Manager) PostUpdate() {
	for i := range action.Count {
		m.justPressed[i] = false
	}
}

// JustPressed returns true only if the action was pressed during the current tick
func (m *Manager) JustPressed(a action.Action) bool {
	if !a.Valid() {
		return false
	}
	return m.justPressed[a]
}

// Held returns the set of actions currently held down
func (m *Manager) Held() action.Set {
	var s action.Set
	for i := range action.Count {
		if m.currentState[i] {
			s = s.With(i)
		}
	}
	return s
}
