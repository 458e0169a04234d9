package interaction

import (
	"triview/internal/action"
)

const (
	// ColorStep is the per-tick change of a held color key
	ColorStep = float32(0.01)
	// PointerSensitivity converts pointer pixels to degrees
	PointerSensitivity = float32(0.1)
)

// Handler applies input to a State
type Handler struct {
	State *State
}

// NewHandler creates a handler mutating s
func NewHandler(s *State) *Handler {
	return &Handler{State: s}
}

// OnTick applies every held color action once. Reset runs last so it wins
// over any other key held in the same tick.
func (h *Handler) OnTick(held action.Set) {
	c := &h.State.Color

	if held.Has(action.RaiseRed) {
		c.R = min(1, c.R+ColorStep)
	}
	if held.Has(action.RaiseGreen) {
		c.G = min(1, c.G+ColorStep)
	}
	if held.Has(action.RaiseBlue) {
		c.B = min(1, c.B+ColorStep)
	}
	if held.Has(action.LowerAlpha) {
		c.A = max(0, c.A-ColorStep)
	}

	if held.Has(action.ResetColor) {
		*c = BaseColor
	}
}

// OnPointerMove accumulates a pointer delta in pixels into the camera angles
func (h *Handler) OnPointerMove(dx, dy float32) {
	h.State.CameraAngleX += dx * PointerSensitivity
	h.State.CameraAngleY += dy * PointerSensitivity
}
