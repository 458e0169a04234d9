package interaction

import "fmt"

// Color is an RGBA color with channels in [0, 1]
type Color struct {
	R, G, B, A float32
}

// BaseColor is the opaque red the color starts at and resets to
var BaseColor = Color{R: 1, G: 0, B: 0, A: 1}

func (c Color) String() string {
	return fmt.Sprintf("RGBA %.2f %.2f %.2f %.2f", c.R, c.G, c.B, c.A)
}

// State is the input-driven mutable viewer state. Camera angles are in
// degrees and unbounded.
type State struct {
	Color        Color
	CameraAngleX float32 // rotation about the Y axis
	CameraAngleY float32 // rotation about the X axis
}

// NewState returns the start-up state: opaque red, no rotation
func NewState() *State {
	return &State{Color: BaseColor}
}
