package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Op identifies a command in a CommandList
type Op int

const (
	OpSetClearColor Op = iota
	OpEnableDepthTest
	OpViewport
	OpSetProjection
	OpClear
	OpSetModelView
	OpBegin
	OpColor
	OpVertex
	OpEnd
	OpText
	OpPresent
)

var opNames = [...]string{
	OpSetClearColor:   "SetClearColor",
	OpEnableDepthTest: "EnableDepthTest",
	OpViewport:        "Viewport",
	OpSetProjection:   "SetProjection",
	OpClear:           "Clear",
	OpSetModelView:    "SetModelView",
	OpBegin:           "Begin",
	OpColor:           "Color",
	OpVertex:          "Vertex",
	OpEnd:             "End",
	OpText:            "Text",
	OpPresent:         "Present",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "Unknown"
	}
	return opNames[o]
}

// Primitive is the kind of batch opened by OpBegin
type Primitive int

const (
	PrimitiveTriangles Primitive = iota
)

// ClearMask selects which buffers OpClear clears
type ClearMask int

const (
	ClearColorBuffer ClearMask = 1 << iota
	ClearDepthBuffer
)

// Command is a single backend instruction. Only the fields relevant to Op are set:
// Vec holds a color (RGBA), a position (XYZ) or a text origin (XY in pixels),
// Mat a transform, Rect a viewport.
type Command struct {
	Op        Op
	Vec       mgl32.Vec4
	Mat       mgl32.Mat4
	Rect      [4]int32
	Primitive Primitive
	Mask      ClearMask
	Text      string
}

// CommandList is an ordered list of commands consumed by a Backend
type CommandList struct {
	Commands []Command
}

// Reset empties the list, keeping its capacity
func (l *CommandList) Reset() {
	l.Commands = l.Commands[:0]
}

func (l *CommandList) push(c Command) {
	l.Commands = append(l.Commands, c)
}

func (l *CommandList) SetClearColor(c mgl32.Vec4) {
	l.push(Command{Op: OpSetClearColor, Vec: c})
}

func (l *CommandList) EnableDepthTest() {
	l.push(Command{Op: OpEnableDepthTest})
}

func (l *CommandList) Viewport(x, y, width, height int32) {
	l.push(Command{Op: OpViewport, Rect: [4]int32{x, y, width, height}})
}

func (l *CommandList) SetProjection(m mgl32.Mat4) {
	l.push(Command{Op: OpSetProjection, Mat: m})
}

func (l *CommandList) Clear(mask ClearMask) {
	l.push(Command{Op: OpClear, Mask: mask})
}

func (l *CommandList) SetModelView(m mgl32.Mat4) {
	l.push(Command{Op: OpSetModelView, Mat: m})
}

func (l *CommandList) Begin(p Primitive) {
	l.push(Command{Op: OpBegin, Primitive: p})
}

// Color sets the current opaque draw color for following vertices
func (l *CommandList) Color(c mgl32.Vec3) {
	l.push(Command{Op: OpColor, Vec: c.Vec4(1)})
}

func (l *CommandList) Vertex(v mgl32.Vec3) {
	l.push(Command{Op: OpVertex, Vec: v.Vec4(1)})
}

func (l *CommandList) End() {
	l.push(Command{Op: OpEnd})
}

// Text draws a line of overlay text with its baseline starting at (x, y) pixels from the top-left
func (l *CommandList) Text(x, y float32, s string) {
	l.push(Command{Op: OpText, Vec: mgl32.Vec4{x, y, 0, 0}, Text: s})
}

func (l *CommandList) Present() {
	l.push(Command{Op: OpPresent})
}
