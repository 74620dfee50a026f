// Package graphics records debug draw primitives in world-pixel space for the
// host to flush each frame.
package graphics

import (
	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/obj"
)

const (
	White uint32 = 0xFFFFFF
	Black uint32 = 0x000000
)

// Shape tags a recorded command.
type Shape int

const (
	ShapeLine Shape = iota
	ShapeCircle
	ShapePolygon
	ShapeRect
)

// LineStyle is the stroke applied to commands recorded after SetLineStyle.
type LineStyle struct {
	Thickness float64
	Colour    uint32
}

// Fill is an optional solid fill.
type Fill struct {
	Colour uint32
	Alpha  float64
}

// Command is one recorded primitive. Points hold the line endpoints, polygon
// vertices, circle centre, or rect origin followed by its size.
type Command struct {
	Shape  Shape
	Points []common.Vec
	Radius float64
	Line   LineStyle
	Fill   *Fill
}

// Graphics is the debug overlay. Coordinates are world pixels at scale 1:
// a point p lands on screen at Origin + p*Scale.
type Graphics struct {
	camera   *obj.Camera
	commands []Command
	line     LineStyle
	visible  bool

	Scale  float64
	Origin common.Vec
}

func New() *Graphics {
	return &Graphics{Scale: 1, line: LineStyle{Thickness: 1, Colour: Black}}
}

// Init binds the overlay to the camera. Draw calls before Init are dropped.
func (g *Graphics) Init(camera *obj.Camera) {
	g.camera = camera
	g.Origin = camera.Offset
}

func (g *Graphics) ready() bool {
	return g != nil && g.camera != nil
}

// PreUpdate clears last tick's commands and sets visibility.
func (g *Graphics) PreUpdate(enableDebug bool) {
	if !g.ready() {
		return
	}
	g.commands = g.commands[:0]
	g.visible = enableDebug
}

// PostUpdate follows the camera.
func (g *Graphics) PostUpdate() {
	if !g.ready() {
		return
	}
	g.Scale = g.camera.Scale()
	g.Origin = g.camera.WorldToScreenPosition(common.Zero())
}

func (g *Graphics) Visible() bool {
	return g.ready() && g.visible
}

// Commands returns the commands recorded this tick.
func (g *Graphics) Commands() []Command {
	if g == nil {
		return nil
	}
	return g.commands
}

// ToScreen maps an overlay point to screen pixels.
func (g *Graphics) ToScreen(p common.Vec) common.Vec {
	return p.Mul(g.Scale).Add(g.Origin)
}

// SetLineStyle sets the stroke for following commands.
func (g *Graphics) SetLineStyle(thickness float64, colour uint32) {
	if !g.ready() {
		return
	}
	g.line = LineStyle{Thickness: thickness, Colour: colour}
}

func (g *Graphics) DrawLine(start, end common.Vec) {
	if !g.ready() {
		return
	}
	g.commands = append(g.commands, Command{Shape: ShapeLine, Points: []common.Vec{start, end}, Line: g.line})
}

// DrawVectorList strokes a closed outline through vertices.
func (g *Graphics) DrawVectorList(vertices []common.Vec) {
	if len(vertices) < 2 {
		return
	}
	for i := 1; i < len(vertices); i++ {
		g.DrawLine(vertices[i-1], vertices[i])
	}
	g.DrawLine(vertices[len(vertices)-1], vertices[0])
}

func (g *Graphics) DrawCircle(pos common.Vec, radius float64, fill ...Fill) {
	if !g.ready() {
		return
	}
	g.commands = append(g.commands, Command{Shape: ShapeCircle, Points: []common.Vec{pos}, Radius: radius, Line: g.line, Fill: firstFill(fill)})
}

func (g *Graphics) DrawPolygon(vertices []common.Vec, fill ...Fill) {
	if !g.ready() || len(vertices) < 3 {
		return
	}
	pts := make([]common.Vec, len(vertices))
	copy(pts, vertices)
	g.commands = append(g.commands, Command{Shape: ShapePolygon, Points: pts, Line: g.line, Fill: firstFill(fill)})
}

func (g *Graphics) DrawRect(pos, size common.Vec, fill ...Fill) {
	if !g.ready() {
		return
	}
	g.commands = append(g.commands, Command{Shape: ShapeRect, Points: []common.Vec{pos, size}, Line: g.line, Fill: firstFill(fill)})
}

// DrawX draws a cross of half-width size centred on pos.
func (g *Graphics) DrawX(pos common.Vec, size float64) {
	g.DrawLine(pos.Sub(common.Splat(size)), pos.Add(common.Splat(size)))
	g.DrawLine(common.V(pos.X-size, pos.Y+size), common.V(pos.X+size, pos.Y-size))
}

func firstFill(fill []Fill) *Fill {
	if len(fill) == 0 {
		return nil
	}
	f := fill[0]
	return &f
}
