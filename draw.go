package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/ecs/render"
	"github.com/milk9111/scaffold/graphics"
)

var whitePixel *ebiten.Image

func fillSource() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

func rgba(hex uint32, alpha float64) color.RGBA {
	r, g, b := common.HexToRGB(hex)
	a := common.Clamp(alpha, 0, 1)
	// ebiten expects premultiplied colours.
	return color.RGBA{
		R: uint8(float64(r) * a),
		G: uint8(float64(g) * a),
		B: uint8(float64(b) * a),
		A: uint8(255 * a),
	}
}

func drawStage(screen *ebiten.Image, stage *render.Stage) {
	for _, s := range stage.Sprites() {
		if !s.Visible || s.Texture == nil || s.Alpha <= 0 {
			continue
		}
		drawSprite(screen, s)
	}
}

func drawSprite(screen *ebiten.Image, s *render.Sprite) {
	b := s.Texture.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	sx, sy := s.Scale.X, s.Scale.Y
	if s.FlipX {
		sx = -sx
	}
	if s.FlipY {
		sy = -sy
	}

	tex, ok := s.Texture.(ebitenTexture)
	if !ok {
		// Placeholders have no pixels, so mark them loudly.
		x := s.Position.X - s.Anchor.X*w*math.Abs(sx)
		y := s.Position.Y - s.Anchor.Y*h*math.Abs(sy)
		vector.FillRect(screen, float32(x), float32(y), float32(w*math.Abs(sx)), float32(h*math.Abs(sy)), colornames.Magenta, false)
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-s.Anchor.X*w, -s.Anchor.Y*h)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Rotate(s.Rotation)
	op.GeoM.Translate(math.Round(s.Position.X), math.Round(s.Position.Y))

	r, g, bl := common.HexToRGB(s.Tint)
	op.ColorScale.Scale(float32(r)/255, float32(g)/255, float32(bl)/255, 1)
	op.ColorScale.ScaleAlpha(float32(common.Clamp(s.Alpha, 0, 1)))

	screen.DrawImage(tex.img, op)
}

// drawDebug flushes the overlay's commands. Points are world pixels at scale
// one and are mapped through the overlay's origin and scale.
func drawDebug(screen *ebiten.Image, gfx *graphics.Graphics) {
	if !gfx.Visible() {
		return
	}
	for _, cmd := range gfx.Commands() {
		lineColour := rgba(cmd.Line.Colour, 1)
		width := float32(cmd.Line.Thickness)

		switch cmd.Shape {
		case graphics.ShapeLine:
			if len(cmd.Points) < 2 {
				continue
			}
			a, b := gfx.ToScreen(cmd.Points[0]), gfx.ToScreen(cmd.Points[1])
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, lineColour, true)
		case graphics.ShapeCircle:
			if len(cmd.Points) < 1 {
				continue
			}
			c := gfx.ToScreen(cmd.Points[0])
			r := float32(cmd.Radius * gfx.Scale)
			if cmd.Fill != nil {
				vector.FillCircle(screen, float32(c.X), float32(c.Y), r, rgba(cmd.Fill.Colour, cmd.Fill.Alpha), true)
			}
			vector.StrokeCircle(screen, float32(c.X), float32(c.Y), r, width, lineColour, true)
		case graphics.ShapeRect:
			if len(cmd.Points) < 2 {
				continue
			}
			p := gfx.ToScreen(cmd.Points[0])
			size := cmd.Points[1].Mul(gfx.Scale)
			if cmd.Fill != nil {
				vector.FillRect(screen, float32(p.X), float32(p.Y), float32(size.X), float32(size.Y), rgba(cmd.Fill.Colour, cmd.Fill.Alpha), false)
			}
			vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(size.X), float32(size.Y), width, lineColour, false)
		case graphics.ShapePolygon:
			drawPolygon(screen, gfx, cmd, lineColour, width)
		}
	}
}

func drawPolygon(screen *ebiten.Image, gfx *graphics.Graphics, cmd graphics.Command, lineColour color.RGBA, width float32) {
	if len(cmd.Points) < 2 {
		return
	}
	pts := make([]common.Vec, len(cmd.Points))
	for i, p := range cmd.Points {
		pts[i] = gfx.ToScreen(p)
	}

	if cmd.Fill != nil && len(pts) >= 3 {
		var path vector.Path
		path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
		for _, p := range pts[1:] {
			path.LineTo(float32(p.X), float32(p.Y))
		}
		path.Close()

		vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
		// Vertex colours are straight alpha.
		r, g, b := common.HexToRGB(cmd.Fill.Colour)
		a := float32(common.Clamp(cmd.Fill.Alpha, 0, 1))
		for i := range vs {
			vs[i].SrcX, vs[i].SrcY = 0, 0
			vs[i].ColorR = float32(r) / 255
			vs[i].ColorG = float32(g) / 255
			vs[i].ColorB = float32(b) / 255
			vs[i].ColorA = a
		}
		screen.DrawTriangles(vs, is, fillSource(), &ebiten.DrawTrianglesOptions{})
	}

	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, lineColour, true)
	}
}
