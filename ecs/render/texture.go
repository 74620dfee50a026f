package render

import "image"

// Texture is a drawable image handle owned by the host renderer.
type Texture interface {
	Bounds() image.Rectangle
	Sub(r image.Rectangle) Texture
}

// Placeholder stands in for a texture that failed to resolve. The host draws
// it as a flat marker so the failure stays visible.
type Placeholder struct {
	Rect image.Rectangle
}

// NewPlaceholder returns a w x h placeholder.
func NewPlaceholder(w, h int) Placeholder {
	return Placeholder{Rect: image.Rect(0, 0, w, h)}
}

func (p Placeholder) Bounds() image.Rectangle {
	return p.Rect
}

func (p Placeholder) Sub(r image.Rectangle) Texture {
	return Placeholder{Rect: r.Intersect(p.Rect)}
}
