package render

import (
	"image"

	"github.com/milk9111/scaffold/common"
)

// SpriteSheet slices a texture into a grid of equally sized cells, numbered
// left to right, top to bottom.
type SpriteSheet struct {
	Key        string
	Texture    Texture
	CellWidth  int
	CellHeight int
}

func NewSpriteSheet(key string, tex Texture, cellWidth, cellHeight int) *SpriteSheet {
	return &SpriteSheet{Key: key, Texture: tex, CellWidth: cellWidth, CellHeight: cellHeight}
}

// Columns returns the number of cells per row.
func (s *SpriteSheet) Columns() int {
	if s == nil || s.Texture == nil || s.CellWidth <= 0 {
		return 0
	}
	return s.Texture.Bounds().Dx() / s.CellWidth
}

// Rows returns the number of cell rows.
func (s *SpriteSheet) Rows() int {
	if s == nil || s.Texture == nil || s.CellHeight <= 0 {
		return 0
	}
	return s.Texture.Bounds().Dy() / s.CellHeight
}

// Len returns the number of cells.
func (s *SpriteSheet) Len() int {
	return s.Columns() * s.Rows()
}

// CellRect returns the source rectangle of cell index, clamped into range.
func (s *SpriteSheet) CellRect(index int) image.Rectangle {
	n := s.Len()
	if n == 0 {
		return image.Rectangle{}
	}
	index = int(common.Clamp(float64(index), 0, float64(n-1)))
	cols := s.Columns()
	origin := s.Texture.Bounds().Min
	x := origin.X + (index%cols)*s.CellWidth
	y := origin.Y + (index/cols)*s.CellHeight
	return image.Rect(x, y, x+s.CellWidth, y+s.CellHeight)
}

// Cell returns the sub-texture of cell index, or nil for an empty sheet.
func (s *SpriteSheet) Cell(index int) Texture {
	if s.Len() == 0 {
		return nil
	}
	return s.Texture.Sub(s.CellRect(index))
}

// Cells returns the sub-textures for each index.
func (s *SpriteSheet) Cells(indices []int) []Texture {
	out := make([]Texture, 0, len(indices))
	for _, i := range indices {
		if c := s.Cell(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}
