package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/ecs"
	"github.com/milk9111/scaffold/ecs/render"
)

// missingTextureSize is the edge of the placeholder drawn for textures that
// failed to resolve.
const missingTextureSize = 16

// sheetRef is a sprite sheet cell by reference, resolved against the texture
// source when the system starts.
type sheetRef struct {
	CellWidth  int `json:"cellWidth"`
	CellHeight int `json:"cellHeight"`
	Index      int `json:"index"`
}

type renderData struct {
	SpriteURL   string     `json:"spriteUrl"`
	SpriteSheet *sheetRef  `json:"spriteSheet,omitempty"`
	FlipX       bool       `json:"flipX"`
	FlipY       bool       `json:"flipY"`
	Scale       float64    `json:"scale"`
	Pivot       [2]float64 `json:"pivot"`
	Offset      [2]float64 `json:"offset"`
	Colour      uint32     `json:"colour"`
	Alpha       float64    `json:"alpha"`
	Visible     bool       `json:"visible"`
	ZIndex      int        `json:"zIndex,omitempty"`
}

// RenderSystem draws the entity as a sprite. Pivot is relative to the sprite
// size; Offset is in world units from the entity position.
type RenderSystem struct {
	ecs.Base

	FlipX   bool
	FlipY   bool
	Scale   float64
	Pivot   common.Vec
	Offset  common.Vec
	Colour  uint32
	Alpha   float64
	Visible bool
	ZIndex  int

	spriteKey string
	cell      *sheetRef
	sheet     *render.SpriteSheet
	sprite    *render.Sprite

	deps Deps
	log  *zap.Logger
}

// NewRenderSystem returns a render system drawing the texture at key, which
// may be empty and set later.
func NewRenderSystem(deps Deps, key string) *RenderSystem {
	return &RenderSystem{
		Scale:     1,
		Pivot:     common.Splat(0.5),
		Colour:    0xFFFFFF,
		Alpha:     1,
		Visible:   true,
		spriteKey: key,
		deps:      deps,
		log:       deps.logger().Named("render"),
	}
}

func (r *RenderSystem) Kind() string { return RenderSystemKind }
func (r *RenderSystem) Slot() string { return RenderSystemKind }

func (r *RenderSystem) Start(e *ecs.Entity) {
	r.Base.Start(e)
	switch {
	case r.cell != nil:
		r.setCell(r.spriteKey, *r.cell)
	case r.spriteKey != "":
		r.SetSprite(r.spriteKey)
	}
}

func (r *RenderSystem) PostUpdate(float64) {
	r.sync()
}

func (r *RenderSystem) End() {
	if r.sprite != nil && r.deps.Stage != nil {
		r.deps.Stage.Remove(r.sprite)
	}
	r.sprite = nil
}

// SpriteKey returns the texture key the sprite is drawn from.
func (r *RenderSystem) SpriteKey() string {
	return r.spriteKey
}

// Sprite returns the sprite on the stage, or nil before start.
func (r *RenderSystem) Sprite() *render.Sprite {
	return r.sprite
}

// Sheet returns the sprite sheet in use, or nil.
func (r *RenderSystem) Sheet() *render.SpriteSheet {
	return r.sheet
}

// SetSprite draws the whole texture at key.
func (r *RenderSystem) SetSprite(key string) {
	r.spriteKey = key
	r.cell = nil
	r.sheet = nil
	if !r.Started() {
		return
	}
	r.updateSprite(render.NewSprite(r.texture(key)))
}

// SetSpriteSheet draws cell index of sheet.
func (r *RenderSystem) SetSpriteSheet(sheet *render.SpriteSheet, index int) {
	if sheet == nil {
		r.log.Error("nil sprite sheet")
		return
	}
	r.spriteKey = sheet.Key
	r.sheet = sheet
	r.cell = &sheetRef{CellWidth: sheet.CellWidth, CellHeight: sheet.CellHeight, Index: index}
	if !r.Started() {
		return
	}
	r.updateSprite(render.NewSprite(sheet.Cell(index)))
}

func (r *RenderSystem) setCell(key string, ref sheetRef) {
	sheet := r.sheet
	if sheet == nil || sheet.Key != key || sheet.CellWidth != ref.CellWidth || sheet.CellHeight != ref.CellHeight {
		sheet = render.NewSpriteSheet(key, r.texture(key), ref.CellWidth, ref.CellHeight)
	}
	r.SetSpriteSheet(sheet, ref.Index)
}

func (r *RenderSystem) texture(key string) render.Texture {
	var tex render.Texture
	if r.deps.Textures != nil {
		tex = r.deps.Textures.Texture(key)
	}
	if tex == nil {
		r.log.Warn("missing texture", zap.String("key", key))
		return render.NewPlaceholder(missingTextureSize, missingTextureSize)
	}
	return tex
}

// updateSprite swaps the sprite on the stage.
func (r *RenderSystem) updateSprite(s *render.Sprite) {
	if s == nil {
		r.log.Error("failed to update sprite")
		return
	}
	if r.deps.Stage != nil {
		if r.sprite != nil {
			r.deps.Stage.Remove(r.sprite)
		}
		r.deps.Stage.Add(s)
	}
	r.sprite = s
	r.sync()
}

func (r *RenderSystem) sync() {
	if r.sprite == nil {
		return
	}
	s := r.sprite
	s.FlipX = r.FlipX
	s.FlipY = r.FlipY
	s.Anchor = r.Pivot
	s.Tint = r.Colour
	s.Alpha = r.Alpha
	s.Visible = r.Visible
	s.ZIndex = r.ZIndex

	cam := r.deps.Camera
	e := r.Entity()
	if cam == nil || e == nil {
		return
	}
	s.Scale = common.Splat(cam.Scale() * r.Scale)
	s.Position = cam.WorldToScreenPosition(e.Position.Add(r.Offset))
}

func (r *RenderSystem) data() renderData {
	d := renderData{
		SpriteURL: r.spriteKey,
		FlipX:     r.FlipX,
		FlipY:     r.FlipY,
		Scale:     r.Scale,
		Pivot:     r.Pivot.Serialize(),
		Offset:    r.Offset.Serialize(),
		Colour:    r.Colour,
		Alpha:     r.Alpha,
		Visible:   r.Visible,
		ZIndex:    r.ZIndex,
	}
	if r.cell != nil {
		ref := *r.cell
		d.SpriteSheet = &ref
	}
	return d
}

func (r *RenderSystem) apply(d renderData) {
	r.FlipX = d.FlipX
	r.FlipY = d.FlipY
	r.Scale = d.Scale
	r.Pivot = common.Deserialize(d.Pivot)
	r.Offset = common.Deserialize(d.Offset)
	r.Colour = d.Colour
	r.Alpha = d.Alpha
	r.Visible = d.Visible
	r.ZIndex = d.ZIndex

	r.spriteKey = d.SpriteURL
	r.cell = d.SpriteSheet
	r.sheet = nil
	if !r.Started() {
		return
	}
	if r.cell != nil {
		r.setCell(r.spriteKey, *r.cell)
	} else if r.spriteKey != "" {
		r.SetSprite(r.spriteKey)
	}
}

func (r *RenderSystem) Save() (ecs.SystemData, error) {
	return r.SaveBase(RenderSystemKind, r.data())
}

// Load restores the configuration. Fields absent from data keep their
// current values.
func (r *RenderSystem) Load(data ecs.SystemData) error {
	d := r.data()
	d.SpriteSheet = nil
	if err := r.LoadBase(data, &d); err != nil {
		return err
	}
	r.apply(d)
	return nil
}
