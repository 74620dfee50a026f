package obj

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/milk9111/scaffold/common"
)

const (
	// TicksPerSecond is the fixed update rate the camera's timed scrolls are
	// measured against.
	TicksPerSecond = 60

	panSmoothing      = 0.1
	panArriveDist     = 0.1
	DefaultWorldScale = 16
)

// scrollAnim holds an active timed scroll.
type scrollAnim struct {
	x *gween.Tween
	y *gween.Tween
}

// Camera maps world units to screen pixels. A world point at WorldPosition is
// drawn at Offset, and one world unit spans WorldScale*Scale pixels.
type Camera struct {
	WorldPosition common.Vec
	Offset        common.Vec
	WorldScale    float64
	GameSpeed     float64

	scale  float64
	target *common.Vec
	scroll *scrollAnim
	log    *zap.Logger
}

// NewCamera creates a camera centered on a screenW x screenH viewport.
func NewCamera(screenW, screenH int, scale, worldScale float64, log *zap.Logger) *Camera {
	if log == nil {
		log = zap.NewNop()
	}
	if worldScale <= 0 {
		worldScale = DefaultWorldScale
	}
	c := &Camera{
		WorldScale: worldScale,
		GameSpeed:  1,
		scale:      1,
		log:        log,
	}
	c.SetScreenSize(screenW, screenH)
	c.SetScale(scale)
	return c
}

// SetScreenSize recenters the offset on a new viewport size.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		c.log.Warn("camera: ignoring screen size", zap.Int("w", w), zap.Int("h", h))
		return
	}
	c.Offset = common.V(float64(w)/2, float64(h)/2)
}

// Scale returns the zoom factor.
func (c *Camera) Scale() float64 {
	return c.scale
}

// SetScale sets the zoom factor. Non-positive values are logged and ignored.
func (c *Camera) SetScale(s float64) {
	if s <= 0 {
		c.log.Warn("camera: scale must be positive", zap.Float64("scale", s))
		return
	}
	c.scale = s
}

// PixelsPerUnit returns the screen pixels one world unit spans.
func (c *Camera) PixelsPerUnit() float64 {
	return c.WorldScale * c.scale
}

// GoToPosition pans toward target over the next ticks. The last call wins
// and any timed scroll is cancelled.
func (c *Camera) GoToPosition(target common.Vec) {
	c.target = &target
	c.scroll = nil
}

// SnapTo moves the camera immediately, cancelling any pan.
func (c *Camera) SnapTo(p common.Vec) {
	c.WorldPosition = p
	c.target = nil
	c.scroll = nil
}

// eases names the tween curves a scroll can be configured with.
var eases = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
}

// EaseByName returns the named curve. Empty or unknown names give Linear
// and false.
func EaseByName(name string) (ease.TweenFunc, bool) {
	fn, ok := eases[name]
	if !ok {
		return ease.Linear, false
	}
	return fn, true
}

// ScrollTo pans to target over the given seconds using easeFn, or linearly
// when easeFn is nil. It cancels any GoToPosition target.
func (c *Camera) ScrollTo(target common.Vec, seconds float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	if seconds <= 0 {
		c.SnapTo(target)
		return
	}
	c.target = nil
	c.scroll = &scrollAnim{
		x: gween.New(float32(c.WorldPosition.X), float32(target.X), seconds, easeFn),
		y: gween.New(float32(c.WorldPosition.Y), float32(target.Y), seconds, easeFn),
	}
}

// HasTarget reports whether a pan or scroll is in progress.
func (c *Camera) HasTarget() bool {
	return c.target != nil || c.scroll != nil
}

// Target returns the pending GoToPosition target.
func (c *Camera) Target() (common.Vec, bool) {
	if c.target == nil {
		return common.Vec{}, false
	}
	return *c.target, true
}

// Update advances any pan by one tick. GoToPosition pans close a fixed
// fraction of the remaining distance per tick, scaled by GameSpeed; timed
// scrolls advance by delta ticks.
func (c *Camera) Update(delta float64) {
	if c.scroll != nil {
		dt := float32(delta / TicksPerSecond)
		x, doneX := c.scroll.x.Update(dt)
		y, doneY := c.scroll.y.Update(dt)
		c.WorldPosition = common.V(float64(x), float64(y))
		if doneX && doneY {
			c.scroll = nil
		}
		return
	}
	if c.target == nil {
		return
	}
	c.WorldPosition = common.LerpVec(c.WorldPosition, *c.target, panSmoothing*c.GameSpeed)
	if common.Distance(c.WorldPosition, *c.target) < panArriveDist {
		c.target = nil
	}
}

// WorldToScreenPosition maps a world point to screen pixels.
func (c *Camera) WorldToScreenPosition(p common.Vec) common.Vec {
	return p.Sub(c.WorldPosition).Mul(c.PixelsPerUnit()).Add(c.Offset)
}

// ScreenToWorldPosition maps screen pixels to a world point.
func (c *Camera) ScreenToWorldPosition(p common.Vec) common.Vec {
	return p.Sub(c.Offset).Div(c.PixelsPerUnit()).Add(c.WorldPosition)
}

// ViewTopLeft returns the world point drawn at the screen's top-left corner.
func (c *Camera) ViewTopLeft() common.Vec {
	return c.ScreenToWorldPosition(common.Zero())
}
