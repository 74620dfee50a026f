package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/scaffold/ecs"
	"github.com/milk9111/scaffold/ecs/render"
)

type animatedData struct {
	renderData
	Animations    []render.Animation `json:"animations,omitempty"`
	AnimationsURL string             `json:"animationsUrl,omitempty"`
	Animation     string             `json:"animation,omitempty"`
}

// AnimatedRenderSystem is a RenderSystem that plays named clips of sprite
// sheet cells. It shares the render slot, so an entity has one or the other.
type AnimatedRenderSystem struct {
	RenderSystem

	animations    *render.AnimationLibrary
	animationsKey string
	inline        []render.Animation
	current       string
}

func NewAnimatedRenderSystem(deps Deps, anims ...render.Animation) *AnimatedRenderSystem {
	a := &AnimatedRenderSystem{
		RenderSystem: *NewRenderSystem(deps, ""),
		animations:   render.NewAnimationLibrary(anims...),
		inline:       anims,
	}
	a.log = deps.logger().Named("animation")
	return a
}

func (a *AnimatedRenderSystem) Kind() string { return AnimatedRenderSystemKind }

// SetAnimations adds or replaces clips.
func (a *AnimatedRenderSystem) SetAnimations(anims ...render.Animation) {
	for _, anim := range anims {
		a.animations.Register(anim)
	}
	a.inline = append(a.inline, anims...)
}

// LoadAnimations replaces the clip library with the clips in the data asset
// at key. Inline clips are registered on top and win on a name clash.
func (a *AnimatedRenderSystem) LoadAnimations(key string) error {
	if a.deps.Data == nil {
		return fmt.Errorf("system: no data source for %s", key)
	}
	var anims []render.Animation
	if err := a.deps.Data.JSON(key, &anims); err != nil {
		return err
	}
	a.animationsKey = key
	a.animations = render.NewAnimationLibrary(anims...)
	for _, anim := range a.inline {
		a.animations.Register(anim)
	}
	return nil
}

// Animations returns the clip library.
func (a *AnimatedRenderSystem) Animations() *render.AnimationLibrary {
	return a.animations
}

// Current returns the name of the clip playing.
func (a *AnimatedRenderSystem) Current() string {
	return a.current
}

func (a *AnimatedRenderSystem) Start(e *ecs.Entity) {
	a.RenderSystem.Start(e)
	if name := a.current; name != "" {
		a.current = ""
		a.SetAnimation(name)
	}
}

// Update advances the playing clip.
func (a *AnimatedRenderSystem) Update(delta float64) {
	if a.sprite != nil {
		a.sprite.Advance(delta)
	}
}

// SetAnimation plays the named clip from its first frame. Playing the clip
// already running is a no-op.
func (a *AnimatedRenderSystem) SetAnimation(name string) {
	if !a.Started() {
		a.log.Error("system hasn't been started yet", zap.String("animation", name))
		return
	}
	anim, ok := a.animations.Get(name)
	if !ok {
		a.log.Error("tried to play nonexistent animation", zap.String("animation", name))
		return
	}
	if a.current == name {
		return
	}
	if a.sheet == nil {
		a.log.Error("animation needs a sprite sheet", zap.String("animation", name))
		return
	}

	sprite := render.NewAnimatedSprite(a.sheet.Cells(anim.Frames), anim.Speed, anim.Loop)
	a.current = name
	a.updateSprite(sprite)
	sprite.Play()
}

func (a *AnimatedRenderSystem) Save() (ecs.SystemData, error) {
	d := animatedData{
		renderData:    a.data(),
		Animations:    a.animations.All(),
		AnimationsURL: a.animationsKey,
		Animation:     a.current,
	}
	if a.animationsKey != "" {
		d.Animations = a.inline
	}
	return a.SaveBase(AnimatedRenderSystemKind, d)
}

func (a *AnimatedRenderSystem) Load(data ecs.SystemData) error {
	d := animatedData{renderData: a.data()}
	d.SpriteSheet = nil
	if err := a.LoadBase(data, &d); err != nil {
		return err
	}
	a.apply(d.renderData)
	a.animations = render.NewAnimationLibrary(d.Animations...)
	a.inline = d.Animations
	a.animationsKey = ""
	if d.AnimationsURL != "" {
		if err := a.LoadAnimations(d.AnimationsURL); err != nil {
			a.log.Warn("failed to load animations", zap.String("key", d.AnimationsURL), zap.Error(err))
		}
	}

	a.current = ""
	if d.Animation == "" {
		return nil
	}
	if a.Started() {
		a.SetAnimation(d.Animation)
	} else {
		a.current = d.Animation
	}
	return nil
}
