package system

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/ecs"
	"github.com/milk9111/scaffold/ecs/render"
	"github.com/milk9111/scaffold/obj"
)

type textures map[string]render.Texture

func (t textures) Texture(key string) render.Texture {
	return t[key]
}

type scripts map[string]string

func (s scripts) Script(name string) ([]byte, error) {
	src, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("no script %q", name)
	}
	return []byte(src), nil
}

type dataAssets map[string]string

func (d dataAssets) JSON(key string, v any) error {
	raw, ok := d[key]
	if !ok {
		return fmt.Errorf("no data %q", key)
	}
	return json.Unmarshal([]byte(raw), v)
}

func newDeps(log *zap.Logger) Deps {
	in := obj.NewInput(nil)
	for _, def := range obj.DefaultInputs() {
		in.RegisterInput(def)
	}
	return Deps{
		Camera: obj.NewCamera(800, 600, 1, 16, nil),
		Stage:  render.NewStage(),
		Textures: textures{
			"hero.png":  render.NewPlaceholder(32, 32),
			"sheet.png": render.NewPlaceholder(64, 16),
		},
		Data: dataAssets{
			"anims.json": `[{"name":"idle","frames":[0],"speed":0.25,"loop":true},{"name":"walk","frames":[0,1,2,3],"speed":0.2,"loop":true}]`,
		},
		Input: in,
		Scripts: scripts{
			"walk.tengo":   "position = [position[0] + input[0] * delta, position[1] + input[1] * delta]",
			"count.tengo":  "state.n = is_undefined(state.n) ? 1 : state.n + 1",
			"broken.tengo": "position = \"nope\"",
		},
		Log: log,
	}
}

func tick(w *ecs.World) {
	for _, phase := range ecs.Phases {
		w.Run(phase, 1)
	}
	w.Reconcile()
}

func TestRenderSystemSyncsSprite(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.V(1, 1))
	r := NewRenderSystem(deps, "hero.png")
	r.Offset = common.V(1, 0)
	r.Scale = 2
	e.AddSystem(r)
	assert.Nil(t, r.Sprite(), "sprite is created on start")

	w.Reconcile()
	require.NotNil(t, r.Sprite())
	assert.True(t, deps.Stage.Contains(r.Sprite()))

	tick(w)
	s := r.Sprite()
	assert.Equal(t, common.V(432, 316), s.Position)
	assert.Equal(t, common.Splat(2), s.Scale)
	assert.Equal(t, common.Splat(0.5), s.Anchor)

	e.Remove()
	assert.Zero(t, deps.Stage.Len())
}

func TestRenderSystemMissingTexture(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	deps := newDeps(zap.New(core))
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.Zero())
	r := NewRenderSystem(deps, "nope.png")
	e.AddSystem(r)
	w.Reconcile()

	require.NotNil(t, r.Sprite())
	assert.IsType(t, render.Placeholder{}, r.Sprite().Texture)
	assert.Equal(t, 1, logs.FilterMessage("missing texture").Len())
}

func TestRenderSystemSpriteSheet(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.Zero())
	r := NewRenderSystem(deps, "")
	e.AddSystem(r)
	w.Reconcile()

	sheet := render.NewSpriteSheet("sheet.png", deps.Textures.Texture("sheet.png"), 16, 16)
	r.SetSpriteSheet(sheet, 2)
	require.NotNil(t, r.Sprite())
	assert.Equal(t, 32, r.Sprite().Texture.Bounds().Min.X)
	assert.Equal(t, 1, deps.Stage.Len(), "the old sprite is replaced")
}

func TestRenderSystemSaveLoadRoundTrip(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.V(-4, 9.5))
	r := NewRenderSystem(deps, "")
	r.Pivot = common.V(0.25, 1)
	r.Scale = 3
	r.Colour = 0xFF8800
	r.Alpha = 0.5
	r.FlipX = true
	r.FlipY = true
	r.Offset = common.V(0, -1)
	r.ZIndex = 2
	e.AddSystem(r)
	w.Reconcile()
	r.SetSpriteSheet(render.NewSpriteSheet("sheet.png", deps.Textures.Texture("sheet.png"), 16, 16), 3)

	data, err := e.Save()
	require.NoError(t, err)
	raw, err := json.Marshal(data)
	require.NoError(t, err)

	var decoded ecs.EntityData
	require.NoError(t, json.Unmarshal(raw, &decoded))

	other := ecs.NewWorld(nil)
	loaded := ecs.LoadEntity(other, decoded, NewFactory(deps), nil)
	other.Reconcile()

	assert.Equal(t, e.ID(), loaded.ID())
	assert.Equal(t, e.Position, loaded.Position)

	lr, ok := ecs.SystemAs[*RenderSystem](loaded, RenderSystemKind)
	require.True(t, ok)
	assert.Equal(t, r.Pivot, lr.Pivot)
	assert.Equal(t, r.Scale, lr.Scale)
	assert.Equal(t, r.Colour, lr.Colour)
	assert.Equal(t, r.Alpha, lr.Alpha)
	assert.Equal(t, r.FlipX, lr.FlipX)
	assert.Equal(t, r.FlipY, lr.FlipY)
	assert.Equal(t, r.Offset, lr.Offset)
	assert.Equal(t, r.ZIndex, lr.ZIndex)
	assert.Equal(t, r.Visible, lr.Visible)
	assert.Equal(t, "sheet.png", lr.SpriteKey())
	require.NotNil(t, lr.Sprite())
	assert.Equal(t, r.Sprite().Texture.Bounds(), lr.Sprite().Texture.Bounds())
}

func TestAnimatedRenderSystem(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	deps := newDeps(zap.New(core))
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.Zero())
	a := NewAnimatedRenderSystem(deps, render.NewAnimation("walk", 0, 1, 2), render.Animation{Name: "blink", Frames: []int{3}, Speed: 1})
	a.SetSpriteSheet(render.NewSpriteSheet("sheet.png", deps.Textures.Texture("sheet.png"), 16, 16), 0)
	e.AddSystem(a)

	a.SetAnimation("walk")
	assert.Equal(t, 1, logs.FilterMessage("system hasn't been started yet").Len())
	assert.Empty(t, a.Current())

	w.Reconcile()
	a.SetAnimation("fly")
	assert.Equal(t, 1, logs.FilterMessage("tried to play nonexistent animation").Len())

	a.SetAnimation("walk")
	require.Equal(t, "walk", a.Current())
	sprite := a.Sprite()
	assert.True(t, sprite.Playing())

	a.SetAnimation("walk")
	assert.Same(t, sprite, a.Sprite(), "same clip is a no-op")

	for i := 0; i < 4; i++ {
		tick(w)
	}
	assert.Equal(t, 1, sprite.Frame())

	_, ok := e.AddSystem(NewRenderSystem(deps, "hero.png"))
	assert.False(t, ok, "animated and plain render share a slot")
}

func TestAnimatedRenderSystemAnimationsAsset(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	sd, err := ecs.EncodeSystemData(AnimatedRenderSystemKind, false, map[string]any{
		"spriteUrl":     "sheet.png",
		"spriteSheet":   map[string]any{"cellWidth": 16, "cellHeight": 16},
		"animationsUrl": "anims.json",
		"animations":    []render.Animation{{Name: "walk", Frames: []int{3}, Speed: 1}},
		"animation":     "walk",
	})
	require.NoError(t, err)
	e := ecs.LoadEntity(w, ecs.EntityData{SystemData: []ecs.SystemData{sd}}, NewFactory(deps), nil)
	w.Reconcile()

	a, ok := ecs.SystemAs[*AnimatedRenderSystem](e, RenderSystemKind)
	require.True(t, ok)
	_, ok = a.Animations().Get("idle")
	assert.True(t, ok, "clips come from the data asset")
	walk, ok := a.Animations().Get("walk")
	require.True(t, ok)
	assert.Equal(t, []int{3}, walk.Frames, "inline clips win")
	assert.Equal(t, "walk", a.Current())

	saved, err := a.Save()
	require.NoError(t, err)
	var out struct {
		AnimationsURL string             `json:"animationsUrl"`
		Animations    []render.Animation `json:"animations"`
	}
	require.NoError(t, saved.Decode(&out))
	assert.Equal(t, "anims.json", out.AnimationsURL)
	assert.Len(t, out.Animations, 1, "only inline clips are saved")
}

func TestAnimatedRenderSystemMissingAnimationsAsset(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	deps := newDeps(zap.New(core))
	a := NewAnimatedRenderSystem(deps)
	sd, err := ecs.EncodeSystemData(AnimatedRenderSystemKind, false, map[string]any{"animationsUrl": "missing.json"})
	require.NoError(t, err)
	require.NoError(t, a.Load(sd))
	assert.Equal(t, 1, logs.FilterMessage("failed to load animations").Len())
}

func TestAnimatedRenderSystemSaveLoad(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.V(2, 2))
	a := NewAnimatedRenderSystem(deps, render.NewAnimation("walk", 0, 1, 2))
	a.SetSpriteSheet(render.NewSpriteSheet("sheet.png", deps.Textures.Texture("sheet.png"), 16, 16), 0)
	a.FlipX = true
	e.AddSystem(a)
	w.Reconcile()
	a.SetAnimation("walk")

	data, err := e.Save()
	require.NoError(t, err)

	other := ecs.NewWorld(nil)
	loaded := ecs.LoadEntity(other, data, NewFactory(deps), nil)
	other.Reconcile()

	la, ok := ecs.SystemAs[*AnimatedRenderSystem](loaded, RenderSystemKind)
	require.True(t, ok)
	assert.Equal(t, "walk", la.Current())
	assert.True(t, la.FlipX)
	walk, ok := la.Animations().Get("walk")
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, walk.Frames)
	assert.True(t, la.Sprite().Playing())
}

func TestScriptSystemMovesEntity(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.V(1, 1))
	e.AddSystem(NewInputSystem(deps))
	e.AddSystem(NewScriptSystem(deps, "walk.tengo"))
	w.Reconcile()

	deps.Input.KeyDown(obj.KeyRight)
	tick(w)
	assert.Equal(t, common.V(2, 1), e.Position)

	deps.Input.KeyUp(obj.KeyRight)
	tick(w)
	assert.Equal(t, common.V(2, 1), e.Position)
}

func TestScriptSystemState(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.Zero())
	s := NewScriptSystem(deps, "count.tengo")
	e.AddSystem(s)
	w.Reconcile()

	tick(w)
	tick(w)
	tick(w)
	assert.Equal(t, 3, s.State()["n"])
}

func TestScriptSystemErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	deps := newDeps(zap.New(core))
	w := ecs.NewWorld(nil)

	bad := ecs.NewEntity(w, common.V(5, 5))
	bad.AddSystem(NewScriptSystem(deps, "broken.tengo"))
	missing := ecs.NewEntity(w, common.Zero())
	missing.AddSystem(NewScriptSystem(deps, "gone.tengo"))
	w.Reconcile()

	tick(w)
	assert.Equal(t, common.V(5, 5), bad.Position)
	assert.Equal(t, 1, logs.FilterMessage("script error").Len())
	assert.Equal(t, 1, logs.FilterMessage("load script").Len())
}

func TestFactory(t *testing.T) {
	f := NewFactory(newDeps(nil))
	for _, kind := range []string{RenderSystemKind, AnimatedRenderSystemKind, InputSystemKind, ScriptSystemKind, CameraFollowSystemKind, TTLSystemKind} {
		t.Run(kind, func(t *testing.T) {
			s, err := f.New(kind)
			require.NoError(t, err)
			assert.Equal(t, kind, s.Kind())
		})
	}

	_, err := f.New("PHYSICS_SYSTEM")
	assert.ErrorIs(t, err, ecs.ErrUnknownSystemKind)
}

func TestCameraFollowSnaps(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.V(3, 4))
	follow := NewCameraFollowSystem(deps)
	follow.Smooth = false
	follow.Offset = common.V(0, -1)
	e.AddSystem(follow)
	w.Reconcile()

	tick(w)
	assert.Equal(t, common.V(3, 3), deps.Camera.WorldPosition)
}

func TestCameraFollowPans(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.V(10, 0))
	e.AddSystem(NewCameraFollowSystem(deps))
	w.Reconcile()

	tick(w)
	target, ok := deps.Camera.Target()
	require.True(t, ok)
	assert.Equal(t, common.V(10, 0), target)

	for range 200 {
		deps.Camera.Update(1)
	}
	assert.InDelta(t, 10, deps.Camera.WorldPosition.X, 0.1)
}

func TestCameraFollowSaveLoad(t *testing.T) {
	deps := newDeps(nil)
	src := NewCameraFollowSystem(deps)
	src.Offset = common.V(1, 2)
	src.Smooth = false

	data, err := src.Save()
	require.NoError(t, err)

	dst := NewCameraFollowSystem(deps)
	require.NoError(t, dst.Load(data))
	assert.Equal(t, common.V(1, 2), dst.Offset)
	assert.False(t, dst.Smooth)
}

func TestTTLSystemRemovesEntity(t *testing.T) {
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.Zero())
	e.AddSystem(NewTTLSystem(2))
	w.Reconcile()

	tick(w)
	assert.Equal(t, 1, w.Len())
	assert.False(t, e.Removed())

	tick(w)
	assert.True(t, e.Removed())
	assert.Equal(t, 0, w.Len())
}

func TestTTLSystemSaveLoad(t *testing.T) {
	data, err := NewTTLSystem(30).Save()
	require.NoError(t, err)

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"TTL_SYSTEM","disabled":false,"ticks":30}`, string(raw))

	dst := NewTTLSystem(0)
	require.NoError(t, dst.Load(data))
	assert.Equal(t, 30.0, dst.Ticks)
}

func TestCameraFollowScrolls(t *testing.T) {
	deps := newDeps(nil)
	w := ecs.NewWorld(nil)
	e := ecs.NewEntity(w, common.V(3, 4))
	follow := NewCameraFollowSystem(deps)
	follow.ScrollSeconds = 0.5
	follow.Ease = "inOutQuad"
	e.AddSystem(follow)
	w.Reconcile()

	tick(w)
	assert.True(t, deps.Camera.HasTarget())
	_, panning := deps.Camera.Target()
	assert.False(t, panning)

	deps.Camera.Update(15)
	mid := deps.Camera.WorldPosition
	assert.Greater(t, mid.X, 0.0)
	assert.Less(t, mid.X, 3.0)

	// A scroll in flight is not restarted.
	e.Position = common.V(10, 10)
	tick(w)
	for range 40 {
		deps.Camera.Update(1)
	}
	assert.InDelta(t, 3, deps.Camera.WorldPosition.X, 1e-4)
	assert.InDelta(t, 4, deps.Camera.WorldPosition.Y, 1e-4)
	assert.False(t, deps.Camera.HasTarget())

	tick(w)
	assert.True(t, deps.Camera.HasTarget())
}

func TestCameraFollowUnknownEaseLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	deps := newDeps(zap.New(core))

	data, err := ecs.EncodeSystemData(CameraFollowSystemKind, false, map[string]any{"scrollSeconds": 1, "ease": "bouncy"})
	require.NoError(t, err)

	follow := NewCameraFollowSystem(deps)
	require.NoError(t, follow.Load(data))
	assert.Equal(t, float32(1), follow.ScrollSeconds)
	assert.Equal(t, 1, logs.FilterMessage("unknown ease, scrolling linearly").Len())
}
