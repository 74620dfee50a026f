// Package system holds the concrete entity systems and the factory that
// rebuilds them from saved data.
package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/scaffold/ecs"
	"github.com/milk9111/scaffold/ecs/render"
	"github.com/milk9111/scaffold/obj"
)

// Kinds, persisted as the system id.
const (
	RenderSystemKind         = "RENDER_SYSTEM"
	AnimatedRenderSystemKind = "ANIMATED_RENDER_SYSTEM"
	InputSystemKind          = "INPUT_SYSTEM"
	ScriptSystemKind         = "SCRIPT_SYSTEM"
	CameraFollowSystemKind   = "CAMERA_FOLLOW_SYSTEM"
	TTLSystemKind            = "TTL_SYSTEM"
)

// TextureSource resolves texture keys. Missing keys return nil.
type TextureSource interface {
	Texture(key string) render.Texture
}

// ScriptSource resolves script names to source.
type ScriptSource interface {
	Script(name string) ([]byte, error)
}

// DataSource decodes loaded data assets.
type DataSource interface {
	JSON(key string, v any) error
}

// Deps are the engine services systems reach for.
type Deps struct {
	Camera   *obj.Camera
	Stage    *render.Stage
	Textures TextureSource
	Data     DataSource
	Input    *obj.Input
	Scripts  ScriptSource
	Log      *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Factory builds empty systems by kind for LoadEntity.
type Factory struct {
	deps Deps
}

func NewFactory(deps Deps) *Factory {
	return &Factory{deps: deps}
}

// New implements ecs.SystemFactory.
func (f *Factory) New(kind string) (ecs.System, error) {
	switch kind {
	case RenderSystemKind:
		return NewRenderSystem(f.deps, ""), nil
	case AnimatedRenderSystemKind:
		return NewAnimatedRenderSystem(f.deps), nil
	case InputSystemKind:
		return NewInputSystem(f.deps), nil
	case ScriptSystemKind:
		return NewScriptSystem(f.deps, ""), nil
	case CameraFollowSystemKind:
		return NewCameraFollowSystem(f.deps), nil
	case TTLSystemKind:
		return NewTTLSystem(0), nil
	default:
		return nil, fmt.Errorf("%w: %q", ecs.ErrUnknownSystemKind, kind)
	}
}
