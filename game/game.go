// Package game owns the per-tick update loop.
package game

import (
	"errors"

	"go.uber.org/zap"

	"github.com/milk9111/scaffold/ecs"
	"github.com/milk9111/scaffold/ecs/render"
	"github.com/milk9111/scaffold/event"
	"github.com/milk9111/scaffold/graphics"
	"github.com/milk9111/scaffold/obj"
	"github.com/milk9111/scaffold/scene"
)

// ErrNotLoaded is returned by operations that need Load to have finished.
var ErrNotLoaded = errors.New("game: not loaded")

// Opts configures the loop.
type Opts struct {
	WindowWidth      int
	WindowHeight     int
	BackgroundColour uint32
	EnableDebug      bool
	WorldScale       float64
	GameSpeed        float64
	CameraScale      float64
	Inputs           []obj.InputDef
}

// DefaultOpts returns an 800x600 window at normal speed.
func DefaultOpts() Opts {
	return Opts{
		WindowWidth:      800,
		WindowHeight:     600,
		BackgroundColour: 0x000000,
		WorldScale:       obj.DefaultWorldScale,
		GameSpeed:        1,
		CameraScale:      1,
		Inputs:           obj.DefaultInputs(),
	}
}

// Loader preloads assets, reporting progress in [0, 100].
type Loader interface {
	Load(progress func(float64)) error
}

// TickEvent is the payload of the phase events.
type TickEvent struct {
	Delta float64
	Game  *Game
}

// SceneFunc builds the first scene once the camera exists.
type SceneFunc func(g *Game) scene.Scene

// Game wires the world, camera, input, scenes and debug overlay into the
// three-phase tick.
type Game struct {
	Opts Opts

	Mediator *event.Mediator
	Assets   Loader
	Input    *obj.Input
	World    *ecs.World
	Stage    *render.Stage
	Graphics *graphics.Graphics
	Scenes   *scene.Manager
	Camera   *obj.Camera

	loaded bool
	log    *zap.Logger
}

// New builds a game from services constructed earlier in dependency order.
// The camera and first scene are created by Load.
func New(opts Opts, mediator *event.Mediator, assets Loader, input *obj.Input, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.GameSpeed <= 0 {
		opts.GameSpeed = 1
	}
	if mediator == nil {
		mediator = event.NewMediator(log.Named("event"))
	}
	if input == nil {
		input = obj.NewInput(log.Named("input"))
	}
	return &Game{
		Opts:     opts,
		Mediator: mediator,
		Assets:   assets,
		Input:    input,
		World:    ecs.NewWorld(log.Named("ecs")),
		Stage:    render.NewStage(),
		Graphics: graphics.New(),
		Scenes:   scene.NewManager(log.Named("scene")),
		log:      log,
	}
}

// Loaded reports whether Load has completed.
func (g *Game) Loaded() bool {
	return g.loaded
}

// Load preloads assets then sets up the camera, inputs, debug overlay and the
// scene built by first. Assets that fail to load are logged; the game still
// starts and draws placeholders for them.
func (g *Game) Load(progress func(float64), first SceneFunc) {
	g.Mediator.Fire(event.LoadStart, nil)
	if g.Assets != nil {
		if err := g.Assets.Load(progress); err != nil {
			g.log.Warn("asset preload incomplete", zap.Error(err))
		}
	}
	g.Mediator.Fire(event.LoadComplete, nil)

	g.setup(first)
}

func (g *Game) setup(first SceneFunc) {
	for _, def := range g.Opts.Inputs {
		g.Input.RegisterInput(def)
	}

	g.Camera = obj.NewCamera(g.Opts.WindowWidth, g.Opts.WindowHeight, g.Opts.CameraScale, g.Opts.WorldScale, g.log.Named("camera"))
	g.Camera.GameSpeed = g.Opts.GameSpeed

	g.Graphics.Init(g.Camera)

	g.loaded = true
	if first != nil {
		if s := first(g); s != nil {
			g.Scenes.LoadScene(s)
		}
	}

	g.Mediator.Fire(event.SetupComplete, nil)
}

// SetGameSpeed changes the global delta multiplier.
func (g *Game) SetGameSpeed(speed float64) {
	if speed <= 0 {
		g.log.Warn("game speed must be positive", zap.Float64("speed", speed))
		return
	}
	g.Opts.GameSpeed = speed
	if g.Camera != nil {
		g.Camera.GameSpeed = speed
	}
}

// Tick runs one frame: the three phases, each followed by its event, then
// input reset and entity reconciliation. Entities added or removed during
// the tick take effect at the end of it.
func (g *Game) Tick(delta float64) error {
	if !g.loaded {
		return ErrNotLoaded
	}
	delta *= g.Opts.GameSpeed

	g.preUpdate(delta)
	g.Mediator.Fire(event.PreUpdate, TickEvent{Delta: delta, Game: g})

	g.update(delta)
	g.Mediator.Fire(event.Update, TickEvent{Delta: delta, Game: g})

	g.postUpdate(delta)
	g.Mediator.Fire(event.PostUpdate, TickEvent{Delta: delta, Game: g})

	g.Input.ClearKeys()
	g.World.Reconcile()
	return nil
}

func (g *Game) preUpdate(delta float64) {
	g.Scenes.PreUpdate(delta)
	g.Graphics.PreUpdate(g.Opts.EnableDebug)
	g.World.Run(ecs.PhasePreUpdate, delta)
}

func (g *Game) update(delta float64) {
	g.Scenes.Update(delta)
	g.World.Run(ecs.PhaseUpdate, delta)
}

func (g *Game) postUpdate(delta float64) {
	g.Scenes.PostUpdate(delta)
	g.Graphics.PostUpdate()
	g.World.Run(ecs.PhasePostUpdate, delta)

	// The camera must move after every entity has synced.
	g.Camera.Update(delta)
}

// Entities returns the live entities in insertion order.
func (g *Game) Entities() []*ecs.Entity {
	return g.World.Entities()
}

// RegisterEntity queues e for the next reconciliation.
func (g *Game) RegisterEntity(e *ecs.Entity) *ecs.Entity {
	return g.World.Register(e)
}

// UnregisterEntity queues the entity with id for deletion.
func (g *Game) UnregisterEntity(id string) {
	g.World.Unregister(id)
}

// ClearEntities removes every entity immediately.
func (g *Game) ClearEntities() {
	g.World.Clear()
}
