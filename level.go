package main

import (
	"go.uber.org/zap"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/ecs"
	"github.com/milk9111/scaffold/game"
	"github.com/milk9111/scaffold/graphics"
	"github.com/milk9111/scaffold/levels"
	"github.com/milk9111/scaffold/obj"
	"github.com/milk9111/scaffold/prefabs"
	"github.com/milk9111/scaffold/scene"
)

// LevelScene populates the world from a level file and tears it down on
// Stop.
type LevelScene struct {
	scene.Base

	file    string
	game    *game.Game
	factory ecs.SystemFactory
	control *obj.CameraControl
	log     *zap.Logger
}

func NewLevelScene(g *game.Game, factory ecs.SystemFactory, file string, log *zap.Logger) *LevelScene {
	return &LevelScene{
		Base:    scene.Base{SceneName: file},
		file:    file,
		game:    g,
		factory: factory,
		control: obj.NewCameraControl(g.Camera, g.Input),
		log:     log,
	}
}

func (s *LevelScene) Start() {
	s.control.Attach(s.game.Mediator)

	lvl, err := levels.LoadLevel(s.file)
	if err != nil {
		s.log.Error("failed to load level", zap.String("level", s.file), zap.Error(err))
		return
	}
	if lvl.Name != "" {
		s.SceneName = lvl.Name
	}
	s.game.Camera.SnapTo(common.Deserialize(lvl.Camera))

	for _, data := range lvl.Entities {
		ecs.LoadEntity(s.game.World, data, s.factory, s.log)
	}
	for _, p := range lvl.Prefabs {
		if _, err := prefabs.Instantiate(s.game.World, p.Prefab, common.Deserialize(p.Position), s.factory, s.log); err != nil {
			s.log.Warn("failed to place prefab", zap.String("prefab", p.Prefab), zap.Error(err))
		}
	}
	s.log.Info("level loaded",
		zap.String("level", s.SceneName),
		zap.Int("entities", len(lvl.Entities)),
		zap.Int("prefabs", len(lvl.Prefabs)))
}

// PostUpdate marks every entity on the debug overlay.
func (s *LevelScene) PostUpdate(float64) {
	gfx := s.game.Graphics
	if !gfx.Visible() {
		return
	}
	gfx.SetLineStyle(1, graphics.White)
	unit := s.game.Camera.WorldScale
	gfx.DrawX(common.Zero(), unit/2)
	for _, e := range s.game.Entities() {
		gfx.DrawX(e.Position.Mul(unit), unit/4)
	}
}

func (s *LevelScene) Stop() {
	s.control.Detach()
	s.game.ClearEntities()
	s.game.Stage.Clear()
}

// Snapshot captures the saveable entities and camera as a level. Prefab
// placements are not kept since their entities are saved directly.
func (s *LevelScene) Snapshot() (*levels.Level, error) {
	entities, err := s.game.World.Save()
	if err != nil {
		return nil, err
	}
	return &levels.Level{
		Name:     s.SceneName,
		Camera:   s.game.Camera.WorldPosition.Serialize(),
		Entities: entities,
	}, nil
}
