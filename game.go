package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/scaffold/config"
	"github.com/milk9111/scaffold/ecs"
	"github.com/milk9111/scaffold/ecs/system"
	"github.com/milk9111/scaffold/game"
	"github.com/milk9111/scaffold/levels"
	"github.com/milk9111/scaffold/logging"
	"github.com/milk9111/scaffold/prefabs"
)

// frameDelta is one tick at the nominal rate; the loop scales it by game
// speed.
const frameDelta = 1.0

var debugFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// Host adapts game.Game to ebiten.
type Host struct {
	game       *game.Game
	factory    *system.Factory
	watcher    *config.Watcher
	configPath string
	level      string
	log        *zap.Logger

	logLevel zap.AtomicLevel

	paused    bool
	wasPaused bool
	quit      bool
	pauseUI   *ebitenui.UI
}

func NewHost(g *game.Game, factory *system.Factory, watcher *config.Watcher, configPath, level string, logLevel zap.AtomicLevel, log *zap.Logger) *Host {
	h := &Host{
		game:       g,
		factory:    factory,
		watcher:    watcher,
		configPath: configPath,
		level:      level,
		logLevel:   logLevel,
		log:        log,
	}
	h.pauseUI = NewPauseUI(h)
	return h
}

func (h *Host) Update() error {
	if h.quit {
		return ebiten.Termination
	}
	h.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		h.paused = !h.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		h.toggleDebug()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		h.saveLevel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		h.reloadLevel()
	}

	if h.paused {
		h.wasPaused = true
		h.pauseUI.Update()
		return nil
	}
	if h.wasPaused {
		resyncInput(h.game.Input)
		h.wasPaused = false
	}

	pollInput(h.game.Input)
	return h.game.Tick(frameDelta)
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(rgba(h.game.Opts.BackgroundColour, 1))
	drawStage(screen, h.game.Stage)
	drawDebug(screen, h.game.Graphics)

	if h.game.Opts.EnableDebug {
		h.drawStats(screen)
	}
	if h.paused {
		h.pauseUI.Draw(screen)
	}
}

func (h *Host) drawStats(screen *ebiten.Image) {
	cam := h.game.Camera
	name := ""
	if s := h.game.Scenes.Current(); s != nil {
		name = s.Name()
	}
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nScene: %s  Entities: %d  Sprites: %d\nCamera: %s  Scale: %.2f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), name, len(h.game.Entities()), h.game.Stage.Len(), cam.WorldPosition, cam.Scale())

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 16
	ebtext.Draw(screen, msg, debugFace, op)
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.game.Opts.WindowWidth, h.game.Opts.WindowHeight
}

func (h *Host) toggleDebug() {
	h.game.Opts.EnableDebug = !h.game.Opts.EnableDebug
	h.log.Info("debug toggled", zap.Bool("enabled", h.game.Opts.EnableDebug))
}

func (h *Host) currentLevel() (*LevelScene, bool) {
	s, ok := h.game.Scenes.Current().(*LevelScene)
	return s, ok
}

func (h *Host) saveLevel() {
	s, ok := h.currentLevel()
	if !ok {
		return
	}
	lvl, err := s.Snapshot()
	if err != nil {
		h.log.Error("failed to snapshot level", zap.Error(err))
		return
	}
	path := levels.Path(s.file)
	if h.watcher != nil {
		h.watcher.Ignore(path)
	}
	if err := levels.SaveLevel(path, lvl); err != nil {
		h.log.Error("failed to save level", zap.String("path", path), zap.Error(err))
		return
	}
	h.log.Info("level saved", zap.String("path", path), zap.Int("entities", len(lvl.Entities)))
}

func (h *Host) reloadLevel() {
	h.game.Scenes.LoadScene(NewLevelScene(h.game, h.factory, h.level, h.log.Named("level")))
}

// drainWatcher applies file edits without blocking the frame.
func (h *Host) drainWatcher() {
	if h.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-h.watcher.Events:
			if !ok {
				h.watcher = nil
				return
			}
			h.applyChange(change)
		case err, ok := <-h.watcher.Errors:
			if ok {
				h.log.Warn("watcher error", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (h *Host) applyChange(change config.Change) {
	switch change.Kind {
	case config.ConfigChange:
		cfg, err := config.Load(h.configPath)
		if err != nil {
			h.log.Error("failed to reload config", zap.Error(err))
			return
		}
		h.game.Opts.EnableDebug = cfg.Debug
		h.game.Opts.BackgroundColour = uint32(cfg.Window.Background)
		h.game.SetGameSpeed(cfg.GameSpeed)
		h.game.Camera.SetScale(cfg.CameraScale)
		if logging.Reload(h.logLevel, cfg.Log) {
			h.log.Info("log level changed", zap.String("level", cfg.Log.Level))
		}
		h.log.Info("config reloaded", zap.String("path", change.Path))
	case config.ScriptChange:
		h.reloadScripts(prefabs.ScriptName(change.Path))
	case config.DataChange:
		h.log.Info("data changed, reloading level", zap.String("path", change.Path))
		h.reloadLevel()
	}
}

func (h *Host) reloadScripts(name string) {
	reloaded := 0
	for _, e := range h.game.Entities() {
		sys, ok := ecs.SystemAs[*system.ScriptSystem](e, system.ScriptSystemKind)
		if !ok || prefabs.ScriptName(sys.Name()) != name {
			continue
		}
		if err := sys.Reload(); err != nil {
			h.log.Error("failed to reload script", zap.String("script", name), zap.Error(err))
			return
		}
		reloaded++
	}
	h.log.Info("script reloaded", zap.String("script", name), zap.Int("systems", reloaded))
}
