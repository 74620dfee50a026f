package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/scaffold/assets"
	"github.com/milk9111/scaffold/config"
	"github.com/milk9111/scaffold/ecs/system"
	"github.com/milk9111/scaffold/event"
	"github.com/milk9111/scaffold/game"
	"github.com/milk9111/scaffold/levels"
	"github.com/milk9111/scaffold/logging"
	"github.com/milk9111/scaffold/obj"
	"github.com/milk9111/scaffold/prefabs"
	"github.com/milk9111/scaffold/scene"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to a game.yaml override")
	debug := flag.Bool("debug", false, "enable debug overlay")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	speed := flag.Float64("speed", 0, "game speed multiplier (overrides config)")
	watch := flag.Bool("watch", true, "reload config, prefabs, levels and scripts on change")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Debug = true
	}
	if *speed > 0 {
		cfg.GameSpeed = *speed
	}
	if *levelName != "" {
		cfg.StartLevel = *levelName
	}

	logger, logLevel, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	mediator := event.NewMediator(logger.Named("event"))
	input := obj.NewInput(logger.Named("input"))

	assetManager := assets.NewEmbeddedManager(decodeTexture, logger.Named("assets"))
	assetManager.SetOverrideDir("assets")
	assetManager.Preload(assets.Defaults()...)

	g := game.New(cfg.Opts(), mediator, assetManager, input, logger.Named("game"))

	var factory *system.Factory
	mediator.On(event.LoadComplete, func(any) {
		logger.Info("assets loaded")
	})
	g.Load(func(p float64) {
		logger.Debug("loading", zap.Float64("progress", p))
	}, func(g *game.Game) scene.Scene {
		factory = system.NewFactory(system.Deps{
			Camera:   g.Camera,
			Stage:    g.Stage,
			Textures: assetManager,
			Data:     assetManager,
			Input:    g.Input,
			Scripts:  prefabs.Scripts{},
			Log:      logger.Named("system"),
		})
		return NewLevelScene(g, factory, cfg.StartLevel, logger.Named("level"))
	})

	var watcher *config.Watcher
	if *watch {
		watcher = startWatcher(logger)
		if watcher != nil {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	host := NewHost(g, factory, watcher, *configPath, cfg.StartLevel, logLevel, logger.Named("host"))
	if err := ebiten.RunGame(host); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}

// startWatcher watches whichever data directories exist on disk. Running
// from outside the repo leaves nothing to watch.
func startWatcher(logger *zap.Logger) *config.Watcher {
	var dirs []string
	for _, dir := range []string{"config", prefabs.Dir, prefabs.Dir + "/scripts", levels.Dir} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := config.NewWatcher(logger.Named("watch"), dirs...)
	if err != nil {
		logger.Warn("file watching disabled", zap.Error(err))
		return nil
	}
	return w
}
