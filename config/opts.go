package config

import (
	"github.com/milk9111/scaffold/game"
	"github.com/milk9111/scaffold/obj"
)

// Opts converts the settings into loop options.
func (c Config) Opts() game.Opts {
	return game.Opts{
		WindowWidth:      c.Window.Width,
		WindowHeight:     c.Window.Height,
		BackgroundColour: uint32(c.Window.Background),
		EnableDebug:      c.Debug,
		WorldScale:       c.WorldScale,
		GameSpeed:        c.GameSpeed,
		CameraScale:      c.CameraScale,
		Inputs:           obj.WithBindings(obj.DefaultInputs(), c.Inputs),
	}
}
