// Package logging builds the zap logger from the log section of the config.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/milk9111/scaffold/config"
)

// ParseLevel falls back to info for unknown names.
func ParseLevel(name string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// Config returns the zap config for cfg. Console output is coloured and
// short; json output uses the production encoder.
func Config(cfg config.Log) zap.Config {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Development = cfg.Development
	zapCfg.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	return zapCfg
}

// New builds the logger. The returned level can be changed at runtime when
// the config is reloaded.
func New(cfg config.Log) (*zap.Logger, zap.AtomicLevel, error) {
	zapCfg := Config(cfg)
	log, err := zapCfg.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	return log, zapCfg.Level, nil
}

// Reload moves level to the one named in cfg. It reports whether the level
// changed.
func Reload(level zap.AtomicLevel, cfg config.Log) bool {
	next := ParseLevel(cfg.Level)
	if level.Level() == next {
		return false
	}
	level.SetLevel(next)
	return true
}
