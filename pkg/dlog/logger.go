// Package dlog builds the zap loggers used across dit.
package dlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LevelDebug logs object writes, ref updates and materialization.
	LevelDebug = "debug"

	// LevelInfo logs repository state changes.
	LevelInfo = "info"

	// LevelWarn logs skipped paths and other recoverable conditions.
	LevelWarn = "warn"

	// LevelError logs failures only.
	LevelError = "error"

	// LevelNone disables logging.
	LevelNone = "none"
)

// GetLogger returns a console logger writing to stderr at the given level.
func GetLogger(level string) (*zap.Logger, error) {
	if level == LevelNone || level == "" {
		return zap.NewNop(), nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Development = false
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}
