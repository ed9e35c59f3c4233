// Package logging wires a shared zap logger into each subsystem.
//
// Unlike the package-global logger this replaces, a *Logger is
// constructed once (by the engine or the CLI) and passed down as a
// constructor argument, so no subsystem package reaches for ambient
// global state.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger bundles a base *zap.SugaredLogger plus the per-subsystem
// children the engine hands to each component.
type Logger struct {
	base *zap.SugaredLogger

	CPU    *zap.SugaredLogger
	PPU    *zap.SugaredLogger
	APU    *zap.SugaredLogger
	Mapper *zap.SugaredLogger
	Engine *zap.SugaredLogger
	Host   *zap.SugaredLogger
}

// New builds a Logger at the given level. Valid levels: "debug",
// "info", "warn", "error". An empty file path logs to stderr.
func New(level string, file string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
		// File output doesn't benefit from ANSI color codes.
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	base := zl.Sugar()
	return &Logger{
		base:   base,
		CPU:    base.Named("cpu"),
		PPU:    base.Named("ppu"),
		APU:    base.Named("apu"),
		Mapper: base.Named("mapper"),
		Engine: base.Named("engine"),
		Host:   base.Named("host"),
	}, nil
}

// NewNop returns a Logger that discards everything, for tests and
// headless automation that don't want log noise.
func NewNop() *Logger {
	base := zap.NewNop().Sugar()
	return &Logger{
		base:   base,
		CPU:    base,
		PPU:    base,
		APU:    base,
		Mapper: base,
		Engine: base,
		Host:   base,
	}
}

// Sync flushes any buffered log entries. Call before process exit.
func (l *Logger) Sync() error {
	return l.base.Sync()
}
