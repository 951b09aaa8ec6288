// Package logging builds the application logger.
package logging

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/llehouerou/subtimeline/internal/config"
)

const debugLogFile = "debug.log"

// New returns a logger writing to cfg.File. The terminal belongs to the UI,
// so without a file the logger is a no-op unless debug is set, in which case
// it writes to $XDG_STATE_HOME/subtimeline/debug.log.
func New(cfg config.LogConfig, debug bool) (*zap.Logger, error) {
	path := cfg.File
	if path == "" {
		if !debug {
			return zap.NewNop(), nil
		}
		p, err := xdg.StateFile(filepath.Join("subtimeline", debugLogFile))
		if err != nil {
			return nil, fmt.Errorf("resolve debug log path: %w", err)
		}
		path = p
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if debug {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.Sampling = nil

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return logger, nil
}
