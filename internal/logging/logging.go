// Package logging builds the zap logger. The terminal belongs to the UI, so
// output goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the log file under the XDG state directory.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "newsai", "newsai.log")
}

// New returns a JSON file logger writing to path, at debug level when
// debug is set and info otherwise.
func New(path string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// NewOrNop is New, falling back to a no-op logger when the file can't be
// opened. Logging never blocks startup.
func NewOrNop(path string, debug bool) *zap.Logger {
	logger, err := New(path, debug)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
