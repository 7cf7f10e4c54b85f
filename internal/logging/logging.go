// Package logging configures zerolog for the player. The terminal belongs to
// the front-end, so logs only ever go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Setup returns a logger writing JSON lines to w. A nil w discards
// everything. debug lowers the level to Debug.
func Setup(w io.Writer, debug bool) zerolog.Logger {
	if w == nil {
		return zerolog.Nop()
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// Open creates path and its parent directory and opens it for appending.
func Open(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("Open: failed to create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("Open: failed to open log file: %w", err)
	}

	return f, nil
}
