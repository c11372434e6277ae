// Package logx bootstraps the module's structured logger.
package logx

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Bootstrap opens (creating if needed) manipulate.log under dir and
// installs a slog.TextHandler writing to it as the process-wide default
// logger, returning the handle so callers can close it on shutdown.
func Bootstrap(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("logx: creating log dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "manipulate.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("logx: opening log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{AddSource: true}))
	slog.SetDefault(logger)
	return f, nil
}

// Err renders an error (with %+v, preserving github.com/pkg/errors stack
// traces when present) as a structured log attribute.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", fmt.Sprintf("%+v", err))
}
