// Package logging configures the application-wide slog logger. Diagnostics
// go to a log file under the data directory so they never pollute
// scriptable command output.
package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Init routes slog (and the standard log package) to
// <dataDir>/logs/timekeeper.log.
func Init(dataDir string) error {
	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "timekeeper.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return nil
}
