// Package testutil holds logging helpers shared by tests.
package testutil

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Quiet raises the global log level for the duration of a test so
// debug output from the generation pipeline stays out of test logs.
func Quiet(t *testing.T) {
	t.Helper()
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prev)
	})
}

// InitTestLogger switches the global logger to a console writer for
// readable output when debugging tests with LOG_LEVEL=debug.
func InitTestLogger() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := zerolog.ParseLevel(levelStr); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	}
}
