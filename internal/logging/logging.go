// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure installs a console logger on stderr. Verbose enables debug output.
func Configure(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	ConfigureWriter(os.Stderr, level)
}

// ConfigureWriter installs a console logger writing to w at the given level.
func ConfigureWriter(w io.Writer, level zerolog.Level) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}).
		With().
		Timestamp().
		Logger().
		Level(level)
}

// Quiet raises the level to warn, keeping full-screen UIs free of info output.
func Quiet() {
	if log.Logger.GetLevel() < zerolog.WarnLevel {
		log.Logger = log.Logger.Level(zerolog.WarnLevel)
	}
}
