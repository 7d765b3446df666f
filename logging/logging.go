// Package logging configures the zerolog logger shared by lnwrap.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger based on verbosity level. Output always
// goes to stderr so that the linked programs own stdout.
func Setup(verbosity int) {
	SetupWriter(os.Stderr, verbosity)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}

	logger := zerolog.New(console).With().Timestamp()
	if verbosity >= 2 {
		logger = logger.Caller()
	}

	log.Logger = logger.Logger()
	log.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
}

// GetLogger returns a logger tagged with the given component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogCommand logs a command execution with its arguments
func LogCommand(logger zerolog.Logger, program string, args []string, dir string) {
	logger.Debug().
		Str("command", program).
		Strs("args", args).
		Str("workingDir", dir).
		Msg("Executing command")
}
