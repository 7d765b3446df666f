package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogCommand(logger, "ln", []string{"-s", "a", "b"}, "/tmp")

	output := buf.String()
	assert.Contains(t, output, `"command":"ln"`)
	assert.Contains(t, output, `"args":["-s","a","b"]`)
	assert.Contains(t, output, `"workingDir":"/tmp"`)
	assert.Contains(t, output, "Executing command")
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("link")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"link"`)
}

func TestSetupWriterLevels(t *testing.T) {
	testCases := []struct {
		Verbosity int
		Level     zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{5, zerolog.TraceLevel},
	}

	for _, testCase := range testCases {
		var buf bytes.Buffer
		SetupWriter(&buf, testCase.Verbosity)
		assert.Equal(t, testCase.Level, zerolog.GlobalLevel())
	}

	var buf bytes.Buffer
	SetupWriter(&buf, 0)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
