package logger_test

import (
	"bytes"
	"testing"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, logger.InfoLevel, logger.ParseLevel("info"))
	assert.Equal(t, logger.WarnLevel, logger.ParseLevel("warning"))
	assert.Equal(t, logger.WarnLevel, logger.ParseLevel("WARN"))
	assert.Equal(t, logger.ErrorLevel, logger.ParseLevel("error"))
	assert.Equal(t, logger.InfoLevel, logger.ParseLevel("bogus"))
}

func TestComponentLogger(t *testing.T) {
	logger.SetLogLevel(logger.DebugLevel)
	defer logger.SetLogLevel(logger.InfoLevel)

	var buf bytes.Buffer
	log := logger.New(&buf).With("session")
	log.Info().Int("cycle", 3).Msg("Frame sent")

	out := buf.String()
	assert.Contains(t, out, "Frame sent")
	assert.Contains(t, out, "component=session")
	assert.Contains(t, out, "cycle=3")
}

func TestErrorWithCode(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf)
	log.ErrorWithCode(errors.New().New(errors.ErrAlreadyRunning)).Msg("Startup failed")

	assert.Contains(t, buf.String(), "error_code=already_running")
}

func TestNopDiscards(t *testing.T) {
	log := logger.Nop().With("x")
	log.Error().Msg("nothing")
	log.Debug().Msg("nothing")
}
