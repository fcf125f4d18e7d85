// Package validation keeps a ledger of display self-test verdicts, so that
// the digit-order setting of each model can be checked against real
// hardware over time.
package validation

import (
	"context"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
)

// NewRecorder opens the ledger, or returns a no-op recorder when disabled.
func NewRecorder(cfg Config, log logger.Logger) (Recorder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.New().Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("Validation ledger disabled, using no-op recorder")
		return Noop(), nil
	}

	return newRepository(cfg, log)
}

type noopRecorder struct{}

// Noop returns a recorder that stores nothing.
func Noop() Recorder {
	return noopRecorder{}
}

func (noopRecorder) Record(context.Context, *Result) error {
	return nil
}

func (noopRecorder) Summary(_ context.Context, model string) (Summary, error) {
	return Summary{Model: model}, nil
}

func (noopRecorder) Close() error {
	return nil
}
