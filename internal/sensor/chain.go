package sensor

import (
	"context"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
)

// Chain tries temperature sources in order; the first success wins.
type Chain struct {
	sources []TemperatureSource
	logger  logger.Logger
}

// NewChain composes sources in priority order.
func NewChain(log logger.Logger, sources ...TemperatureSource) *Chain {
	return &Chain{sources: sources, logger: log}
}

// Temperature never fails: when every source does, it reads 0 from
// SourceUnavailable.
func (c *Chain) Temperature(ctx context.Context) Reading {
	for _, src := range c.sources {
		v, err := src.Temperature(ctx)
		if err == nil {
			return Reading{Value: v, Source: src.Kind()}
		}

		c.logger.Debug().
			Str("source", src.Kind().String()).
			Str("error_code", string(errors.CodeOf(err))).
			Err(err).
			Msg("Temperature source failed")
	}

	if len(c.sources) > 0 {
		c.logger.WarnWithCode(errors.New().New(ErrSensorUnavailable)).Msg("No temperature source answered, using 0")
	}

	return Reading{Value: 0, Source: SourceUnavailable}
}

// Sources returns the kinds in chain order.
func (c *Chain) Sources() []Source {
	kinds := make([]Source, 0, len(c.sources))
	for _, src := range c.sources {
		kinds = append(kinds, src.Kind())
	}

	return kinds
}
