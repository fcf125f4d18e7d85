package sensor

import (
	"context"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
	"github.com/shirou/gopsutil/v3/cpu"
)

// DefaultUsageSample is the busy-percentage sampling window.
const DefaultUsageSample = 100 * time.Millisecond

type percentFunc func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)

// Usage samples overall CPU utilization.
type Usage struct {
	sample  time.Duration
	percent percentFunc
	logger  logger.Logger
}

// NewUsage returns a sampler using the given window.
func NewUsage(sample time.Duration, log logger.Logger) *Usage {
	if sample <= 0 {
		sample = DefaultUsageSample
	}

	return &Usage{sample: sample, percent: cpu.PercentWithContext, logger: log}
}

// Utilization never fails; a failed sample reads 0.
func (u *Usage) Utilization(ctx context.Context) Reading {
	pct, err := u.percent(ctx, u.sample, false)
	if err == nil && len(pct) == 0 {
		err = errors.New().New(ErrUsageFailed)
	}
	if err != nil {
		u.logger.Debug().Err(err).Msg("CPU usage unavailable, using 0")
		return Reading{Value: 0, Source: SourceUnavailable}
	}

	return Reading{Value: roundHalfEven(pct[0]), Source: SourceOSSensors}
}
