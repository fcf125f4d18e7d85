package sensor

import "codeberg.org/mutker/deepcoolctl/internal/logger"

// maxSpikeRatio is the largest accepted rise relative to the last reading.
const maxSpikeRatio = 0.10

// SpikeGuard discards readings that jump implausibly far above the last
// accepted one. Drops are never filtered.
type SpikeGuard struct {
	last   float64
	seeded bool
	logger logger.Logger
}

// NewSpikeGuard returns a guard without a baseline; its first reading is
// accepted as is.
func NewSpikeGuard(log logger.Logger) *SpikeGuard {
	return &SpikeGuard{logger: log}
}

// WithBaseline seeds the guard as if baseline had already been accepted.
func (g *SpikeGuard) WithBaseline(baseline float64) *SpikeGuard {
	g.last = baseline
	g.seeded = true

	return g
}

// Last returns the last accepted value, if any.
func (g *SpikeGuard) Last() (float64, bool) {
	return g.last, g.seeded
}

// Filter returns the rounded candidate when it is accepted, or the rounded
// last accepted value when the candidate is a spike.
func (g *SpikeGuard) Filter(candidate float64) int {
	if !g.seeded {
		g.last = candidate
		g.seeded = true
		return roundHalfEven(candidate)
	}

	if candidate-g.last > g.last*maxSpikeRatio {
		g.logger.Warn().
			Float64("candidate", candidate).
			Float64("last", g.last).
			Msg("Temperature spike ignored")
		return roundHalfEven(g.last)
	}

	g.last = candidate

	return roundHalfEven(candidate)
}
