package monitor

import (
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
)

// Display names understood by ParsePolicy.
const (
	DisplayTemperature  = "temperature"
	DisplayUsage        = "usage"
	DisplayAlternating  = "alternating"
	DisplaySimultaneous = "simultaneous"
)

// Policy decides which metrics a run shows and how often.
type Policy struct {
	ShowTemperature bool
	ShowUsage       bool
	Interval        time.Duration
	// Alternating shows one metric per cycle when both are enabled.
	// Otherwise both are sent every cycle, temperature first.
	Alternating bool
}

// ParsePolicy maps a display name to a policy.
func ParsePolicy(display string, interval time.Duration) (Policy, error) {
	p := Policy{Interval: interval}

	switch display {
	case DisplayTemperature:
		p.ShowTemperature = true
	case DisplayUsage:
		p.ShowUsage = true
	case DisplayAlternating:
		p.ShowTemperature, p.ShowUsage, p.Alternating = true, true, true
	case DisplaySimultaneous:
		p.ShowTemperature, p.ShowUsage = true, true
	default:
		return Policy{}, errors.New().WithData(ErrUnknownDisplay, display)
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}

	return p, nil
}

// Validate rejects a policy that shows nothing or has no positive interval.
func (p Policy) Validate() error {
	errFactory := errors.New()

	if !p.ShowTemperature && !p.ShowUsage {
		return errFactory.New(ErrInvalidPolicy)
	}
	if p.Interval <= 0 {
		return errFactory.WithData(ErrInvalidInterval, p.Interval.String())
	}

	return nil
}

func (p Policy) both() bool {
	return p.ShowTemperature && p.ShowUsage
}
