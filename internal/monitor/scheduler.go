// Package monitor drives the display: the periodic monitoring loop and the
// interactive self-test.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/frame"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
	"codeberg.org/mutker/deepcoolctl/internal/sensor"
)

// DefaultPause separates the two frames of a non-alternating cycle.
const DefaultPause = 100 * time.Millisecond

// State is the scheduler lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Scheduler runs one monitoring loop. It is not reusable: once Run has
// returned the state stays Stopped.
type Scheduler struct {
	policy   Policy
	tx       Transmitter
	readings Readings
	logger   logger.Logger
	sleep    SleepFunc
	pause    time.Duration

	mu    sync.Mutex
	state State
	cycle uint64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

func WithLogger(log logger.Logger) Option {
	return func(s *Scheduler) {
		s.logger = log
	}
}

// WithSleep replaces the cancellable sleep used for pacing.
func WithSleep(sleep SleepFunc) Option {
	return func(s *Scheduler) {
		s.sleep = sleep
	}
}

// WithPause overrides the intra-cycle pause.
func WithPause(d time.Duration) Option {
	return func(s *Scheduler) {
		s.pause = d
	}
}

func NewScheduler(policy Policy, tx Transmitter, readings Readings, opts ...Option) *Scheduler {
	s := &Scheduler{
		policy:   policy,
		tx:       tx,
		readings: readings,
		logger:   logger.Nop(),
		sleep:    Sleep,
		pause:    DefaultPause,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cycle returns the number of completed cycles.
func (s *Scheduler) Cycle() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle
}

// Run loops until ctx is cancelled, which is the normal way to stop and
// yields a nil error. Transmission failures are logged and do not stop the
// loop.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.policy.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return errors.New().WithMessage(ErrAlreadyStarted, "scheduler already started")
	}
	s.state = StateRunning
	s.mu.Unlock()

	defer s.setState(StateStopped)

	s.logger.Info().
		Bool("temperature", s.policy.ShowTemperature).
		Bool("usage", s.policy.ShowUsage).
		Bool("alternating", s.policy.Alternating).
		Dur("interval", s.policy.Interval).
		Msg("Monitoring started")

	for {
		if ctx.Err() != nil {
			break
		}
		if err := s.runCycle(ctx); err != nil {
			break
		}
		if err := s.sleep(ctx, s.policy.Interval); err != nil {
			break
		}
	}

	s.logger.Info().Uint64("cycles", s.Cycle()).Msg("Monitoring stopped")

	return nil
}

// runCycle returns an error only when ctx was cancelled mid-cycle.
func (s *Scheduler) runCycle(ctx context.Context) error {
	cycle := s.Cycle()

	temp := s.readings.Temperature(ctx)
	usage := s.readings.Utilization(ctx)

	s.logger.Debug().
		Uint64("cycle", cycle).
		Int("temperature", temp.Value).
		Str("source", temp.Source.String()).
		Int("usage", usage.Value).
		Msg("Cycle readings")

	switch {
	case s.policy.both() && s.policy.Alternating:
		if cycle%2 == 0 {
			s.transmit(cycle, temp, frame.ModeTemperature)
		} else {
			s.transmit(cycle, usage, frame.ModeUtilization)
		}
	case s.policy.both():
		s.transmit(cycle, temp, frame.ModeTemperature)
		if err := s.sleep(ctx, s.pause); err != nil {
			return err
		}
		s.transmit(cycle, usage, frame.ModeUtilization)
	case s.policy.ShowTemperature:
		s.transmit(cycle, temp, frame.ModeTemperature)
	default:
		s.transmit(cycle, usage, frame.ModeUtilization)
	}

	s.mu.Lock()
	s.cycle++
	s.mu.Unlock()

	return nil
}

func (s *Scheduler) transmit(cycle uint64, r sensor.Reading, mode frame.DisplayMode) {
	if err := s.tx.Send(r.Value, mode); err != nil {
		if coded, ok := err.(errors.Error); ok {
			s.logger.ErrorWithCode(coded).Uint64("cycle", cycle).Str("mode", mode.String()).Msg("Failed to update display")
		} else {
			s.logger.Error().Err(err).Uint64("cycle", cycle).Str("mode", mode.String()).Msg("Failed to update display")
		}
		return
	}

	s.logger.Info().
		Uint64("cycle", cycle).
		Str("mode", mode.String()).
		Int("value", r.Value).
		Msg("Display updated")
}

func (s *Scheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
