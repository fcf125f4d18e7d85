package monitor

import (
	"context"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/frame"
	"codeberg.org/mutker/deepcoolctl/internal/sensor"
)

// Transmitter writes one display value to the connected device.
type Transmitter interface {
	Send(value int, mode frame.DisplayMode) error
}

// Readings supplies the metrics shown on the display. Both methods degrade
// to a zero reading instead of failing.
type Readings interface {
	Temperature(ctx context.Context) sensor.Reading
	Utilization(ctx context.Context) sensor.Reading
}

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
