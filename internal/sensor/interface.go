package sensor

import (
	"context"
	"fmt"
	"math"
)

// Source identifies where a reading came from.
type Source int

const (
	SourceUnavailable Source = iota
	SourceHardwareMonitor
	SourceOSSensors
)

func (s Source) String() string {
	switch s {
	case SourceUnavailable:
		return "unavailable"
	case SourceHardwareMonitor:
		return "hardware_monitor"
	case SourceOSSensors:
		return "os_sensors"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Reading is a single metric value.
type Reading struct {
	Value  int
	Source Source
}

// TemperatureSource is one backend of the temperature chain.
type TemperatureSource interface {
	Kind() Source
	Temperature(ctx context.Context) (int, error)
}

// roundHalfEven matches how the displayed values have always been rounded.
func roundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}
