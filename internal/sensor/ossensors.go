package sensor

import (
	"context"
	"strings"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"github.com/shirou/gopsutil/v3/host"
)

// priorityKeywords mark chips that report the CPU itself.
var priorityKeywords = []string{"k10temp", "coretemp", "zenpower", "cpu", "processor", "package"}

// OSSensors reads temperatures the operating system exposes (hwmon on Linux,
// SMC on macOS, ACPI thermal zones on Windows).
type OSSensors struct {
	read func(ctx context.Context) ([]host.TemperatureStat, error)
}

// NewOSSensors returns the gopsutil-backed source.
func NewOSSensors() *OSSensors {
	return &OSSensors{read: host.SensorsTemperaturesWithContext}
}

func (*OSSensors) Kind() Source {
	return SourceOSSensors
}

func (o *OSSensors) Temperature(ctx context.Context) (int, error) {
	errFactory := errors.New()

	stats, err := o.read(ctx)
	if len(stats) == 0 {
		if err != nil {
			return 0, errFactory.Wrap(ErrSensorUnavailable, err)
		}
		return 0, errFactory.New(ErrNoSensors)
	}

	// gopsutil reports unreadable sensors as warnings next to the readable
	// ones; those readings are still usable.
	temp, ok := PickTemperature(stats)
	if !ok {
		return 0, errFactory.New(ErrNoSensors)
	}

	return roundHalfEven(temp), nil
}

type sensorGroup struct {
	name     string
	readings []float64
}

// groupStats groups readings by chip, the sensor key up to the first
// underscore, keeping first-seen order.
func groupStats(stats []host.TemperatureStat) []sensorGroup {
	var groups []sensorGroup
	index := make(map[string]int)

	for _, st := range stats {
		name := strings.ToLower(st.SensorKey)
		if i := strings.IndexByte(name, '_'); i >= 0 {
			name = name[:i]
		}

		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, sensorGroup{name: name})
		}
		groups[i].readings = append(groups[i].readings, st.Temperature)
	}

	return groups
}

// PickTemperature returns the first reading of the first CPU-looking group,
// or failing that the first reading of any group.
func PickTemperature(stats []host.TemperatureStat) (float64, bool) {
	groups := groupStats(stats)

	for _, g := range groups {
		if hasPriorityKeyword(g.name) && len(g.readings) > 0 {
			return g.readings[0], true
		}
	}

	for _, g := range groups {
		if len(g.readings) > 0 {
			return g.readings[0], true
		}
	}

	return 0, false
}

func hasPriorityKeyword(name string) bool {
	for _, kw := range priorityKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}

	return false
}
