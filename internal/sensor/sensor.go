// Package sensor reads the CPU metrics shown on the cooler display.
//
// Temperature comes from an ordered chain of sources: Libre Hardware Monitor
// when it is installed, then whatever the operating system exposes. A source
// failure is never fatal; the chain moves on and finally reads 0.
// Utilization is a short busy-percentage sample.
package sensor

import (
	"context"
	"runtime"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/logger"
)

// Config selects and tunes the backends.
type Config struct {
	HardwareMonitor HardwareMonitorConfig
	UsageSample     time.Duration
}

// DefaultConfig enables the hardware monitor on Windows only.
func DefaultConfig() Config {
	return Config{
		HardwareMonitor: HardwareMonitorConfig{
			Enabled: runtime.GOOS == "windows",
			Library: DefaultLibraryPath,
			URL:     DefaultServiceURL,
			Timeout: DefaultTimeout,
		},
		UsageSample: DefaultUsageSample,
	}
}

// Sensors combines the temperature chain with the utilization sampler.
type Sensors struct {
	chain *Chain
	usage *Usage
}

// New combines an explicit chain and sampler.
func New(chain *Chain, usage *Usage) *Sensors {
	return &Sensors{chain: chain, usage: usage}
}

// NewDefault builds the platform chain described by cfg.
func NewDefault(cfg Config, log logger.Logger) *Sensors {
	var sources []TemperatureSource
	if cfg.HardwareMonitor.Enabled {
		sources = append(sources, NewHardwareMonitor(cfg.HardwareMonitor, log))
	}
	sources = append(sources, NewOSSensors())

	chain := NewChain(log, sources...)

	names := make([]string, 0, len(sources))
	for _, kind := range chain.Sources() {
		names = append(names, kind.String())
	}
	log.Debug().Strs("sources", names).Msg("Temperature chain ready")

	return New(chain, NewUsage(cfg.UsageSample, log))
}

func (s *Sensors) Temperature(ctx context.Context) Reading {
	return s.chain.Temperature(ctx)
}

func (s *Sensors) Utilization(ctx context.Context) Reading {
	return s.usage.Utilization(ctx)
}
