package sensor

import (
	"context"
	"os"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/logger"
	"github.com/shirou/gopsutil/v3/host"
)

func NewOSSensorsWith(read func(ctx context.Context) ([]host.TemperatureStat, error)) *OSSensors {
	return &OSSensors{read: read}
}

func NewUsageWith(percent func(context.Context, time.Duration, bool) ([]float64, error), log logger.Logger) *Usage {
	u := NewUsage(0, log)
	u.percent = percent
	return u
}

func (h *HardwareMonitor) SetStat(stat func(string) (os.FileInfo, error)) {
	h.stat = stat
}

var RoundHalfEven = roundHalfEven
