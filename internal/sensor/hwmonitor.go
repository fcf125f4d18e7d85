package sensor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
	"github.com/tidwall/gjson"
)

const (
	DefaultLibraryPath = "LibreHardwareMonitor/LibreHardwareMonitorLib.dll"
	DefaultServiceURL  = "http://localhost:8085/data.json"
	DefaultTimeout     = time.Second

	maxDocumentSize = 4 << 20
)

// HardwareMonitorConfig locates the Libre Hardware Monitor installation.
type HardwareMonitorConfig struct {
	Enabled bool
	// Library must exist for the source to be tried at all.
	Library string
	URL     string
	Timeout time.Duration
}

// HardwareMonitor reads the CPU package temperature from Libre Hardware
// Monitor's sensor tree and passes it through a spike guard it owns.
type HardwareMonitor struct {
	cfg    HardwareMonitorConfig
	client *http.Client
	guard  *SpikeGuard
	logger logger.Logger
	stat   func(string) (os.FileInfo, error)
}

// NewHardwareMonitor returns the source with a fresh spike guard.
func NewHardwareMonitor(cfg HardwareMonitorConfig, log logger.Logger) *HardwareMonitor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.URL == "" {
		cfg.URL = DefaultServiceURL
	}

	return &HardwareMonitor{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		guard:  NewSpikeGuard(log),
		logger: log,
		stat:   os.Stat,
	}
}

// WithGuard replaces the spike guard, e.g. to start from a known baseline.
func (h *HardwareMonitor) WithGuard(g *SpikeGuard) *HardwareMonitor {
	h.guard = g
	return h
}

func (*HardwareMonitor) Kind() Source {
	return SourceHardwareMonitor
}

func (h *HardwareMonitor) Temperature(ctx context.Context) (int, error) {
	errFactory := errors.New()

	if h.cfg.Library != "" {
		if _, err := h.stat(h.cfg.Library); err != nil {
			return 0, errFactory.Wrap(ErrLibraryNotFound, err)
		}
	}

	body, err := h.fetch(ctx)
	if err != nil {
		return 0, errFactory.Wrap(ErrServiceQuery, err)
	}

	temp, ok := PackageTemperature(body)
	if !ok {
		return 0, errFactory.New(ErrNoPackageSensor)
	}

	return h.guard.Filter(temp), nil
}

func (h *HardwareMonitor) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.cfg.URL, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}

// PackageTemperature finds the first CPU temperature sensor whose name
// contains "package" in a Libre Hardware Monitor data.json tree.
func PackageTemperature(doc []byte) (float64, bool) {
	if !gjson.ValidBytes(doc) {
		return 0, false
	}

	return findPackage(gjson.ParseBytes(doc), false)
}

func findPackage(node gjson.Result, underCPU bool) (float64, bool) {
	underCPU = underCPU || isCPUHardware(node)

	if isPackageSensor(node, underCPU) {
		if v, ok := parseCelsius(node.Get("Value").String()); ok {
			return v, true
		}
	}

	var (
		found float64
		ok    bool
	)
	node.Get("Children").ForEach(func(_, child gjson.Result) bool {
		found, ok = findPackage(child, underCPU)
		return !ok
	})

	return found, ok
}

func isCPUHardware(node gjson.Result) bool {
	if id := node.Get("HardwareId").String(); id != "" {
		return strings.Contains(strings.ToLower(id), "cpu")
	}

	return strings.Contains(strings.ToLower(node.Get("ImageURL").String()), "cpu")
}

func isPackageSensor(node gjson.Result, underCPU bool) bool {
	sensorID := strings.ToLower(node.Get("SensorId").String())
	if sensorID == "" {
		return false
	}

	isTemperature := strings.EqualFold(node.Get("Type").String(), "Temperature") ||
		strings.Contains(sensorID, "/temperature/")
	if !isTemperature {
		return false
	}
	if !underCPU && !strings.Contains(sensorID, "cpu") {
		return false
	}

	return strings.Contains(strings.ToLower(node.Get("Text").String()), "package")
}

// parseCelsius accepts values such as "45.0 °C" or "45,0 °C".
func parseCelsius(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r == '-' || r == '.' || r == ',' || (r >= '0' && r <= '9'))
	})
	if end >= 0 {
		s = s[:end]
	}
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
