package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/config"
	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deepcoolctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// load isolates Load from any system-wide config file.
func load(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	return config.Load(args, config.WithDefaultPath(filepath.Join(t.TempDir(), "absent.toml")))
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
interval = 5
display = "alternating"
log_level = "debug"
catalog = "/etc/deepcoolctl/devices.yaml"
usage_sample = "250ms"

[hwmonitor]
enabled = true
library = "C:/LHM/LibreHardwareMonitorLib.dll"
url = "http://127.0.0.1:9000/data.json"
timeout = "3s"

[validation]
enabled = true
database = "/tmp/validation.db"
`)
	t.Setenv("DEEPCOOLCTL_CONFIG", path)

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Interval)
	assert.Equal(t, 5*time.Second, cfg.IntervalDuration())
	assert.Equal(t, config.DisplayAlternating, cfg.Display)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/etc/deepcoolctl/devices.yaml", cfg.Catalog)
	assert.Equal(t, 250*time.Millisecond, cfg.UsageSample)
	assert.True(t, cfg.HardwareMonitor.Enabled)
	assert.Equal(t, "C:/LHM/LibreHardwareMonitorLib.dll", cfg.HardwareMonitor.Library)
	assert.Equal(t, "http://127.0.0.1:9000/data.json", cfg.HardwareMonitor.URL)
	assert.Equal(t, 3*time.Second, cfg.HardwareMonitor.Timeout)
	assert.True(t, cfg.Validation.Enabled)
	assert.Equal(t, "/tmp/validation.db", cfg.Validation.Database)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DEEPCOOLCTL_CONFIG", "")

	cfg, err := load(t)
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, config.DefaultInterval, cfg.Interval)
	assert.Equal(t, 2*time.Second, cfg.IntervalDuration())
	assert.Equal(t, config.DisplayMenu, cfg.Display)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Catalog)
	assert.Equal(t, config.DefaultUsageSample, cfg.UsageSample)
	assert.Equal(t, runtime.GOOS == "windows", cfg.HardwareMonitor.Enabled)
	assert.Equal(t, config.DefaultLibraryPath, cfg.HardwareMonitor.Library)
	assert.Equal(t, config.DefaultServiceURL, cfg.HardwareMonitor.URL)
	assert.Equal(t, config.DefaultQueryTimeout, cfg.HardwareMonitor.Timeout)
	assert.False(t, cfg.Validation.Enabled)
	assert.Equal(t, config.DefaultDatabasePath, cfg.Validation.Database)
	assert.Empty(t, cfg.ConfigFile)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
interval = 5
display = "usage"
log_level = "error"
`)

	cfg, err := load(t, "--config", path, "--interval", "0.5", "--display", "simultaneous", "--log-level", "debug")
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Interval)
	assert.Equal(t, 500*time.Millisecond, cfg.IntervalDuration())
	assert.Equal(t, config.DisplaySimultaneous, cfg.Display)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
interval = 5

[validation]
database = "/from/file.db"
`)
	t.Setenv("DEEPCOOLCTL_CONFIG", path)
	t.Setenv("DEEPCOOLCTL_INTERVAL", "3")
	t.Setenv("DEEPCOOLCTL_VALIDATION_DATABASE", "/from/env.db")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Interval)
	assert.Equal(t, "/from/env.db", cfg.Validation.Database)
}

func TestConfigFlagBeatsEnvironment(t *testing.T) {
	fromEnv := writeConfig(t, `display = "usage"`)
	fromFlag := writeConfig(t, `display = "temperature"`)
	t.Setenv("DEEPCOOLCTL_CONFIG", fromEnv)

	cfg, err := load(t, "--config", fromFlag)
	require.NoError(t, err)
	assert.Equal(t, config.DisplayTemperature, cfg.Display)
}

func TestMissingConfigFileIsIgnored(t *testing.T) {
	cfg, err := load(t, "--config", filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	path := writeConfig(t, `
This is not a valid TOML file
`)
	t.Setenv("DEEPCOOLCTL_CONFIG", path)

	_, err := load(t)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
	assert.Contains(t, err.Error(), "Failed to read configuration")
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"zero interval", []string{"--interval", "0"}, errors.ErrInvalidInterval},
		{"negative interval", []string{"--interval", "-1"}, errors.ErrInvalidInterval},
		{"unknown log level", []string{"--log-level", "verbose"}, errors.ErrInvalidLogLevel},
		{"unknown display", []string{"--display", "fan"}, errors.ErrInvalidDisplay},
		{"unknown flag", []string{"--fanspeed", "80"}, errors.ErrBindFlags},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestInvalidLogLevelInFile(t *testing.T) {
	path := writeConfig(t, `log_level = "invalid"`)

	_, err := load(t, "--config", path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
	assert.Contains(t, err.Error(), "invalid")
}

func TestValidationNeedsDatabase(t *testing.T) {
	path := writeConfig(t, `
[validation]
enabled = true
database = ""
`)

	_, err := load(t, "--config", path)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidConfig))
}

func TestHelp(t *testing.T) {
	_, err := load(t, "--help")
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestDisplayIsNormalized(t *testing.T) {
	cfg, err := load(t, "--display", " Temperature ")
	require.NoError(t, err)
	assert.Equal(t, config.DisplayTemperature, cfg.Display)
}

func TestLogLevel(t *testing.T) {
	assert.True(t, config.LogLevelWarning.IsValid())
	assert.False(t, config.LogLevel("trace").IsValid())
	assert.Equal(t, "error", config.LogLevelError.String())
}
