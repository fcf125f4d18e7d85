package config

import (
	"os"
	"runtime"
	"strings"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPrefix    = "DEEPCOOLCTL"
	DefaultConfigPath   = "/etc/deepcoolctl.toml"
	DefaultInterval     = 2.0
	DefaultLogLevel     = string(LogLevelInfo)
	DefaultUsageSample  = 100 * time.Millisecond
	DefaultLibraryPath  = "LibreHardwareMonitor/LibreHardwareMonitorLib.dll"
	DefaultServiceURL   = "http://localhost:8085/data.json"
	DefaultQueryTimeout = time.Second
	DefaultDatabasePath = "/var/lib/deepcoolctl/validation.db"
)

type HardwareMonitorConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Library string        `mapstructure:"library"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ValidationConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Database string `mapstructure:"database"`
}

type Config struct {
	// Interval is the pause between monitoring cycles, in seconds.
	Interval        float64               `mapstructure:"interval"`
	Display         string                `mapstructure:"display"`
	LogLevel        string                `mapstructure:"log_level"`
	Catalog         string                `mapstructure:"catalog"`
	UsageSample     time.Duration         `mapstructure:"usage_sample"`
	HardwareMonitor HardwareMonitorConfig `mapstructure:"hwmonitor"`
	Validation      ValidationConfig      `mapstructure:"validation"`

	// ConfigFile is the file the values were read from, empty if none.
	ConfigFile string `mapstructure:"-"`
}

// IntervalDuration returns Interval as a time.Duration.
func (c *Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval * float64(time.Second))
}

// Load reads defaults, the TOML config file, DEEPCOOLCTL_* environment
// variables and the command line, in increasing order of precedence. args
// excludes the program name. For --help, pflag.ErrHelp is returned as is.
func Load(args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := options{envPrefix: DefaultEnvPrefix, defaultPath: DefaultConfigPath}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}
	if err := bindFlags(v, fs); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := resolvePath(fs, o)
	configFile, err := readConfigFile(v, path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.ConfigFile = configFile
	cfg.Display = strings.ToLower(strings.TrimSpace(cfg.Display))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("display", DisplayMenu)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("catalog", "")
	v.SetDefault("usage_sample", DefaultUsageSample)
	v.SetDefault("hwmonitor.enabled", runtime.GOOS == "windows")
	v.SetDefault("hwmonitor.library", DefaultLibraryPath)
	v.SetDefault("hwmonitor.url", DefaultServiceURL)
	v.SetDefault("hwmonitor.timeout", DefaultQueryTimeout)
	v.SetDefault("validation.enabled", false)
	v.SetDefault("validation.database", DefaultDatabasePath)
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("deepcoolctl", pflag.ContinueOnError)
	fs.String("config", "", "Path to the TOML configuration file")
	fs.String("display", DisplayMenu, "Display policy: temperature, usage, alternating or simultaneous (default: interactive menu)")
	fs.Float64("interval", DefaultInterval, "Seconds between display updates")
	fs.String("catalog", "", "YAML file with additional device definitions")
	fs.String("log-level", DefaultLogLevel, "Log level: debug, info, warning or error")

	return fs
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"display":   "display",
		"interval":  "interval",
		"catalog":   "catalog",
		"log_level": "log-level",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return err
		}
	}

	return nil
}

func resolvePath(fs *pflag.FlagSet, o options) string {
	if path, _ := fs.GetString("config"); path != "" {
		return path
	}
	if o.configPath != "" {
		return o.configPath
	}
	if path := os.Getenv(o.envPrefix + "_CONFIG"); path != "" {
		return path
	}

	return o.defaultPath
}

// readConfigFile merges the file at path into v. A missing file is not an
// error.
func readConfigFile(v *viper.Viper, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.New().Wrap(errors.ErrReadConfig, err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return "", errors.New().Wrap(errors.ErrReadConfig, err).WithData(path)
	}

	return path, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if !isValidDisplay(c.Display) {
		return errFactory.WithData(errors.ErrInvalidDisplay, c.Display)
	}
	if c.UsageSample <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "usage_sample must be positive")
	}
	if c.Validation.Enabled && c.Validation.Database == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "validation.database is required when validation is enabled")
	}

	return nil
}
