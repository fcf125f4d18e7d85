package config

// Option adjusts how Load looks for configuration.
type Option func(*options) error

type options struct {
	configPath  string
	envPrefix   string
	defaultPath string
}

// WithConfigFile specifies an explicit configuration file path. The
// --config flag still wins over it.
func WithConfigFile(path string) Option {
	return func(o *options) error {
		o.configPath = path
		return nil
	}
}

// WithEnvPrefix specifies a custom environment variable prefix
// Default is "DEEPCOOLCTL"
func WithEnvPrefix(prefix string) Option {
	return func(o *options) error {
		o.envPrefix = prefix
		return nil
	}
}

// WithDefaultPath replaces the system-wide configuration file location.
func WithDefaultPath(path string) Option {
	return func(o *options) error {
		o.defaultPath = path
		return nil
	}
}

// LogLevel represents valid logging levels
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// IsValid returns whether the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	default:
		return false
	}
}

// String implements the Stringer interface
func (l LogLevel) String() string {
	return string(l)
}

// Display names accepted by the display key. Empty means the interactive
// menu.
const (
	DisplayMenu         = ""
	DisplayTemperature  = "temperature"
	DisplayUsage        = "usage"
	DisplayAlternating  = "alternating"
	DisplaySimultaneous = "simultaneous"
)

func isValidDisplay(display string) bool {
	switch display {
	case DisplayMenu, DisplayTemperature, DisplayUsage, DisplayAlternating, DisplaySimultaneous:
		return true
	default:
		return false
	}
}
