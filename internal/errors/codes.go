package errors

// Common error codes
const (
	// System errors
	ErrInternal         ErrorCode = "internal_error"
	ErrInvalidArgument  ErrorCode = "invalid_argument"
	ErrInvalidOperation ErrorCode = "invalid_operation"
	ErrUnavailable      ErrorCode = "service_unavailable"
	ErrTimeout          ErrorCode = "operation_timeout"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrInvalidInterval ErrorCode = "invalid_interval"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"
	ErrInvalidDisplay  ErrorCode = "invalid_display"

	// Lifecycle errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"
	ErrAlreadyRunning ErrorCode = "already_running"

	// Application errors
	ErrInitApp    ErrorCode = "init_app_failed"
	ErrMainLoop   ErrorCode = "main_loop_failed"
	ErrSelfTest   ErrorCode = "self_test_failed"
	ErrCloseState ErrorCode = "close_state_failed"
)

var errorMessages = map[ErrorCode]string{
	ErrInternal:         "Internal error occurred",
	ErrInvalidArgument:  "Invalid argument provided",
	ErrInvalidOperation: "Invalid operation",
	ErrUnavailable:      "Service unavailable",
	ErrTimeout:          "Operation timed out",
	ErrInvalidConfig:    "Invalid configuration",
	ErrReadConfig:       "Failed to read configuration",
	ErrBindFlags:        "Failed to bind flags",
	ErrInvalidInterval:  "Invalid interval value",
	ErrInvalidLogLevel:  "Invalid log level",
	ErrInvalidDisplay:   "Invalid display policy",
	ErrInitFailed:       "Initialization failed",
	ErrShutdownFailed:   "Shutdown failed",
	ErrAlreadyRunning:   "Another instance is already running",
	ErrInitApp:          "Failed to initialize application",
	ErrMainLoop:         "Error in main loop",
	ErrSelfTest:         "Display self-test failed",
	ErrCloseState:       "Failed to release resources",
}

// RegisterMessages adds default messages for package-specific codes.
// Packages call it from init; existing entries are not replaced.
func RegisterMessages(messages map[ErrorCode]string) {
	for code, msg := range messages {
		if _, ok := errorMessages[code]; !ok {
			errorMessages[code] = msg
		}
	}
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
