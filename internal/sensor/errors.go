package sensor

import "codeberg.org/mutker/deepcoolctl/internal/errors"

const (
	ErrSensorUnavailable = errors.ErrorCode("sensor_unavailable")
	ErrLibraryNotFound   = errors.ErrorCode("sensor_library_not_found")
	ErrServiceQuery      = errors.ErrorCode("sensor_service_query_failed")
	ErrNoPackageSensor   = errors.ErrorCode("sensor_no_package_sensor")
	ErrNoSensors         = errors.ErrorCode("sensor_no_sensors")
	ErrUsageFailed       = errors.ErrorCode("sensor_usage_failed")
)

func init() {
	errors.RegisterMessages(map[errors.ErrorCode]string{
		ErrSensorUnavailable: "Sensor unavailable",
		ErrLibraryNotFound:   "Hardware monitor library not found",
		ErrServiceQuery:      "Hardware monitor query failed",
		ErrNoPackageSensor:   "No CPU package temperature sensor",
		ErrNoSensors:         "No temperature sensors",
		ErrUsageFailed:       "CPU usage sample failed",
	})
}
