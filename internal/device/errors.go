package device

import "codeberg.org/mutker/deepcoolctl/internal/errors"

const (
	// Discovery and connection errors
	ErrNoDeviceFound      = errors.ErrorCode("device_no_device_found")
	ErrEnumerateFailed    = errors.ErrorCode("device_enumerate_failed")
	ErrAmbiguousSelection = errors.ErrorCode("device_ambiguous_selection")
	ErrConnectionFailed   = errors.ErrorCode("device_connection_failed")
	ErrAlreadyConnected   = errors.ErrInvalidOperation

	// Session errors
	ErrNotConnected       = errors.ErrorCode("device_not_connected")
	ErrTransmissionFailed = errors.ErrorCode("device_transmission_failed")
	ErrCloseFailed        = errors.ErrorCode("device_close_failed")
)

func init() {
	errors.RegisterMessages(map[errors.ErrorCode]string{
		ErrNoDeviceFound:      "No supported DeepCool digital cooler found",
		ErrEnumerateFailed:    "Failed to enumerate HID devices",
		ErrAmbiguousSelection: "No device selected",
		ErrConnectionFailed:   "Failed to connect",
		ErrNotConnected:       "Device not connected",
		ErrTransmissionFailed: "Failed to send frame",
		ErrCloseFailed:        "Failed to close device",
	})
}
