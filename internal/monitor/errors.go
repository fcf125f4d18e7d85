package monitor

import "codeberg.org/mutker/deepcoolctl/internal/errors"

const (
	ErrInvalidPolicy   = errors.ErrorCode("monitor_invalid_policy")
	ErrAlreadyStarted  = errors.ErrInvalidOperation
	ErrConfirmFailed   = errors.ErrorCode("monitor_confirm_failed")
	ErrUnknownDisplay  = errors.ErrInvalidDisplay
	ErrInvalidInterval = errors.ErrInvalidInterval
)

func init() {
	errors.RegisterMessages(map[errors.ErrorCode]string{
		ErrInvalidPolicy: "Monitoring policy shows nothing",
		ErrConfirmFailed: "Failed to read self-test answer",
	})
}
