package console

import "codeberg.org/mutker/deepcoolctl/internal/errors"

const (
	ErrInvalidSelection = errors.ErrorCode("console_invalid_selection")
	ErrInputClosed      = errors.ErrorCode("console_input_closed")
)

func init() {
	errors.RegisterMessages(map[errors.ErrorCode]string{
		ErrInvalidSelection: "Invalid selection",
		ErrInputClosed:      "Input closed",
	})
}
