package frame

import "codeberg.org/mutker/deepcoolctl/internal/errors"

const (
	ErrUnsupportedMode  = errors.ErrorCode("frame_unsupported_mode")
	ErrValueOutOfRange  = errors.ErrorCode("frame_value_out_of_range")
	ErrUnsupportedModel = errors.ErrorCode("frame_unsupported_family")
)

func init() {
	errors.RegisterMessages(map[errors.ErrorCode]string{
		ErrUnsupportedMode:  "Unsupported display mode",
		ErrValueOutOfRange:  "Value cannot be displayed",
		ErrUnsupportedModel: "Unsupported frame family",
	})
}
