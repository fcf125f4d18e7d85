package errors

// ErrorCode identifies a class of failure. Codes are stable strings so they
// can be matched in logs and in tests.
type ErrorCode string

// Error is a coded error carrying an optional message, payload and cause.
type Error interface {
	error
	Code() ErrorCode
	WithMessage(msg string) Error
	WithData(data any) Error
	GetData() any
	Unwrap() error
}

// Factory creates coded errors.
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
