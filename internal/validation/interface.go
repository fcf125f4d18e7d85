package validation

import (
	"context"
	"time"
)

// Recorder persists self-test verdicts.
type Recorder interface {
	Record(ctx context.Context, result *Result) error
	Summary(ctx context.Context, model string) (Summary, error)
	Close() error
}

// Outcome is the user's verdict on one displayed value.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
)

func (o Outcome) IsValid() bool {
	return o == OutcomePass || o == OutcomeFail
}

// Result is one confirmed self-test entry.
type Result struct {
	RecordedAt time.Time
	Model      string
	VendorID   uint16
	ProductID  uint16
	// Rearranged records the digit-order flag the model was tested with.
	Rearranged bool
	Mode       string
	Value      int
	Outcome    Outcome
}

// Summary counts recorded outcomes for one model.
type Summary struct {
	Model  string
	Passed int
	Failed int
}
