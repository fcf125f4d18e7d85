package monitor

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/frame"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
	"codeberg.org/mutker/deepcoolctl/internal/validation"
)

// DefaultSettle is how long a test value stays on the display before the
// user is asked about it.
const DefaultSettle = 2 * time.Second

// Verdict is the user's answer for one test entry.
type Verdict int

const (
	VerdictFail Verdict = iota
	VerdictPass
	VerdictQuit
)

func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictFail:
		return "fail"
	case VerdictQuit:
		return "quit"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Confirmer asks whether description is what the display shows.
type Confirmer interface {
	Confirm(ctx context.Context, description string) (Verdict, error)
}

// Entry is one value shown during the self-test.
type Entry struct {
	Value       int
	Mode        frame.DisplayMode
	Description string
}

// SelfTestEntries is the fixed test sequence.
var SelfTestEntries = []Entry{
	{25, frame.ModeTemperature, "25°C"},
	{50, frame.ModeTemperature, "50°C"},
	{75, frame.ModeTemperature, "75°C"},
	{25, frame.ModeUtilization, "25%"},
	{50, frame.ModeUtilization, "50%"},
	{75, frame.ModeUtilization, "75%"},
}

// Subject identifies the tested device in the ledger.
type Subject struct {
	Model      string
	VendorID   uint16
	ProductID  uint16
	Rearranged bool
}

// Report summarizes one self-test run.
type Report struct {
	Passed  int
	Failed  int
	Skipped int
	Quit    bool
	Results []EntryResult
}

type EntryResult struct {
	Entry   Entry
	Verdict Verdict
}

type SelfTest struct {
	subject   Subject
	tx        Transmitter
	confirmer Confirmer
	recorder  validation.Recorder
	logger    logger.Logger
	sleep     SleepFunc
	settle    time.Duration
	now       func() time.Time
}

// SelfTestOption configures a SelfTest.
type SelfTestOption func(*SelfTest)

func WithSelfTestLogger(log logger.Logger) SelfTestOption {
	return func(t *SelfTest) {
		t.logger = log
	}
}

func WithRecorder(rec validation.Recorder) SelfTestOption {
	return func(t *SelfTest) {
		t.recorder = rec
	}
}

func WithSettle(d time.Duration, sleep SleepFunc) SelfTestOption {
	return func(t *SelfTest) {
		t.settle = d
		if sleep != nil {
			t.sleep = sleep
		}
	}
}

func NewSelfTest(subject Subject, tx Transmitter, confirmer Confirmer, opts ...SelfTestOption) *SelfTest {
	t := &SelfTest{
		subject:   subject,
		tx:        tx,
		confirmer: confirmer,
		recorder:  validation.Noop(),
		logger:    logger.Nop(),
		sleep:     Sleep,
		settle:    DefaultSettle,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Run shows each entry, waits for the display to settle and records the
// user's verdict. Quit ends the run early and cancellation aborts it; the
// remaining entries count as skipped.
func (t *SelfTest) Run(ctx context.Context) (Report, error) {
	var report Report

	t.logger.Info().Str("model", t.subject.Model).Msg("Testing display")

	for i, entry := range SelfTestEntries {
		verdict, err := t.runEntry(ctx, entry)
		if err != nil {
			report.Skipped += len(SelfTestEntries) - i
			return report, err
		}

		if verdict == VerdictQuit {
			report.Quit = true
			report.Skipped += len(SelfTestEntries) - i
			break
		}

		report.Results = append(report.Results, EntryResult{Entry: entry, Verdict: verdict})
		if verdict == VerdictPass {
			report.Passed++
		} else {
			report.Failed++
		}

		t.record(ctx, entry, verdict)
	}

	t.logger.Info().
		Int("passed", report.Passed).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("Display test finished")

	return report, nil
}

func (t *SelfTest) runEntry(ctx context.Context, entry Entry) (Verdict, error) {
	t.logger.Info().Str("value", entry.Description).Msg("Displaying test value")

	if err := t.tx.Send(entry.Value, entry.Mode); err != nil {
		t.logger.Warn().Err(err).Str("value", entry.Description).Msg("Failed to send test value")
	}

	if err := t.sleep(ctx, t.settle); err != nil {
		return VerdictQuit, errors.New().Wrap(errors.ErrSelfTest, err)
	}

	verdict, err := t.confirmer.Confirm(ctx, entry.Description)
	if err != nil {
		return VerdictQuit, errors.New().Wrap(ErrConfirmFailed, err)
	}

	return verdict, nil
}

func (t *SelfTest) record(ctx context.Context, entry Entry, verdict Verdict) {
	outcome := validation.OutcomeFail
	if verdict == VerdictPass {
		outcome = validation.OutcomePass
	}

	err := t.recorder.Record(ctx, &validation.Result{
		RecordedAt: t.now(),
		Model:      t.subject.Model,
		VendorID:   t.subject.VendorID,
		ProductID:  t.subject.ProductID,
		Rearranged: t.subject.Rearranged,
		Mode:       entry.Mode.String(),
		Value:      entry.Value,
		Outcome:    outcome,
	})
	if err != nil {
		t.logger.Warn().Err(err).Msg("Failed to record self-test result")
	}
}
