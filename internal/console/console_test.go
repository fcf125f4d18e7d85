package console_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/deepcoolctl/internal/catalog"
	"codeberg.org/mutker/deepcoolctl/internal/console"
	"codeberg.org/mutker/deepcoolctl/internal/device"
	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/monitor"
	"codeberg.org/mutker/deepcoolctl/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prompter(input string) (*console.Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return console.New(strings.NewReader(input), out), out
}

func TestMenu(t *testing.T) {
	p, out := prompter("7\nabc\n\n 3 \n4\n")
	ctx := context.Background()

	choice, err := p.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, console.ChoiceAlternating, choice)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid choice. Please select 1-5."))
	assert.Contains(t, out.String(), "4. Test display")

	choice, err = p.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, console.ChoiceSelfTest, choice)

	choice, err = p.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, console.ChoiceQuit, choice, "end of input quits")
}

func TestMenuCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	p := console.New(r, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Menu(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func candidates() []device.Candidate {
	return []device.Candidate{
		{Info: device.Info{VendorID: 0x3633, ProductID: 0x0008, Product: "AG620 DIGITAL"}, Config: catalog.DeviceConfig{Name: "AG620"}},
		{Info: device.Info{VendorID: 0x3633, ProductID: 0x0009}, Config: catalog.DeviceConfig{Name: "AG400"}},
	}
}

func TestSelectDevice(t *testing.T) {
	p, out := prompter("2\n")

	idx, err := p.SelectDevice(context.Background(), candidates())
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "1. AG620 (VID:0x3633, PID:0x0008)")
	assert.Contains(t, out.String(), "2. AG400 (VID:0x3633, PID:0x0009)")
	assert.Contains(t, out.String(), "Select device (1-2): ")
}

func TestSelectDeviceOutOfRangeIsPassedThrough(t *testing.T) {
	p, _ := prompter("9\n")

	idx, err := p.SelectDevice(context.Background(), candidates())
	require.NoError(t, err)
	assert.Equal(t, 8, idx)
}

func TestSelectDeviceNotANumber(t *testing.T) {
	p, _ := prompter("first\n")

	_, err := p.SelectDevice(context.Background(), candidates())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, console.ErrInvalidSelection))
}

func TestSelectDeviceEOF(t *testing.T) {
	p, _ := prompter("")

	_, err := p.SelectDevice(context.Background(), candidates())
	assert.ErrorIs(t, err, io.EOF)
}

func TestConfirm(t *testing.T) {
	p, out := prompter("y\nN\nmaybe\nQ\n")
	ctx := context.Background()

	want := []monitor.Verdict{monitor.VerdictPass, monitor.VerdictFail, monitor.VerdictFail, monitor.VerdictQuit, monitor.VerdictQuit}
	for i, w := range want {
		got, err := p.Confirm(ctx, "25°C")
		require.NoError(t, err, i)
		assert.Equal(t, w, got, i)
	}

	assert.Contains(t, out.String(), "Do you see 25°C on display? (y/n/q): ")
	assert.Contains(t, out.String(), "25°C working correctly")
	assert.Contains(t, out.String(), "25°C not displaying correctly")
}

func TestConfirmDrivesSelfTest(t *testing.T) {
	p, _ := prompter("y\ny\nn\nq\n")

	var shown int
	st := monitor.NewSelfTest(monitor.Subject{Model: "AG620"}, sendCounter(&shown), p,
		monitor.WithSettle(0, func(ctx context.Context, _ time.Duration) error { return ctx.Err() }))

	report, err := st.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 4, shown)
}

func TestReport(t *testing.T) {
	p, out := prompter("")

	p.Report(monitor.Report{Passed: 5, Failed: 1}, validation.Summary{Model: "AG620", Passed: 11, Failed: 1})
	assert.Contains(t, out.String(), "5 passed, 1 failed, 0 skipped")
	assert.Contains(t, out.String(), "AG620 so far: 11 of 12 checks passed")

	out.Reset()
	p.Report(monitor.Report{Passed: 6}, validation.Summary{Model: "AG620"})
	assert.NotContains(t, out.String(), "so far")
}

func TestBanner(t *testing.T) {
	p, out := prompter("")
	p.Banner()
	assert.Contains(t, out.String(), "DeepCool Digital Cooler Controller")
}
