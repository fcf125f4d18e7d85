// Package console is the interactive terminal front end: the main menu, the
// device chooser and the self-test questions.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"codeberg.org/mutker/deepcoolctl/internal/device"
	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/monitor"
	"codeberg.org/mutker/deepcoolctl/internal/validation"
)

// Choice is a main menu entry.
type Choice int

const (
	ChoiceTemperature Choice = iota + 1
	ChoiceUsage
	ChoiceAlternating
	ChoiceSelfTest
	ChoiceQuit
)

var menuItems = []string{
	"Start temperature monitoring",
	"Start CPU usage monitoring",
	"Start both (alternating)",
	"Test display",
	"Quit",
}

type line struct {
	text string
	err  error
}

// Prompter reads answers line by line. Input is consumed by a background
// goroutine so that a pending prompt can be abandoned on cancellation.
type Prompter struct {
	out    io.Writer
	lines  chan line
	styles styles
}

func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:    out,
		lines:  make(chan line),
		styles: newStyles(out),
	}
	go p.scan(in)

	return p
}

func (p *Prompter) scan(in io.Reader) {
	defer close(p.lines)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		p.lines <- line{text: sc.Text()}
	}
	if err := sc.Err(); err != nil {
		p.lines <- line{err: err}
	}
}

// readLine returns io.EOF once input is exhausted.
func (p *Prompter) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, p.styles.prompt.Render(prompt))

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			return "", io.EOF
		}
		if l.err != nil {
			return "", errors.New().Wrap(ErrInputClosed, l.err)
		}
		return strings.TrimSpace(l.text), nil
	}
}

// Banner prints the program title.
func (p *Prompter) Banner() {
	title := "DeepCool Digital Cooler Controller"
	fmt.Fprintln(p.out, p.styles.title.Render(title))
	fmt.Fprintln(p.out, p.styles.dim.Render(strings.Repeat("=", len(title))))
}

// Menu shows the main menu until a valid choice is entered. End of input
// counts as ChoiceQuit.
func (p *Prompter) Menu(ctx context.Context) (Choice, error) {
	for {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.styles.title.Render("Options:"))
		for i, item := range menuItems {
			fmt.Fprintf(p.out, "%d. %s\n", i+1, item)
		}

		answer, err := p.readLine(ctx, fmt.Sprintf("Select option (1-%d): ", len(menuItems)))
		if errors.Is(err, io.EOF) {
			return ChoiceQuit, nil
		}
		if err != nil {
			return ChoiceQuit, err
		}

		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(menuItems) {
			return Choice(n), nil
		}

		fmt.Fprintln(p.out, p.styles.warn.Render(fmt.Sprintf("Invalid choice. Please select 1-%d.", len(menuItems))))
	}
}

// SelectDevice lists candidates and returns the zero-based index entered.
// Range checking is left to the caller.
func (p *Prompter) SelectDevice(ctx context.Context, candidates []device.Candidate) (int, error) {
	fmt.Fprintln(p.out, p.styles.title.Render(fmt.Sprintf("Found %d compatible devices:", len(candidates))))
	for i, c := range candidates {
		desc := fmt.Sprintf("%d. %s (VID:0x%04X, PID:0x%04X)", i+1, c.Config.Name, c.Info.VendorID, c.Info.ProductID)
		if c.Info.Product != "" {
			desc += " " + p.styles.dim.Render(c.Info.Product)
		}
		fmt.Fprintln(p.out, desc)
	}

	answer, err := p.readLine(ctx, fmt.Sprintf("Select device (1-%d): ", len(candidates)))
	if err != nil {
		return -1, err
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		return -1, errors.New().Wrap(ErrInvalidSelection, err).WithData(answer)
	}

	return n - 1, nil
}

// Confirm asks whether the display shows description. "y" passes, "q"
// quits and anything else fails. End of input quits.
func (p *Prompter) Confirm(ctx context.Context, description string) (monitor.Verdict, error) {
	answer, err := p.readLine(ctx, fmt.Sprintf("Do you see %s on display? (y/n/q): ", description))
	if errors.Is(err, io.EOF) {
		return monitor.VerdictQuit, nil
	}
	if err != nil {
		return monitor.VerdictQuit, err
	}

	switch strings.ToLower(answer) {
	case "q":
		return monitor.VerdictQuit, nil
	case "y":
		fmt.Fprintln(p.out, p.styles.ok.Render(fmt.Sprintf("✓ %s working correctly", description)))
		return monitor.VerdictPass, nil
	default:
		fmt.Fprintln(p.out, p.styles.fail.Render(fmt.Sprintf("✗ %s not displaying correctly", description)))
		return monitor.VerdictFail, nil
	}
}

// Report prints a finished self-test and the model's ledger totals.
func (p *Prompter) Report(report monitor.Report, history validation.Summary) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.styles.title.Render("Display test results:"))

	status := p.styles.ok
	if report.Failed > 0 {
		status = p.styles.fail
	}
	fmt.Fprintln(p.out, status.Render(fmt.Sprintf("%d passed, %d failed, %d skipped", report.Passed, report.Failed, report.Skipped)))

	if total := history.Passed + history.Failed; total > 0 {
		fmt.Fprintln(p.out, p.styles.dim.Render(fmt.Sprintf("%s so far: %d of %d checks passed", history.Model, history.Passed, total)))
	}
}

// Println writes a plain message line.
func (p *Prompter) Println(msg string) {
	fmt.Fprintln(p.out, msg)
}
