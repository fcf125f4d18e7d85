package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorTitle = lipgloss.Color("51")
	colorDim   = lipgloss.Color("243")
	colorOk    = lipgloss.Color("78")
	colorFail  = lipgloss.Color("196")
	colorWarn  = lipgloss.Color("220")
)

type styles struct {
	title  lipgloss.Style
	dim    lipgloss.Style
	prompt lipgloss.Style
	ok     lipgloss.Style
	fail   lipgloss.Style
	warn   lipgloss.Style
}

// newStyles binds the styles to out, so that colors are dropped when out
// is not a terminal.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)

	return styles{
		title:  r.NewStyle().Bold(true).Foreground(colorTitle),
		dim:    r.NewStyle().Foreground(colorDim),
		prompt: r.NewStyle().Bold(true),
		ok:     r.NewStyle().Foreground(colorOk),
		fail:   r.NewStyle().Foreground(colorFail),
		warn:   r.NewStyle().Foreground(colorWarn),
	}
}
