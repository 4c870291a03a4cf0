package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/csrstore/pkg/graph"
)

// =============================================================================
// Palette & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// status marks the start of a one-line message.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusOK   = status{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	statusFail = status{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	statusWarn = status{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	statusInfo = status{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

// =============================================================================
// Printer
// =============================================================================

// printer writes styled command output. Commands build one over
// cmd.OutOrStdout() so tests can capture what they print.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer {
	return printer{w: w}
}

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) status(st status, format string, args ...any) {
	p.line(st.style.Render(st.icon) + " " + fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) { p.status(statusOK, format, args...) }
func (p printer) failure(format string, args ...any) { p.status(statusFail, format, args...) }
func (p printer) info(format string, args ...any)    { p.status(statusInfo, format, args...) }

func (p printer) warning(format string, args ...any) {
	p.line(statusWarn.style.Render(statusWarn.icon) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// detail prints an indented, muted line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written or referenced path.
func (p printer) file(path string) {
	p.line("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func (p printer) title(s string) {
	p.line(StyleTitle.Render(s))
}

func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// counts prints graph size and whether it came from the cache.
func (p printer) counts(m graph.Meta, cached bool) {
	origin := "built"
	if cached {
		origin = "cached"
	}
	parts := []string{
		fmt.Sprintf("%d vertices", m.V()),
		fmt.Sprintf("%d edges", m.E()),
		m.Structure().Direction.String(),
		origin,
	}
	p.line("  " + StyleDim.Render(strings.Join(parts, " · ")))
}

// nextStep suggests a follow-up command.
func (p printer) nextStep(description, cmd string) {
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func (p printer) newline() {
	fmt.Fprintln(p.w)
}
