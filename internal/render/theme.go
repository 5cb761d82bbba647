// Package render draws projects for the terminal.
package render

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Palette entries by colour identifier (see model.Palette).
var paletteColors = map[int]lipgloss.AdaptiveColor{
	1: ac("243", "245"), // gray
	2: ac("160", "203"), // red
	3: ac("166", "215"), // orange
	4: ac("28", "114"),  // green
	5: ac("27", "75"),   // blue
	6: ac("91", "141"),  // purple
	7: ac("30", "80"),   // teal
}

var (
	colorMuted  lipgloss.TerminalColor = ac("240", "243")
	colorBorder lipgloss.TerminalColor = ac("250", "240")
	colorTitle  lipgloss.TerminalColor = ac("235", "252")
)

func paletteColor(id int) lipgloss.AdaptiveColor {
	if c, ok := paletteColors[id]; ok {
		return c
	}
	return paletteColors[1]
}

// Theme holds the styles for one output stream.
type Theme struct {
	renderer *lipgloss.Renderer
	profile  termenv.Profile
	dark     bool

	Project lipgloss.Style
	Meta    lipgloss.Style
	Muted   lipgloss.Style
	Column  lipgloss.Style
	Idea    lipgloss.Style
	Checked lipgloss.Style
}

// NewTheme detects the colour profile and background of w. Writers that are not
// terminals get plain ASCII output.
func NewTheme(w io.Writer) *Theme {
	return newTheme(lipgloss.NewRenderer(w, termenv.WithColorCache(true)))
}

// PlainTheme never emits escape sequences.
func PlainTheme() *Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return newTheme(r)
}

// StdoutTheme honours NO_COLOR and CLICOLOR_FORCE via termenv.
func StdoutTheme() *Theme {
	out := termenv.NewOutput(os.Stdout)
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(out.EnvColorProfile())
	return newTheme(r)
}

func newTheme(r *lipgloss.Renderer) *Theme {
	t := &Theme{renderer: r, profile: r.ColorProfile(), dark: r.HasDarkBackground()}
	t.Project = r.NewStyle().Bold(true).Foreground(colorTitle)
	t.Meta = r.NewStyle().Foreground(colorMuted)
	t.Muted = r.NewStyle().Foreground(colorMuted)
	if t.dark {
		t.Muted = t.Muted.Faint(true)
	}
	t.Column = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	t.Idea = r.NewStyle().Bold(true)
	t.Checked = r.NewStyle().Strikethrough(true).Foreground(colorMuted)
	return t
}

// Plain reports whether output carries no colour at all.
func (t *Theme) Plain() bool { return t.profile == termenv.Ascii }

func (t *Theme) accent(id int) lipgloss.Style {
	return t.renderer.NewStyle().Foreground(paletteColor(id)).Bold(true)
}

func (t *Theme) markdownStyle() string {
	switch {
	case t.Plain():
		return "notty"
	case t.dark:
		return "dark"
	default:
		return "light"
	}
}
