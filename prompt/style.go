package prompt

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles renders prompt elements for one output. Colors follow the
// output's profile, so redirected output and NO_COLOR stay plain.
type styles struct {
	prompt lipgloss.Style
	def    lipgloss.Style
	hint   lipgloss.Style
	err    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w, termenv.WithColorCache(true))

	return styles{
		prompt: r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		def:    r.NewStyle().Foreground(lipgloss.Color("2")),
		hint:   r.NewStyle().Foreground(lipgloss.Color("8")),
		err:    r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
