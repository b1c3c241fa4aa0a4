package cli

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorSuccess = lipgloss.Color("#10B981")
	colorAccent  = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles holds the styles used for diagnostics. Plain styles print text
// unchanged, for pipes and tests.
type Styles struct {
	plain bool

	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style
	Location lipgloss.Style
	Gutter   lipgloss.Style
	Caret    lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is false.
func NewStyles(color bool) *Styles {
	return &Styles{
		plain: !color,

		Error:    lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Warning:  lipgloss.NewStyle().Bold(true).Foreground(colorWarning),
		Success:  lipgloss.NewStyle().Foreground(colorSuccess),
		Location: lipgloss.NewStyle().Foreground(colorAccent),
		Gutter:   lipgloss.NewStyle().Foreground(colorMuted),
		Caret:    lipgloss.NewStyle().Bold(true).Foreground(colorError),
	}
}

// render applies st to a single line. lipgloss pads multi-line blocks and
// expands tabs, so callers pass one line at a time.
func (s *Styles) render(st lipgloss.Style, line string) string {
	if s.plain || line == "" {
		return line
	}
	return st.Render(line)
}
