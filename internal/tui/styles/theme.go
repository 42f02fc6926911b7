package styles

import (
	"tagsort/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles the views render with
type Theme struct {
	App                lipgloss.Style
	Title              lipgloss.Style
	Filename           lipgloss.Style
	Muted              lipgloss.Style
	Help               lipgloss.Style
	Success            lipgloss.Style
	Warning            lipgloss.Style
	Error              lipgloss.Style
	Preview            lipgloss.Style
	Suggestion         lipgloss.Style
	SelectedSuggestion lipgloss.Style
	Button             lipgloss.Style
	ButtonKey          lipgloss.Style
}

// NewTheme builds the styles from the theme section of cfg
func NewTheme(cfg *config.Config) Theme {
	primary := lipgloss.Color(cfg.Theme.Primary)
	muted := lipgloss.Color(cfg.Theme.Muted)

	return Theme{
		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primary).
			Padding(0, 1),
		Filename: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Help: lipgloss.NewStyle().
			Foreground(muted),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Success)),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Warning)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Error)).
			Bold(true),
		Preview: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Suggestion: lipgloss.NewStyle().
			Padding(0, 1),
		SelectedSuggestion: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primary),
		Button: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary),
		ButtonKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
	}
}
