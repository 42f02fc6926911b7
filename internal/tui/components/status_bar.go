package components

import (
	"fmt"

	"tagsort/internal/tui/common"
	"tagsort/internal/tui/styles"
	"tagsort/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the mode badge, the position and the last status message
type StatusBar struct {
	theme styles.Theme
}

func NewStatusBar(theme styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// View renders one status line
func (s *StatusBar) View(mode types.Mode, pos common.Position, status common.Status) string {
	badge := s.theme.Title.Render(mode.String())
	counter := s.theme.Muted.Render(fmt.Sprintf(" %d/%d sorted", pos.Sorted(), pos.Total))
	if pos.Remaining > 0 {
		counter += s.theme.Muted.Render(fmt.Sprintf("  file %d of %d", pos.Cursor+1, pos.Remaining))
	}

	line := badge + counter
	if status.Text != "" {
		line += "  " + s.style(status.Kind).Render(status.Text)
	}
	return line
}

func (s *StatusBar) style(kind common.StatusKind) lipgloss.Style {
	switch kind {
	case common.StatusSuccess:
		return s.theme.Success
	case common.StatusWarning:
		return s.theme.Warning
	case common.StatusError:
		return s.theme.Error
	default:
		return s.theme.Muted
	}
}
