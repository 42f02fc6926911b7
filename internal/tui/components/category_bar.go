package components

import (
	"tagsort/internal/tui/styles"
	"tagsort/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

// CategoryBar renders the configured category buttons with their shortcuts
type CategoryBar struct {
	theme styles.Theme
}

func NewCategoryBar(theme styles.Theme) *CategoryBar {
	return &CategoryBar{theme: theme}
}

// View renders one box per button followed by the default folder
func (c *CategoryBar) View(buttons []types.Button, defaultFolder string) string {
	boxes := make([]string, 0, len(buttons)+1)
	for _, b := range buttons {
		label := b.DisplayLabel()
		if b.Shortcut != "" {
			label = c.theme.ButtonKey.Render("alt+"+b.Shortcut) + " " + label
		}
		boxes = append(boxes, c.theme.Button.Render(label))
	}
	if defaultFolder != "" {
		boxes = append(boxes, c.theme.Button.Render(c.theme.ButtonKey.Render("ctrl+s")+" "+defaultFolder))
	}
	if len(boxes) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}
