package views

import (
	"strings"

	"tagsort/internal/tui/common"
	"tagsort/internal/tui/components"
	"tagsort/internal/tui/styles"
	"tagsort/pkg/types"

	"github.com/dustin/go-humanize"
)

// RenderMainView renders the whole screen from the model state
func RenderMainView(m common.ModelReader, theme styles.Theme) string {
	var sb strings.Builder

	sb.WriteString(theme.Title.Render("tagsort"))
	sb.WriteString("  " + m.ProgressView() + "\n\n")

	if m.Mode() == types.Done {
		sb.WriteString(renderDone(m, theme))
	} else {
		sb.WriteString(renderCurrent(m, theme))
		sb.WriteString("\n")
		sb.WriteString(renderComposer(m, theme))
	}

	sb.WriteString("\n\n")
	sb.WriteString(components.NewCategoryBar(theme).View(m.Buttons(), m.DefaultFolder()))
	sb.WriteString("\n")
	sb.WriteString(components.NewStatusBar(theme).View(m.Mode(), m.Position(), m.Status()))
	sb.WriteString("\n\n")
	sb.WriteString(m.HelpView())

	return theme.App.Render(sb.String())
}

func renderCurrent(m common.ModelReader, theme styles.Theme) string {
	entry, ok := m.Current()
	if !ok {
		return theme.Muted.Render("no file selected") + "\n"
	}
	line := theme.Filename.Render(entry.Name) +
		theme.Muted.Render("  "+humanize.Bytes(uint64(m.CurrentSize())))
	return line + "\n" + theme.Muted.Render(entry.Path) + "\n"
}

func renderComposer(m common.ModelReader, theme styles.Theme) string {
	var sb strings.Builder
	if m.Mode() == types.Goto {
		sb.WriteString(m.GotoInput())
		return sb.String()
	}

	sb.WriteString(m.NameInput() + "\n")
	if preview := m.Preview(); preview != "" {
		sb.WriteString(theme.Preview.Render("→ "+preview) + "\n")
	}
	sb.WriteString(components.NewSuggestionList(theme, m.SuggestionDisplay()).View(m.Suggestions(), m.SelectedSuggestion()))
	return sb.String()
}

func renderDone(m common.ModelReader, theme styles.Theme) string {
	pos := m.Position()
	return theme.Success.Render("All files sorted.") + " " +
		theme.Muted.Render(humanize.Comma(int64(pos.Total))+" files moved. Press esc to quit.")
}
