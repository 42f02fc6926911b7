package components

import (
	"strings"

	"tagsort/internal/tui/styles"
)

// SuggestionList renders ranked tag suggestions on one line
type SuggestionList struct {
	theme styles.Theme
	limit int
}

func NewSuggestionList(theme styles.Theme, limit int) *SuggestionList {
	return &SuggestionList{theme: theme, limit: limit}
}

// View highlights the suggestion at selected; -1 highlights none
func (s *SuggestionList) View(suggestions []string, selected int) string {
	if len(suggestions) == 0 {
		return s.theme.Muted.Render("no suggestions")
	}

	shown := suggestions
	if s.limit > 0 && len(shown) > s.limit {
		shown = shown[:s.limit]
	}

	var sb strings.Builder
	for i, tag := range shown {
		if i == selected {
			sb.WriteString(s.theme.SelectedSuggestion.Render(tag))
		} else {
			sb.WriteString(s.theme.Suggestion.Render(tag))
		}
	}
	if hidden := len(suggestions) - len(shown); hidden > 0 {
		sb.WriteString(s.theme.Muted.Render("…"))
	}
	return sb.String()
}
