package common

import "tagsort/pkg/types"

// StatusKind selects how the status line is styled
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// Status is the message shown under the composition area
type Status struct {
	Text string
	Kind StatusKind
}

// Position describes progress through the collection
type Position struct {
	Cursor    int // Zero-based index of the current file
	Remaining int // Files still to sort
	Total     int // Files found at startup
}

// Sorted returns how many files have been moved
func (p Position) Sorted() int {
	return p.Total - p.Remaining
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Mode() types.Mode
	Current() (types.Entry, bool)
	CurrentSize() int64
	Position() Position
	NameInput() string
	GotoInput() string
	Preview() string
	Suggestions() []string
	SuggestionDisplay() int
	SelectedSuggestion() int
	Buttons() []types.Button
	DefaultFolder() string
	Status() Status
	ShowHelp() bool
	HelpView() string
	ProgressView() string
}
