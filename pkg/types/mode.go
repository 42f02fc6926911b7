package types

// Mode represents the current input mode of the TUI
type Mode int

const (
	// Compose is the default mode: keys edit the name buffer
	Compose Mode = iota
	// Goto reads a file position to seek to
	Goto
	// Done is entered once every file has been sorted
	Done
)

// String returns the label shown on the status bar
func (m Mode) String() string {
	switch m {
	case Compose:
		return "COMPOSE"
	case Goto:
		return "GOTO"
	case Done:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}
