package messages

import "tagsort/pkg/types"

// ErrorMsg carries an error from a command back to the model
type ErrorMsg struct {
	Err error
}

// StatusTimeoutMsg clears the status line if it still shows status ID
type StatusTimeoutMsg struct {
	ID int
}

// MovedMsg reports a finished move attempt to anything listening
type MovedMsg struct {
	Result types.MoveResult
	Err    error
}
