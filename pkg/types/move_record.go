package types

import "time"

// Move record statuses
const (
	StatusMoved            = "moved"
	StatusCopyFailed       = "copy_failed"
	StatusSourceNotRemoved = "source_not_removed"
	StatusSkipped          = "skipped"
)

// MoveRecord is one journal line describing a move attempt
type MoveRecord struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Root            string    `json:"root"`
	SourcePath      string    `json:"source_path"`
	DestinationPath string    `json:"destination_path"`
	Category        string    `json:"category"`
	NewName         string    `json:"new_name"`
	FileSize        int64     `json:"file_size"`
	Status          string    `json:"status"`
	Error           string    `json:"error,omitempty"`
}

// Succeeded reports whether the file ended up in its destination
func (r *MoveRecord) Succeeded() bool {
	return r.Status == StatusMoved || r.Status == StatusSourceNotRemoved
}
