package types

// Entry is the file under the cursor of a collection
type Entry struct {
	Index int    // Cursor position
	Name  string // File name as listed in the source directory
	Path  string // Full path in the source directory
}

// MoveResult holds the outcome of moving a single file into a category
type MoveResult struct {
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
	Category        string `json:"category"`
	Renamed         bool   `json:"renamed"` // Destination got a collision suffix
	SourceRemoved   bool   `json:"source_removed"`
}
