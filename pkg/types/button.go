package types

// Button maps a shortcut to a destination category.
// It is used within the application's configuration.
type Button struct {
	Label       string `yaml:"label"`        // Long label shown in help and status lines
	ButtonLabel string `yaml:"button_label"` // Short label shown on the category bar
	Path        string `yaml:"path"`         // Category folder under <root>/<output_dir>/
	Shortcut    string `yaml:"shortcut"`     // Single character, triggered with alt+<shortcut>
}

// DisplayLabel returns the short label, falling back to the long label and then the path
func (b Button) DisplayLabel() string {
	switch {
	case b.ButtonLabel != "":
		return b.ButtonLabel
	case b.Label != "":
		return b.Label
	default:
		return b.Path
	}
}
