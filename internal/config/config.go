package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"tagsort/internal/errors"
	"tagsort/pkg/types"

	"gopkg.in/yaml.v3"
)

// Collision strategies
const (
	CollisionRename    = "rename"
	CollisionSkip      = "skip"
	CollisionOverwrite = "overwrite"
)

// Matcher names
const (
	MatcherHybrid      = "hybrid"
	MatcherTrigram     = "trigram"
	MatcherSubsequence = "subsequence"
)

// DefaultCacheSize is the number of queries the suggestion cache keeps
const DefaultCacheSize = 20

// DefaultExtensions is the allow-list of managed file types
var DefaultExtensions = []string{"png", "jpg", "jpeg", "webp"}

// Config represents the application configuration structure.
// It defines the category buttons, where sorted files go, the tag corpus and
// suggestion settings, and the move journal.
type Config struct {
	DefaultFolder string         `yaml:"default_folder"` // Category used by the "move to default" action
	OutputDir     string         `yaml:"output_dir"`     // Folder under the source root that receives categories
	Extensions    []string       `yaml:"extensions"`     // Managed file extensions, without the dot
	Ignore        []string       `yaml:"ignore"`         // Glob patterns of file names to leave alone
	Categories    []string       `yaml:"categories"`     // Extra category folders to create at startup
	Buttons       []types.Button `yaml:"buttons"`        // Shortcut to category mappings
	Corpus        struct {
		Path string   `yaml:"path"` // Tag corpus file
		Seed []string `yaml:"seed"` // Tags added to a freshly created corpus
	} `yaml:"corpus"`
	Suggest struct {
		CacheSize int    `yaml:"cache_size"` // LRU capacity, keyed by query
		Matcher   string `yaml:"matcher"`    // hybrid, trigram or subsequence
		Limit     int    `yaml:"limit"`      // Max suggestions ranked, 0 = all
		Display   int    `yaml:"display"`    // Max suggestions the TUI shows, 0 = all
	} `yaml:"suggest"`
	Settings struct {
		Collision string `yaml:"collision"` // Collision strategy: rename, skip or overwrite
	} `yaml:"settings"`
	History struct {
		Enabled bool   `yaml:"enabled"` // Record every move attempt
		Path    string `yaml:"path"`    // SQLite database file
	} `yaml:"history"`
	Log struct {
		File  string `yaml:"file"`  // Log file, required for the TUI to keep logs
		JSON  bool   `yaml:"json"`  // JSON lines instead of text
		Debug bool   `yaml:"debug"` // Enable debug entries
	} `yaml:"log"`
	Theme struct {
		Name    string `yaml:"name"`    // Theme name (default, dark, light, etc.)
		Primary string `yaml:"primary"` // Primary color for branding
		Success string `yaml:"success"` // Success message color
		Warning string `yaml:"warning"` // Warning message color
		Error   string `yaml:"error"`   // Error message color
		Muted   string `yaml:"muted"`   // Secondary text color
	} `yaml:"theme"`
}

// ConfigDir returns ~/.config/tagsort
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tagsort")
	}
	return filepath.Join(home, ".config", "tagsort")
}

// DefaultPath returns the default configuration file location
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LoadConfig loads configuration from the default location
// (~/.config/tagsort/config.yaml).
func LoadConfig() (*Config, error) {
	return LoadConfigFile(DefaultPath())
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Fields absent from the file keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	cfg.fillTheme()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.DefaultFolder = "unsorted"
	cfg.OutputDir = "output"
	cfg.Extensions = append([]string(nil), DefaultExtensions...)
	cfg.Ignore = []string{}
	cfg.Categories = []string{}
	cfg.Buttons = []types.Button{}

	cfg.Corpus.Path = filepath.Join(ConfigDir(), "tags.yaml")
	cfg.Corpus.Seed = []string{}

	cfg.Suggest.CacheSize = DefaultCacheSize
	cfg.Suggest.Matcher = MatcherHybrid
	cfg.Suggest.Limit = 0
	cfg.Suggest.Display = 8

	// Never silently overwrite an earlier result
	cfg.Settings.Collision = CollisionRename

	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(ConfigDir(), "history.db")

	cfg.Log.File = filepath.Join(ConfigDir(), "tagsort.log")

	cfg.Theme.Name = "default"
	cfg.fillTheme()

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	validCollisions := map[string]bool{CollisionRename: true, CollisionSkip: true, CollisionOverwrite: true}
	if !validCollisions[c.Settings.Collision] {
		return invalid("settings.collision", "unknown collision strategy %q", c.Settings.Collision)
	}

	validMatchers := map[string]bool{MatcherHybrid: true, MatcherTrigram: true, MatcherSubsequence: true}
	if !validMatchers[c.Suggest.Matcher] {
		return invalid("suggest.matcher", "unknown matcher %q", c.Suggest.Matcher)
	}

	if c.Suggest.CacheSize < 1 {
		return invalid("suggest.cache_size", "cache size must be >= 1, got %d", c.Suggest.CacheSize)
	}
	if c.Suggest.Limit < 0 {
		return invalid("suggest.limit", "limit must be >= 0, got %d", c.Suggest.Limit)
	}
	if c.Suggest.Display < 0 {
		return invalid("suggest.display", "display must be >= 0, got %d", c.Suggest.Display)
	}

	if len(c.Extensions) == 0 {
		return invalid("extensions", "at least one extension is required")
	}
	for i, ext := range c.Extensions {
		if strings.TrimPrefix(ext, ".") == "" {
			return invalid("extensions", "extension %d is empty", i)
		}
	}

	if err := validCategory("default_folder", c.DefaultFolder); err != nil {
		return err
	}
	for i, category := range c.Categories {
		if err := validCategory(fmt.Sprintf("categories[%d]", i), category); err != nil {
			return err
		}
	}

	shortcuts := make(map[string]int)
	for i, button := range c.Buttons {
		param := fmt.Sprintf("buttons[%d]", i)
		if err := validCategory(param+".path", button.Path); err != nil {
			return err
		}
		if button.Shortcut == "" {
			continue
		}
		if utf8.RuneCountInString(button.Shortcut) != 1 {
			return invalid(param+".shortcut", "shortcut must be a single character, got %q", button.Shortcut)
		}
		if prev, dup := shortcuts[button.Shortcut]; dup {
			return invalid(param+".shortcut", "shortcut %q already used by buttons[%d]", button.Shortcut, prev)
		}
		shortcuts[button.Shortcut] = i
	}

	if c.Corpus.Path == "" {
		return invalid("corpus.path", "corpus path is required")
	}
	if c.History.Enabled && c.History.Path == "" {
		return invalid("history.path", "history path is required when history is enabled")
	}

	return nil
}

// validCategory rejects names that would escape or nest below the output directory
func validCategory(param, category string) error {
	if category == "" {
		return invalid(param, "category cannot be empty")
	}
	if strings.ContainsAny(category, `/\`) || category == "." || category == ".." {
		return invalid(param, "category %q must be a single folder name", category)
	}
	return nil
}

func invalid(param, format string, args ...interface{}) error {
	return errors.NewConfigError("invalid configuration", param, errors.InvalidConfig, fmt.Errorf(format, args...))
}

// CategoryFolders returns every category folder the configuration knows about,
// button paths first, then extra categories, then the default folder, without duplicates.
func (c *Config) CategoryFolders() []string {
	seen := make(map[string]bool)
	var folders []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		folders = append(folders, name)
	}

	for _, button := range c.Buttons {
		add(button.Path)
	}
	for _, category := range c.Categories {
		add(category)
	}
	add(c.DefaultFolder)
	return folders
}

// ButtonFor returns the button bound to shortcut
func (c *Config) ButtonFor(shortcut string) (types.Button, bool) {
	for _, button := range c.Buttons {
		if button.Shortcut == shortcut {
			return button, true
		}
	}
	return types.Button{}, false
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// NewTestConfig creates a configuration instance for testing purposes.
// Paths point below dir so tests never touch the user's config directory.
func NewTestConfig(dir string) *Config {
	cfg := defaultConfig()
	cfg.Buttons = []types.Button{
		{Label: "Memes", ButtonLabel: "M", Path: "memes", Shortcut: "m"},
		{Label: "Wallpapers", ButtonLabel: "W", Path: "wallpapers", Shortcut: "w"},
	}
	cfg.Corpus.Path = filepath.Join(dir, "tags.yaml")
	cfg.History.Path = filepath.Join(dir, "history.db")
	cfg.Log.File = ""
	return cfg
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary": "213", // Purple
			"success": "114", // Green
			"warning": "220", // Yellow
			"error":   "196", // Red
			"muted":   "245", // Grey
		},
		"dark": {
			"primary": "105", // Dark Blue
			"success": "78",  // Dark Green
			"warning": "214", // Dark Yellow
			"error":   "160", // Dark Red
			"muted":   "240", // Dark Grey
		},
		"light": {
			"primary": "135", // Light Purple
			"success": "150", // Light Green
			"warning": "222", // Light Yellow
			"error":   "210", // Light Red
			"muted":   "250", // Light Grey
		},
		"monochrome": {
			"primary": "255", // Bright White
			"success": "252", // White
			"warning": "248", // Grey
			"error":   "241", // Medium Grey
			"muted":   "238", // Dark Grey
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Muted = theme["muted"]
}

// fillTheme sets every color left empty from the named theme
func (c *Config) fillTheme() {
	theme := GetTheme(c.Theme.Name)
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = theme[key]
		}
	}
	fill(&c.Theme.Primary, "primary")
	fill(&c.Theme.Success, "success")
	fill(&c.Theme.Warning, "warning")
	fill(&c.Theme.Error, "error")
	fill(&c.Theme.Muted, "muted")
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
