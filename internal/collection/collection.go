// Package collection holds the ordered set of files being sorted and moves
// them into category folders.
//
// A Collection is built once from a source directory. Entries are only ever
// removed, by successful moves, and the cursor is kept within bounds after
// every mutation.
package collection

import (
	"os"
	"path/filepath"
	"sync"

	"tagsort/internal/config"
	"tagsort/internal/errors"
	"tagsort/internal/log"
	"tagsort/pkg/types"
)

// Options configures a Collection
type Options struct {
	OutputDir  string     // Folder under root that holds the category folders
	Categories []string   // Category folders created at startup
	Predicate  *Predicate // Nil means the default extension allow-list
	Collision  string     // rename, skip or overwrite
	Logger     log.Logging
}

// Collection is a navigable, shrinking list of files in a source directory
type Collection struct {
	root      string
	outputDir string
	collision string
	entries   []string
	cursor    int
	totalSeen int
	logger    log.Logging
	mu        sync.Mutex

	// remove deletes the source after a copy; swapped in tests
	remove func(string) error
}

// New lists root once, keeps the entries the predicate accepts and makes sure
// root/<output>/<category> exists for every configured category.
func New(root string, opts Options) (*Collection, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	if opts.Collision == "" {
		opts.Collision = config.CollisionRename
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Predicate == nil {
		p, err := NewPredicate(config.DefaultExtensions, nil)
		if err != nil {
			return nil, err
		}
		opts.Predicate = p
	}

	switch opts.Collision {
	case config.CollisionRename, config.CollisionSkip, config.CollisionOverwrite:
	default:
		return nil, errors.NewConfigError("unknown collision strategy", opts.Collision, errors.InvalidConfig, nil)
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.NewFileError("cannot read source directory", root, errors.NotReadable, err)
	}

	entries := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if opts.Predicate.Match(entry) {
			entries = append(entries, entry.Name())
		}
	}
	if len(entries) == 0 {
		return nil, errors.NewFileError("no supported files in directory", root, errors.EmptyDirectory, nil)
	}

	c := &Collection{
		root:      root,
		outputDir: opts.OutputDir,
		collision: opts.Collision,
		entries:   entries,
		totalSeen: len(entries),
		logger:    opts.Logger.With(log.F("root", root)),
		remove:    os.Remove,
	}

	if err := c.ensureLayout(opts.Categories); err != nil {
		return nil, err
	}

	c.logger.With(log.F("files", len(entries)), log.F("listed", len(dirEntries))).Info("collection loaded")
	return c, nil
}

// NewWithConfig builds a Collection from the loaded configuration
func NewWithConfig(root string, cfg *config.Config) (*Collection, error) {
	predicate, err := NewPredicate(cfg.Extensions, cfg.Ignore)
	if err != nil {
		return nil, err
	}
	return New(root, Options{
		OutputDir:  cfg.OutputDir,
		Categories: cfg.CategoryFolders(),
		Predicate:  predicate,
		Collision:  cfg.Settings.Collision,
	})
}

func (c *Collection) ensureLayout(categories []string) error {
	for _, category := range categories {
		if err := validCategory(category); err != nil {
			return err
		}
		dir := filepath.Join(c.root, c.outputDir, category)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewFileError("cannot create category folder", dir, errors.FileCreateFailed, err)
		}
	}
	return nil
}

// Root returns the source directory
func (c *Collection) Root() string {
	return c.root
}

// OutputPath returns root/<output>, the parent of every category folder
func (c *Collection) OutputPath() string {
	return filepath.Join(c.root, c.outputDir)
}

// Current returns the entry under the cursor. ok is false once every file
// has been moved.
func (c *Collection) Current() (types.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current()
}

func (c *Collection) current() (types.Entry, bool) {
	if len(c.entries) == 0 {
		return types.Entry{}, false
	}
	name := c.entries[c.cursor]
	return types.Entry{
		Index: c.cursor,
		Name:  name,
		Path:  filepath.Join(c.root, name),
	}, true
}

// Next advances the cursor, stopping at the last entry
func (c *Collection) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seek(c.cursor + 1)
}

// Prev moves the cursor back, stopping at the first entry
func (c *Collection) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seek(c.cursor - 1)
}

// Seek places the cursor at pos clamped to [0, Len()-1]
func (c *Collection) Seek(pos int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seek(pos)
}

func (c *Collection) seek(pos int) {
	c.cursor = clamp(pos, 0, len(c.entries)-1)
}

// Cursor returns the current position
func (c *Collection) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Len returns the number of files still to sort
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Total returns the number of files found at startup. It never decreases.
func (c *Collection) Total() int {
	return c.totalSeen
}

// Empty reports whether every file has been moved
func (c *Collection) Empty() bool {
	return c.Len() == 0
}

// Entries returns a copy of the remaining file names in order
func (c *Collection) Entries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// removeCurrent drops the entry under the cursor and re-clamps
func (c *Collection) removeCurrent() {
	c.entries = append(c.entries[:c.cursor], c.entries[c.cursor+1:]...)
	c.seek(c.cursor)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
