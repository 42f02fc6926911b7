// Package corpus persists the set of known tags offered as name suggestions.
package corpus

import (
	_ "embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"tagsort/internal/config"
	"tagsort/internal/errors"
	"tagsort/internal/log"

	"gopkg.in/yaml.v3"
)

//go:embed default_tags.yaml
var defaultCorpus []byte

// Store is an insertion-ordered set of tags backed by a YAML file.
// Every change rewrites the whole file and then notifies OnChange listeners.
type Store struct {
	mu        sync.RWMutex
	path      string
	tags      []string
	set       map[string]struct{}
	listeners []func()
}

// Default returns the built-in corpus
func Default() []string {
	tags, err := decode(defaultCorpus)
	if err != nil {
		// The embedded file is part of the binary
		panic(err)
	}
	return tags
}

// Load reads the corpus at path. A missing file is seeded from the built-in
// corpus plus seed and written out; an unparsable one is a MalformedCorpus error.
func Load(path string, seed ...string) (*Store, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s := newStore(path, append(Default(), seed...))
		if err := s.save(); err != nil {
			log.LogWithError(err).Warn("tag corpus not written, continuing with built-in tags")
		} else {
			log.LogWithFields(log.F("path", path), log.F("tags", len(s.tags))).Info("seeded tag corpus")
		}
		return s, nil
	case err != nil:
		return nil, errors.NewConfigError("cannot read tag corpus", path, errors.NotReadable, err)
	}

	tags, err := decode(data)
	if err != nil {
		return nil, errors.NewConfigError("malformed tag corpus", path, errors.MalformedCorpus, err)
	}

	s := newStore(path, tags)
	log.LogWithFields(log.F("path", path), log.F("tags", len(s.tags))).Debug("loaded tag corpus")
	return s, nil
}

// LoadWithConfig loads the corpus named by the configuration
func LoadWithConfig(cfg *config.Config) (*Store, error) {
	return Load(cfg.Corpus.Path, cfg.Corpus.Seed...)
}

// NewMemory returns a store that is never written to disk
func NewMemory(tags ...string) *Store {
	return newStore("", tags)
}

func newStore(path string, tags []string) *Store {
	s := &Store{
		path: path,
		set:  make(map[string]struct{}, len(tags)),
	}
	for _, tag := range tags {
		s.insert(tag)
	}
	return s
}

func decode(data []byte) ([]string, error) {
	var tags []string
	if err := yaml.Unmarshal(data, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// insert adds tag to the in-memory set and reports whether it was new
func (s *Store) insert(tag string) bool {
	if tag == "" {
		return false
	}
	if _, ok := s.set[tag]; ok {
		return false
	}
	s.set[tag] = struct{}{}
	s.tags = append(s.tags, tag)
	return true
}

// Add inserts tag and rewrites the corpus file. Adding a tag that is already
// known is a no-op and returns false. Listeners run before Add returns.
func (s *Store) Add(tag string) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, errors.NewInvalidInputError("tag cannot be empty", nil)
	}

	s.mu.Lock()
	if !s.insert(tag) {
		s.mu.Unlock()
		return false, nil
	}
	if err := s.save(); err != nil {
		// Roll back so memory matches the file
		delete(s.set, tag)
		s.tags = s.tags[:len(s.tags)-1]
		s.mu.Unlock()
		return false, err
	}
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	log.LogWithFields(log.F("tag", tag), log.F("tags", s.Len())).Debug("tag added")
	return true, nil
}

// save writes every tag to the backing file. Callers hold the lock.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(s.tags)
	if err != nil {
		return errors.NewConfigError("cannot encode tag corpus", s.path, errors.MalformedCorpus, err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewFileError("cannot create corpus directory", dir, errors.FileCreateFailed, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.NewFileError("cannot write tag corpus", s.path, errors.FileCreateFailed, err)
	}
	return nil
}

// OnChange registers fn to run after every successful Add
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns the tags in insertion order
func (s *Store) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// Contains reports whether tag is known
func (s *Store) Contains(tag string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.set[tag]
	return ok
}

// Len returns the number of tags
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tags)
}

// Path returns the backing file, empty for in-memory stores
func (s *Store) Path() string {
	return s.path
}
