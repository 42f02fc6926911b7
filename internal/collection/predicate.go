package collection

import (
	"io/fs"
	"strings"

	"tagsort/internal/errors"

	"github.com/gobwas/glob"
)

// Predicate decides whether a directory entry is a file the collection manages
type Predicate struct {
	extensions map[string]struct{}
	ignore     []glob.Glob
}

// NewPredicate builds a predicate from an extension allow-list and a set of
// ignore patterns. Extensions are compared case-insensitively and may be
// given with or without the leading dot.
func NewPredicate(extensions []string, ignore []string) (*Predicate, error) {
	p := &Predicate{extensions: make(map[string]struct{}, len(extensions))}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext == "" {
			continue
		}
		p.extensions[ext] = struct{}{}
	}
	if len(p.extensions) == 0 {
		return nil, errors.NewConfigError("extension allow-list is empty", "extensions", errors.InvalidConfig, nil)
	}

	for _, pattern := range ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.NewConfigError("invalid ignore pattern", pattern, errors.InvalidConfig, err)
		}
		p.ignore = append(p.ignore, g)
	}
	return p, nil
}

// Match reports whether entry is a regular file with an allowed extension
// that no ignore pattern covers
func (p *Predicate) Match(entry fs.DirEntry) bool {
	if !entry.Type().IsRegular() {
		return false
	}
	return p.MatchName(entry.Name())
}

// MatchName applies the extension and ignore rules to a bare file name
func (p *Predicate) MatchName(name string) bool {
	ext := Extension(name)
	if ext == "" {
		return false
	}
	if _, ok := p.extensions[ext]; !ok {
		return false
	}
	for _, g := range p.ignore {
		if g.Match(name) {
			return false
		}
	}
	return true
}

// Extension returns the lower-cased text after the last dot of name, or ""
// when there is none
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
