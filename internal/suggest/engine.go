// Package suggest ranks corpus tags against a typed query and caches the
// rankings per query.
package suggest

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"tagsort/internal/config"
	"tagsort/internal/errors"
	"tagsort/internal/log"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Source is the corpus an Engine ranks. OnChange must call its listeners
// synchronously so the cache is purged before the next query.
type Source interface {
	Snapshot() []string
	OnChange(fn func())
}

// Stats reports cache effectiveness
type Stats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// Engine answers suggestion queries from a Source through an LRU cache
type Engine struct {
	mu      sync.Mutex
	source  Source
	matcher Matcher
	cache   *lru.Cache[string, []string]
	size    int
	limit   int
	logger  log.Logging

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Option configures an Engine
type Option func(*Engine)

// WithMatcher replaces the default hybrid matcher
func WithMatcher(m Matcher) Option {
	return func(e *Engine) {
		e.matcher = m
	}
}

// WithCacheSize sets how many queries are remembered
func WithCacheSize(size int) Option {
	return func(e *Engine) {
		e.size = size
	}
}

// WithLimit caps the number of suggestions returned; zero means all
func WithLimit(limit int) Option {
	return func(e *Engine) {
		e.limit = limit
	}
}

// WithLogger sets the logger
func WithLogger(l log.Logging) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine over source and subscribes it to corpus changes
func New(source Source, opts ...Option) (*Engine, error) {
	e := &Engine{
		source:  source,
		matcher: HybridMatcher{},
		size:    config.DefaultCacheSize,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.size <= 0 {
		return nil, errors.NewConfigError("cache size must be positive", "suggest.cache_size", errors.InvalidConfig, nil)
	}
	cache, err := lru.New[string, []string](e.size)
	if err != nil {
		return nil, errors.Wrap(err, "create suggestion cache")
	}
	e.cache = cache

	source.OnChange(e.Invalidate)
	return e, nil
}

// NewWithConfig creates an Engine using the suggest section of cfg
func NewWithConfig(source Source, cfg *config.Config) (*Engine, error) {
	matcher, err := MatcherFor(cfg.Suggest.Matcher)
	if err != nil {
		return nil, err
	}
	return New(source,
		WithMatcher(matcher),
		WithCacheSize(cfg.Suggest.CacheSize),
		WithLimit(cfg.Suggest.Limit),
	)
}

type scored struct {
	tag   string
	score float64
}

// Suggest returns the corpus tags matching query, best first. Ties keep corpus
// order. A blank query returns nothing and is not cached.
func (e *Engine) Suggest(query string) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if cached, ok := e.cache.Get(query); ok {
		e.hits.Add(1)
		return append([]string(nil), cached...)
	}
	e.misses.Add(1)

	var ranked []scored
	for _, tag := range e.source.Snapshot() {
		if s := e.matcher.Score(query, tag); s > 0 {
			ranked = append(ranked, scored{tag: tag, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if e.limit > 0 && len(ranked) > e.limit {
		ranked = ranked[:e.limit]
	}

	results := make([]string, len(ranked))
	for i, r := range ranked {
		results[i] = r.tag
	}
	e.cache.Add(query, results)
	e.logger.With(log.F("query", query), log.F("results", len(results))).Debug("suggestions computed")

	return append([]string(nil), results...)
}

// Invalidate drops every cached ranking
func (e *Engine) Invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.Purge()
	e.logger.Debug("suggestion cache invalidated")
}

// Stats returns the hit and miss counters and the number of cached queries
func (e *Engine) Stats() Stats {
	return Stats{
		Hits:   e.hits.Load(),
		Misses: e.misses.Load(),
		Size:   e.cache.Len(),
	}
}
