package selection

import (
	"log/slog"
	"sync"
	"time"

	"github.com/muesli/cache2go"
)

const (
	defaultCacheTTL        = 5 * time.Minute
	defaultCacheName       = "selection-cache"
	defaultCacheMaxEntries = 1000

	// MaxCachedInputLen is the longest raw selection that is cached. Longer
	// inputs are parsed on every request.
	MaxCachedInputLen = 1024
)

// Parser memoizes Parse results per raw string. Selections are immutable, so
// a cached value can be handed to concurrent requests. Parse failures, inputs
// longer than MaxCachedInputLen and anything past the entry limit are not
// cached.
type Parser struct {
	mu         sync.Mutex
	cache      *cache2go.CacheTable
	ttl        time.Duration
	maxEntries int
	logger     *slog.Logger
}

// ParserOption configures a Parser at construction time.
type ParserOption func(*Parser)

// WithTTL overrides the default entry TTL. A non-positive duration disables
// caching entirely.
func WithTTL(ttl time.Duration) ParserOption {
	return func(p *Parser) {
		p.ttl = ttl
	}
}

// WithMaxEntries caps the number of cached selections. Once the cap is
// reached new inputs are parsed without being cached until entries expire.
// A non-positive value disables caching.
func WithMaxEntries(n int) ParserOption {
	return func(p *Parser) {
		p.maxEntries = n
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithCacheName overrides the cache table name. Tests use it to get isolated
// tables.
func WithCacheName(name string) ParserOption {
	return func(p *Parser) {
		if name != "" {
			p.cache = cache2go.Cache(name)
		}
	}
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		cache:      cache2go.Cache(defaultCacheName),
		ttl:        defaultCacheTTL,
		maxEntries: defaultCacheMaxEntries,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// cachedSelection distinguishes a cached absent selection from a cache miss.
type cachedSelection struct {
	sel *Selection
}

// Parse behaves like the package level Parse.
func (p *Parser) Parse(raw string) (*Selection, error) {
	if p == nil || p.ttl <= 0 || p.maxEntries <= 0 || len(raw) > MaxCachedInputLen {
		return Parse(raw)
	}

	if item, err := p.cache.Value(raw); err == nil {
		p.logDebug("selection cache hit", "raw", raw)
		return item.Data().(*cachedSelection).sel, nil
	}

	sel, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cache.Count() >= p.maxEntries {
		p.logDebug("selection cache full", "entries", p.cache.Count())
		return sel, nil
	}
	p.logDebug("selection cache miss", "raw", raw, "selection", sel.String())
	p.cache.Add(raw, p.ttl, &cachedSelection{sel: sel})
	return sel, nil
}

// Len returns the number of cached selections.
func (p *Parser) Len() int {
	return p.cache.Count()
}

// Flush drops every cached selection.
func (p *Parser) Flush() {
	p.mu.Lock()
	p.cache.Flush()
	p.mu.Unlock()
}

func (p *Parser) logDebug(msg string, args ...any) {
	if p != nil && p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
