// Package runtime provides small runtime-support wrappers consumed by
// native functions: currently a cached coregex wrapper backing the
// matches native.
package runtime

import (
	"sync"

	"github.com/coregx/coregex"
)

// Regex wraps coregex for the matches native, compiled in POSIX
// leftmost-longest mode so repeated matches against the same pattern
// are deterministic regardless of alternation order.
type Regex struct {
	pattern string
	re      *coregex.Regexp
}

// Compile compiles pattern in POSIX leftmost-longest mode.
func Compile(pattern string) (*Regex, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	re.Longest()
	return &Regex{pattern: pattern, re: re}, nil
}

// Pattern returns the original pattern string.
func (r *Regex) Pattern() string { return r.pattern }

// MatchString reports whether s contains any match.
func (r *Regex) MatchString(s string) bool { return r.re.MatchString(s) }

// RegexCache caches compiled patterns, avoiding recompilation when the
// same literal pattern is matched repeatedly inside a loop.
type RegexCache struct {
	cache   sync.Map // map[string]*Regex
	orderMu sync.Mutex
	order   []string
	size    int32
	maxSize int
}

// NewRegexCache creates a cache holding up to maxSize compiled patterns.
func NewRegexCache(maxSize int) *RegexCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &RegexCache{order: make([]string, 0, maxSize), maxSize: maxSize}
}

// Get returns a compiled regex for pattern, compiling and caching it
// if this is the first request for that exact pattern string.
func (c *RegexCache) Get(pattern string) (*Regex, error) {
	if re, ok := c.cache.Load(pattern); ok {
		return re.(*Regex), nil
	}
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	if existing, loaded := c.cache.LoadOrStore(pattern, re); loaded {
		return existing.(*Regex), nil
	}
	c.orderMu.Lock()
	c.order = append(c.order, pattern)
	c.size++
	for int(c.size) > c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.cache.Delete(oldest)
		c.size--
	}
	c.orderMu.Unlock()
	return re, nil
}
