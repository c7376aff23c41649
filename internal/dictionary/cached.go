package dictionary

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/language"
)

// DefaultCacheSize is used when NewCached is given a non-positive size.
const DefaultCacheSize = 1024

// Cached remembers recent answers from another Checker.
type Cached struct {
	inner Checker
	cache *lru.Cache[string, bool]
}

// NewCached wraps inner with an LRU cache of size entries.
func NewCached(inner Checker, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, bool](size)
	if err != nil {
		return nil, fmt.Errorf("dictionary cache: %w", err)
	}
	return &Cached{inner: inner, cache: cache}, nil
}

// IsRecognized answers from the cache, asking the wrapped checker on a miss.
func (c *Cached) IsRecognized(word string, tag language.Tag) bool {
	key := langKey(tag) + "|" + word
	if ok, hit := c.cache.Get(key); hit {
		return ok
	}
	ok := c.inner.IsRecognized(word, tag)
	c.cache.Add(key, ok)
	return ok
}

// Len reports the size of the wrapped checker when it knows it.
func (c *Cached) Len() int {
	if n, ok := c.inner.(Counter); ok {
		return n.Len()
	}
	return 0
}
