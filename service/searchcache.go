package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/viccon/sturdyc"

	"todocore/cache"
	"todocore/todo"
)

const searchKeyPrefix = "Search"

// searchCache memoizes search results in-process so bursts of identical
// queries do not hammer the index. Every successful mutation flushes the
// tracked keys, keeping results visible through Search immediately after
// a write within one process.
type searchCache struct {
	client      *sturdyc.Client[[]todo.Item]
	keyRegistry *sync.Map
}

func newSearchCache(ttl time.Duration) *searchCache {
	return &searchCache{
		client:      sturdyc.New[[]todo.Item](1024, 16, ttl, 10),
		keyRegistry: &sync.Map{},
	}
}

func (s *searchCache) getOrFetch(ctx context.Context, query string, fetch func(ctx context.Context) ([]todo.Item, error)) ([]todo.Item, error) {
	key := cache.Key(searchKeyPrefix, query)
	s.keyRegistry.Store(key, struct{}{})
	return s.client.GetOrFetch(ctx, key, fetch)
}

// invalidateAll drops every tracked search key.
func (s *searchCache) invalidateAll() {
	var stale []string
	s.keyRegistry.Range(func(k, v any) bool {
		if key, ok := k.(string); ok && strings.HasPrefix(key, searchKeyPrefix) {
			stale = append(stale, key)
		}
		return true
	})

	for _, key := range stale {
		s.client.Delete(key)
		s.keyRegistry.Delete(key)
	}
}
