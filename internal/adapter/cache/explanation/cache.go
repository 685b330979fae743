// Package explanation wraps a word explanation source with an in-memory,
// size- and TTL-bounded read-through cache.
package explanation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/shadowing-backend/internal/observe"
)

const (
	sourceCache    = "cache"
	sourceProvider = "provider"

	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

type source interface {
	Explain(ctx context.Context, word, lang string) (string, error)
}

// Cache is a read-through explanation cache. Unknown words ("" results) are
// cached too so they are not looked up again until they expire. Errors are
// never cached. Concurrent misses for the same word share one upstream call,
// which is bounded by the source's own timeout rather than by any caller.
type Cache struct {
	next    source
	lru     *expirable.LRU[string, string]
	group   singleflight.Group
	metrics *observe.Metrics
	log     *slog.Logger
}

// New creates a Cache holding at most size entries for ttl each.
func New(next source, size int, ttl time.Duration, metrics *observe.Metrics, logger *slog.Logger) *Cache {
	return &Cache{
		next:    next,
		lru:     expirable.NewLRU[string, string](size, nil, ttl),
		metrics: metrics,
		log:     logger.With("adapter", "explanation_cache"),
	}
}

// Explain returns the cached explanation of word or asks the wrapped source.
func (c *Cache) Explain(ctx context.Context, word, lang string) (string, error) {
	key := cacheKey(word, lang)

	if v, ok := c.lru.Get(key); ok {
		c.metrics.RecordExplanationLookup(ctx, sourceCache, resultHit)
		return v, nil
	}

	// The shared upstream call must outlive any single caller: it runs
	// detached from ctx and each caller only waits on its own ctx.
	ch := c.group.DoChan(key, func() (any, error) {
		explanation, err := c.next.Explain(context.WithoutCancel(ctx), word, lang)
		if err != nil {
			return "", err
		}
		c.lru.Add(key, explanation)
		return explanation, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if res.Err != nil {
		c.metrics.RecordExplanationLookup(ctx, sourceProvider, resultError)
		return "", res.Err
	}
	explanation := res.Val.(string)
	result := resultHit
	if explanation == "" {
		result = resultMiss
	}
	c.metrics.RecordExplanationLookup(ctx, sourceProvider, result)
	if res.Shared {
		c.log.DebugContext(ctx, "explanation lookup coalesced", slog.String("word", word))
	}

	return explanation, nil
}

func cacheKey(word, lang string) string {
	return strings.ToLower(strings.TrimSpace(lang)) + "\x00" + strings.ToLower(strings.Join(strings.Fields(word), " "))
}
