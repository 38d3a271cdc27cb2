// Package querycache is a caching decorator over the candidate repository:
// search-as-you-type repeats the same prefixes constantly, and candidate
// sets stay valid for the TTL window.
package querycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/everseek/everseek/internal/db"
	"github.com/everseek/everseek/internal/domain"
)

// lookuper is the inner candidate repository (ISP).
type lookuper interface {
	Lookup(ctx context.Context, term string) (domain.Candidates, error)
}

// store is the consumer interface for the cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache decorates a candidate repository with a TTL cache.
type Cache struct {
	inner      lookuper
	store      store
	ttl        time.Duration
	keyPrefix  string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates the caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner lookuper,
	s store,
	ttl time.Duration,
	keyPrefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		keyPrefix:  keyPrefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// cached is the stored wire form of a candidate group set.
type cached struct {
	Groups map[string][]cachedCandidate `json:"groups"`
}

type cachedCandidate struct {
	Path     string `json:"path"`
	Dir      string `json:"dir"`
	Base     string `json:"base"`
	RunCount int64  `json:"run_count"`
}

// Lookup returns cached candidate groups or calls the inner repository.
// Store failures degrade to a miss, never to a user-facing error.
func (c *Cache) Lookup(ctx context.Context, term string) (domain.Candidates, error) {
	key := c.cacheKey(term)

	if groups, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return groups, nil
	}

	c.incCache("miss")

	groups, err := c.inner.Lookup(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", term, err)
	}

	c.putToCache(ctx, key, groups)
	return groups, nil
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) cacheKey(term string) string {
	h := sha256.Sum256([]byte(term))
	return c.keyPrefix + "query_cache:" + hex.EncodeToString(h[:])
}

func (c *Cache) getFromCache(ctx context.Context, key string) (domain.Candidates, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached candidates", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var wire cached
	if err := json.Unmarshal(data, &wire); err != nil {
		c.logger.Warn("Failed to parse cached candidates", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	groups := make(domain.Candidates, len(wire.Groups))
	for base, cands := range wire.Groups {
		out := make([]domain.Candidate, 0, len(cands))
		for _, cc := range cands {
			out = append(out, domain.Candidate{
				Path:     cc.Path,
				Dir:      cc.Dir,
				Base:     cc.Base,
				RunCount: cc.RunCount,
			})
		}
		groups[base] = out
	}
	return groups, true
}

func (c *Cache) putToCache(ctx context.Context, key string, groups domain.Candidates) {
	wire := cached{Groups: make(map[string][]cachedCandidate, len(groups))}
	for base, cands := range groups {
		out := make([]cachedCandidate, 0, len(cands))
		for _, cand := range cands {
			out = append(out, cachedCandidate{
				Path:     cand.Path,
				Dir:      cand.Dir,
				Base:     cand.Base,
				RunCount: cand.RunCount,
			})
		}
		wire.Groups[base] = out
	}

	data, err := json.Marshal(wire)
	if err != nil {
		c.logger.Warn("Failed to encode candidates for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache candidates", zap.String("key", key), zap.Error(err))
	}
}
