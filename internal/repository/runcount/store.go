// Package runcount persists per-file launch counters used to bias ranking
// toward frequently used entries.
package runcount

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/everseek/everseek/internal/db"
)

// store is the consumer interface for counter operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Store keeps launch counters keyed by hashed lowercase path. Counters
// never expire.
type Store struct {
	store     store
	keyPrefix string
}

// New creates a run counter store.
func New(s store, keyPrefix string) *Store {
	return &Store{store: s, keyPrefix: keyPrefix}
}

// Increment bumps the counter for a path and the aggregate total, and
// returns the new per-path value.
func (s *Store) Increment(ctx context.Context, path string) (int64, error) {
	n, err := s.store.IncrBy(ctx, s.key(path), 1)
	if err != nil {
		return 0, fmt.Errorf("increment run count: %w", err)
	}
	if _, err := s.store.IncrBy(ctx, s.totalKey(), 1); err != nil {
		return n, fmt.Errorf("increment run count total: %w", err)
	}
	return n, nil
}

// Get returns the counter for a path, 0 when absent.
func (s *Store) Get(ctx context.Context, path string) (int64, error) {
	return s.getKey(ctx, s.key(path))
}

// GetMulti returns counters for the given paths. Absent paths map to 0.
func (s *Store) GetMulti(ctx context.Context, paths []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(paths))
	for _, p := range paths {
		n, err := s.Get(ctx, p)
		if err != nil {
			return nil, err
		}
		counts[p] = n
	}
	return counts, nil
}

// Total returns the aggregate number of launches.
func (s *Store) Total(ctx context.Context) (int64, error) {
	return s.getKey(ctx, s.totalKey())
}

// Tracked returns the number of distinct paths with a counter.
func (s *Store) Tracked(ctx context.Context) (int64, error) {
	keys, err := s.store.Scan(ctx, s.keyPrefix+"runcount:*")
	if err != nil {
		return 0, fmt.Errorf("scan run counts: %w", err)
	}
	return int64(len(keys)), nil
}

func (s *Store) getKey(ctx context.Context, key string) (int64, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get run count: %w", err)
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse run count %q: %w", data, err)
	}
	return n, nil
}

func (s *Store) key(path string) string {
	h := sha256.Sum256([]byte(strings.ToLower(path)))
	return s.keyPrefix + "runcount:" + hex.EncodeToString(h[:])
}

func (s *Store) totalKey() string {
	return s.keyPrefix + "runcount_total"
}
