// Package stats summarizes plugin usage from the run-count store.
package stats

import (
	"context"
	"fmt"
)

// Report is a usage snapshot.
type Report struct {
	StoreEnabled bool  `json:"store_enabled"`
	Launches     int64 `json:"launches"`      // launches recorded across all files
	TrackedFiles int64 `json:"tracked_files"` // distinct files with a run count
}

// counterReader reads launch aggregates. May be nil when no store is
// configured; the report then only says so.
type counterReader interface {
	Total(ctx context.Context) (int64, error)
	Tracked(ctx context.Context) (int64, error)
}

// Service builds usage reports.
type Service struct {
	counters counterReader
}

// NewService creates a stats service.
func NewService(counters counterReader) *Service {
	return &Service{counters: counters}
}

// Report reads the current usage snapshot.
func (s *Service) Report(ctx context.Context) (Report, error) {
	if s.counters == nil {
		return Report{}, nil
	}

	launches, err := s.counters.Total(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read launch total: %w", err)
	}
	tracked, err := s.counters.Tracked(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read tracked files: %w", err)
	}

	return Report{
		StoreEnabled: true,
		Launches:     launches,
		TrackedFiles: tracked,
	}, nil
}
