// Package search turns raw launcher input into a ranked list of files.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/everseek/everseek/internal/domain"
	"github.com/everseek/everseek/internal/domain/layout"
	"github.com/everseek/everseek/internal/metrics"
)

// Options are the ranking tunables.
type Options struct {
	MinQueryLength    int     // terms of this length or shorter are rejected
	MaxMissingLetters int     // candidates missing more query letters are dropped
	MaxRate           float64 // candidates rated above this are dropped
	MaxResults        int     // cap on the returned matches
}

// Service ranks engine candidates against the query term.
type Service struct {
	repo   Repository
	opts   Options
	logger *zap.Logger
}

// NewService creates a search service.
func NewService(repo Repository, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, opts: opts, logger: logger}
}

// Search normalizes the raw input, fixes a wrong keyboard layout, looks up
// candidates and returns them ranked. Matches are ordered by run count
// (most launched first), then by rate (closest first), then by basename.
func (s *Service) Search(ctx context.Context, raw string) ([]domain.Match, error) {
	start := time.Now()

	term := domain.Normalize(raw)
	if len([]rune(term)) <= s.opts.MinQueryLength {
		metrics.QueriesTotal.WithLabelValues("too_short").Inc()
		return nil, fmt.Errorf("term %q: %w", term, domain.ErrQueryTooShort)
	}

	if layout.IsCyrillic(term) {
		translated := layout.Translate(term)
		s.logger.Debug("Translated keyboard layout",
			zap.String("from", term), zap.String("to", translated))
		term = translated
	}

	groups, err := s.repo.Lookup(ctx, term)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	matches := s.rank(term, groups)

	metrics.QueryDuration.Observe(time.Since(start).Seconds())
	metrics.ResultsReturned.Observe(float64(len(matches)))
	if len(matches) == 0 {
		metrics.QueriesTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.QueriesTotal.WithLabelValues("ok").Inc()
	}

	s.logger.Debug("Query ranked",
		zap.String("term", term),
		zap.Int("candidates", len(groups)),
		zap.Int("matches", len(matches)),
		zap.Duration("took", time.Since(start)))

	return matches, nil
}

// rank scores each basename group once and flattens the survivors.
func (s *Service) rank(term string, groups domain.Candidates) []domain.Match {
	var matches []domain.Match
	for base, cands := range groups {
		if missingLetters(term, base) > s.opts.MaxMissingLetters {
			continue
		}
		r := rate(term, base)
		if r > s.opts.MaxRate {
			continue
		}
		for _, c := range cands {
			matches = append(matches, domain.Match{Candidate: c, Rate: r})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.RunCount != b.RunCount {
			return a.RunCount > b.RunCount
		}
		if a.Rate != b.Rate {
			return a.Rate < b.Rate
		}
		if a.Base != b.Base {
			return a.Base < b.Base
		}
		return a.Path < b.Path
	})

	if s.opts.MaxResults > 0 && len(matches) > s.opts.MaxResults {
		matches = matches[:s.opts.MaxResults]
	}
	return matches
}
