// Package index fetches launch candidates for a term from the search
// engine and filters them down to launchable files.
package index

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/everseek/everseek"
	"github.com/everseek/everseek/internal/domain"
	"github.com/everseek/everseek/internal/transport/everything"
)

// maxEngineHits caps the engine reply; ranking never surfaces more than a
// handful of results, and the engine's HTTP default of 32 is too low for
// wildcard terms.
const maxEngineHits = 512

// engine is the consumer interface for the search engine (ISP).
type engine interface {
	Search(ctx context.Context, q *everseek.Query) (*everything.Response, error)
}

// counters reads persisted run counts. May be nil when no store is
// configured; candidates then carry zero counts.
type counters interface {
	GetMulti(ctx context.Context, paths []string) (map[string]int64, error)
}

// Repo implements usecase/search.Repository against the engine.
type Repo struct {
	engine     engine
	counters   counters
	extensions map[string]struct{}
	extList    []string
	excluded   []string // lowercase path prefixes
	logger     *zap.Logger
}

// New creates a candidate repository.
// extensions are the launchable suffixes; excluded are path prefixes
// (matched case-insensitively against the full path) to drop.
func New(e engine, c counters, extensions, excluded []string, logger *zap.Logger) *Repo {
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	lowered := make([]string, 0, len(excluded))
	for _, p := range excluded {
		if p != "" {
			lowered = append(lowered, strings.ToLower(p))
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{
		engine:     e,
		counters:   c,
		extensions: extSet,
		extList:    append([]string(nil), extensions...),
		excluded:   lowered,
		logger:     logger,
	}
}

// Lookup queries the engine for the normalized term and groups the
// surviving hits by lowercase basename.
func (r *Repo) Lookup(ctx context.Context, term string) (domain.Candidates, error) {
	q := everseek.NewQuery(everseek.Interleave(term)).
		Extensions(r.extList...).
		WholeWord().
		Max(maxEngineHits)

	resp, err := r.engine.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("engine lookup %q: %w", term, err)
	}

	var paths []string
	kept := make([]everything.Hit, 0, len(resp.Hits))
	for _, h := range resp.Hits {
		if !r.keep(h) {
			continue
		}
		kept = append(kept, h)
		paths = append(paths, domain.JoinPath(h.Path, h.Name))
	}

	counts := r.runCounts(ctx, paths)

	groups := make(domain.Candidates)
	for _, h := range kept {
		c := domain.NewCandidate(h.Path, h.Name, counts[domain.JoinPath(h.Path, h.Name)])
		groups[c.Base] = append(groups[c.Base], c)
	}
	return groups, nil
}

// keep drops folders, files outside the enabled extensions, and anything
// under an excluded path prefix.
func (r *Repo) keep(h everything.Hit) bool {
	if h.Type == "folder" {
		return false
	}

	name := strings.ToLower(h.Name)
	dot := strings.LastIndex(name, ".")
	if dot < 0 || dot == len(name)-1 {
		return false
	}
	if _, ok := r.extensions[name[dot+1:]]; !ok {
		return false
	}

	full := strings.ToLower(domain.JoinPath(h.Path, h.Name))
	for _, prefix := range r.excluded {
		if strings.HasPrefix(full, prefix) {
			return false
		}
	}
	return true
}

// runCounts reads counters, degrading to zero counts on store failure.
func (r *Repo) runCounts(ctx context.Context, paths []string) map[string]int64 {
	if r.counters == nil || len(paths) == 0 {
		return nil
	}
	counts, err := r.counters.GetMulti(ctx, paths)
	if err != nil {
		r.logger.Warn("Failed to read run counts", zap.Error(err))
		return nil
	}
	return counts
}
