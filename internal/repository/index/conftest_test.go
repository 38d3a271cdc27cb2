package index

import (
	"context"
	"testing"

	"github.com/everseek/everseek"
	"github.com/everseek/everseek/internal/transport/everything"
)

// mockEngine implements the consumer interface for tests.
type mockEngine struct {
	searchFn func(ctx context.Context, q *everseek.Query) (*everything.Response, error)
	lastQ    *everseek.Query
}

func (m *mockEngine) Search(ctx context.Context, q *everseek.Query) (*everything.Response, error) {
	m.lastQ = q
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &everything.Response{}, nil
}

// mockCounters implements the counters consumer interface.
type mockCounters struct {
	counts map[string]int64
	err    error
	called bool
}

func (m *mockCounters) GetMulti(_ context.Context, paths []string) (map[string]int64, error) {
	m.called = true
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]int64, len(paths))
	for _, p := range paths {
		out[p] = m.counts[p]
	}
	return out, nil
}

func newTestRepo(t *testing.T, e *mockEngine, c *mockCounters) *Repo {
	t.Helper()
	// Keep the interface nil when no counters are given; a typed nil
	// pointer would look non-nil to the repo.
	var cc counters
	if c != nil {
		cc = c
	}
	return New(
		e, cc,
		[]string{"exe", "bat", "lnk"},
		[]string{`c:\windows\winsxs`},
		nil,
	)
}

func hit(name, dir string) everything.Hit {
	return everything.Hit{Type: "file", Name: name, Path: dir}
}
