package search

import (
	"context"
	"errors"
	"testing"

	"github.com/everseek/everseek/internal/domain"
)

var testOpts = Options{
	MinQueryLength:    1,
	MaxMissingLetters: 1,
	MaxRate:           15,
	MaxResults:        15,
}

// mockRepo records the term it was asked for and returns canned groups.
type mockRepo struct {
	gotTerm string
	groups  domain.Candidates
	err     error
}

func (m *mockRepo) Lookup(_ context.Context, term string) (domain.Candidates, error) {
	m.gotTerm = term
	if m.err != nil {
		return nil, m.err
	}
	return m.groups, nil
}

func TestSearch_TooShort(t *testing.T) {
	s := NewService(&mockRepo{}, testOpts, nil)

	_, err := s.Search(context.Background(), " T ")
	if !errors.Is(err, domain.ErrQueryTooShort) {
		t.Fatalf("expected ErrQueryTooShort, got %v", err)
	}
}

func TestSearch_RepoError(t *testing.T) {
	s := NewService(&mockRepo{err: errors.New("engine down")}, testOpts, nil)

	_, err := s.Search(context.Background(), "tcmd")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSearch_TranslatesCyrillicTerm(t *testing.T) {
	repo := &mockRepo{groups: domain.Candidates{}}
	s := NewService(repo, testOpts, nil)

	if _, err := s.Search(context.Background(), "есьв"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotTerm != "tcmd" {
		t.Errorf("repo term = %q, want %q", repo.gotTerm, "tcmd")
	}
}

func TestSearch_OrdersByRunCountThenRate(t *testing.T) {
	repo := &mockRepo{groups: domain.Candidates{
		"tcmd.exe": {
			domain.NewCandidate(`C:\tools`, "tcmd.exe", 0),
			domain.NewCandidate(`D:\portable`, "tcmd.exe", 5),
		},
		"totalcmd.exe": {
			domain.NewCandidate(`C:\totalcmd`, "totalcmd.exe", 0),
		},
	}}
	s := NewService(repo, testOpts, nil)

	matches, err := s.Search(context.Background(), "tcmd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("matches = %d, want 3", len(matches))
	}

	// Most launched first, then the closer basename.
	if matches[0].Path != `D:\portable\tcmd.exe` {
		t.Errorf("matches[0] = %q", matches[0].Path)
	}
	if matches[1].Path != `C:\tools\tcmd.exe` {
		t.Errorf("matches[1] = %q", matches[1].Path)
	}
	if matches[2].Path != `C:\totalcmd\totalcmd.exe` {
		t.Errorf("matches[2] = %q", matches[2].Path)
	}
}

func TestSearch_DropsFarCandidates(t *testing.T) {
	repo := &mockRepo{groups: domain.Candidates{
		"tcmd.exe": {
			domain.NewCandidate(`C:\tools`, "tcmd.exe", 0),
		},
		// Two query letters missing: over the missing-letters budget.
		"notepad.exe": {
			domain.NewCandidate(`C:\windows`, "notepad.exe", 9),
		},
	}}
	s := NewService(repo, testOpts, nil)

	matches, err := s.Search(context.Background(), "tcmd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].Base != "tcmd.exe" {
		t.Errorf("survivor = %q", matches[0].Base)
	}
}

func TestSearch_CapsResults(t *testing.T) {
	groups := domain.Candidates{"tc.exe": nil}
	for i := 0; i < 30; i++ {
		groups["tc.exe"] = append(groups["tc.exe"],
			domain.NewCandidate(`C:\copies`, "tc.exe", int64(i)))
	}
	s := NewService(&mockRepo{groups: groups}, Options{
		MinQueryLength:    1,
		MaxMissingLetters: 1,
		MaxRate:           15,
		MaxResults:        5,
	}, nil)

	matches, err := s.Search(context.Background(), "tc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 5 {
		t.Fatalf("matches = %d, want 5", len(matches))
	}
	if matches[0].RunCount != 29 {
		t.Errorf("top run count = %d, want 29", matches[0].RunCount)
	}
}
