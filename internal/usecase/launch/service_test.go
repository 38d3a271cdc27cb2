package launch

import (
	"context"
	"errors"
	"testing"
)

type mockStarter struct {
	gotPath string
	err     error
}

func (m *mockStarter) Start(path string) error {
	m.gotPath = path
	return m.err
}

type mockCounter struct {
	gotPath string
	err     error
}

func (m *mockCounter) Increment(_ context.Context, path string) (int64, error) {
	m.gotPath = path
	if m.err != nil {
		return 0, m.err
	}
	return 1, nil
}

func TestLaunch(t *testing.T) {
	st := &mockStarter{}
	ct := &mockCounter{}
	s := NewService(st, ct, nil)

	if err := s.Launch(context.Background(), `C:\tools\tcmd.exe`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.gotPath != `C:\tools\tcmd.exe` {
		t.Errorf("starter path = %q", st.gotPath)
	}
	if ct.gotPath != `C:\tools\tcmd.exe` {
		t.Errorf("counter path = %q", ct.gotPath)
	}
}

func TestLaunch_EmptyPath(t *testing.T) {
	s := NewService(&mockStarter{}, nil, nil)

	if err := s.Launch(context.Background(), ""); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

func TestLaunch_StarterError(t *testing.T) {
	ct := &mockCounter{}
	s := NewService(&mockStarter{err: errors.New("no handler")}, ct, nil)

	if err := s.Launch(context.Background(), `C:\tools\tcmd.exe`); err == nil {
		t.Fatal("expected error")
	}
	if ct.gotPath != "" {
		t.Error("failed launch must not be counted")
	}
}

func TestLaunch_CounterErrorIsNotFatal(t *testing.T) {
	s := NewService(&mockStarter{}, &mockCounter{err: errors.New("store down")}, nil)

	if err := s.Launch(context.Background(), `C:\tools\tcmd.exe`); err != nil {
		t.Fatalf("counter failure must not fail the launch: %v", err)
	}
}

func TestLaunch_NilCounter(t *testing.T) {
	s := NewService(&mockStarter{}, nil, nil)

	if err := s.Launch(context.Background(), `C:\tools\tcmd.exe`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
