package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	s := NewService(&mockPinger{}, &mockPinger{})

	report := s.Check(context.Background())
	if report.Status != StatusOK {
		t.Errorf("Status = %s, want %s", report.Status, StatusOK)
	}
	if report.Checks["engine"].Status != "ok" {
		t.Errorf("engine = %+v", report.Checks["engine"])
	}
	if report.Checks["store"].Status != "ok" {
		t.Errorf("store = %+v", report.Checks["store"])
	}
}

func TestCheck_EngineDown(t *testing.T) {
	s := NewService(&mockPinger{err: errors.New("connection refused")}, &mockPinger{})

	report := s.Check(context.Background())
	if report.Status != StatusError {
		t.Errorf("Status = %s, want %s", report.Status, StatusError)
	}
	if report.Checks["engine"].Error == "" {
		t.Error("engine check should carry the error")
	}
}

func TestCheck_StoreDown(t *testing.T) {
	s := NewService(&mockPinger{}, &mockPinger{err: errors.New("redis down")})

	report := s.Check(context.Background())
	if report.Status != StatusDegraded {
		t.Errorf("Status = %s, want %s", report.Status, StatusDegraded)
	}
}

func TestCheck_StoreDisabled(t *testing.T) {
	s := NewService(&mockPinger{}, nil)

	report := s.Check(context.Background())
	if report.Status != StatusOK {
		t.Errorf("Status = %s, want %s", report.Status, StatusOK)
	}
	if report.Checks["store"].Status != "disabled" {
		t.Errorf("store = %+v", report.Checks["store"])
	}
}
