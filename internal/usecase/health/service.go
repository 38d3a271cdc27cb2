// Package health reports the readiness of the plugin's backing services.
package health

import "context"

// Status is the overall health state.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
	StatusError    Status = "error"
)

// CheckResult is the outcome of a single dependency check.
type CheckResult struct {
	Status string `json:"status"` // "ok" / "error" / "disabled"
	Error  string `json:"error,omitempty"`
}

// Report aggregates all dependency checks.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Pinger probes a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service runs the health checks. store may be nil when no cache or
// run-count store is configured; that is reported as disabled, not broken.
type Service struct {
	engine Pinger
	store  Pinger
}

// NewService creates a health service.
func NewService(engine, store Pinger) *Service {
	return &Service{engine: engine, store: store}
}

// Check probes the engine and the store. A dead engine makes the plugin
// useless, so it downgrades the report to error; a dead store only
// degrades it.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Status: StatusOK,
		Checks: make(map[string]CheckResult),
	}

	if err := s.engine.Ping(ctx); err != nil {
		report.Status = StatusError
		report.Checks["engine"] = CheckResult{Status: "error", Error: err.Error()}
	} else {
		report.Checks["engine"] = CheckResult{Status: "ok"}
	}

	switch {
	case s.store == nil:
		report.Checks["store"] = CheckResult{Status: "disabled"}
	default:
		if err := s.store.Ping(ctx); err != nil {
			if report.Status == StatusOK {
				report.Status = StatusDegraded
			}
			report.Checks["store"] = CheckResult{Status: "error", Error: err.Error()}
		} else {
			report.Checks["store"] = CheckResult{Status: "ok"}
		}
	}

	return report
}
