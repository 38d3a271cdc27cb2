// Package launch opens a selected result and records the launch.
package launch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/everseek/everseek/internal/metrics"
)

// ErrEmptyPath is returned for a launch request without a target.
var ErrEmptyPath = errors.New("launch: empty path")

// Starter opens a file with its associated application. The default
// implementation is platform-specific; tests inject their own.
type Starter interface {
	Start(path string) error
}

// counter increments the persisted run count. May be nil when no store is
// configured; launches then go unrecorded.
type counter interface {
	Increment(ctx context.Context, path string) (int64, error)
}

// Service launches files and keeps run counts.
type Service struct {
	starter Starter
	counter counter
	logger  *zap.Logger
}

// NewService creates a launch service. starter defaults to the platform
// opener when nil.
func NewService(starter Starter, c counter, logger *zap.Logger) *Service {
	if starter == nil {
		starter = defaultStarter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{starter: starter, counter: c, logger: logger}
}

// Launch opens the file at path. The run count is incremented on success;
// a counter failure is logged but never fails the launch.
func (s *Service) Launch(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if err := s.starter.Start(path); err != nil {
		metrics.LaunchesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("launch %q: %w", path, err)
	}
	metrics.LaunchesTotal.WithLabelValues("success").Inc()

	if s.counter != nil {
		if n, err := s.counter.Increment(ctx, path); err != nil {
			s.logger.Warn("Failed to record launch", zap.String("path", path), zap.Error(err))
		} else {
			s.logger.Debug("Launch recorded", zap.String("path", path), zap.Int64("count", n))
		}
	}
	return nil
}
