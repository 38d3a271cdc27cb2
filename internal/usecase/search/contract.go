package search

import (
	"context"

	"github.com/everseek/everseek/internal/domain"
)

// Repository fetches launch candidates for a normalized term, grouped by
// lowercase basename.
type Repository interface {
	Lookup(ctx context.Context, term string) (domain.Candidates, error)
}
