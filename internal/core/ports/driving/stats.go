package driving

import (
	"context"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

// StatsService computes word statistics on demand.
type StatsService interface {
	// List returns statistics for every word in scope.
	// A file scope for an unknown file fails with domain.ErrNotFound.
	List(ctx context.Context, scope domain.StatsScope) ([]domain.WordStats, error)
}
