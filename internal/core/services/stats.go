package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
	"github.com/custodia-labs/wordstats/internal/core/ports/driving"
	"github.com/custodia-labs/wordstats/internal/logger"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService derives word statistics from stored occurrences.
// Nothing is cached: every call reads the current committed state.
type StatsService struct {
	files driven.FileStore
	words driven.WordStore
}

// NewStatsService creates a new statistics service.
func NewStatsService(files driven.FileStore, words driven.WordStore) *StatsService {
	return &StatsService{
		files: files,
		words: words,
	}
}

// List returns statistics for every word in scope.
func (s *StatsService) List(ctx context.Context, scope domain.StatsScope) ([]domain.WordStats, error) {
	if id, ok := scope.FileID(); ok {
		if _, err := s.files.GetFile(ctx, id); err != nil {
			return nil, fmt.Errorf("file %d: %w", id, err)
		}
	}

	aggregates, err := s.words.Aggregates(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("aggregating words: %w", err)
	}

	stats := make([]domain.WordStats, 0, len(aggregates))
	for _, agg := range aggregates {
		stats = append(stats, domain.NewWordStats(agg))
	}

	logger.Debug("Statistics: %d words", len(stats))
	return stats, nil
}
