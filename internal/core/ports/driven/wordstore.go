package driven

import (
	"context"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

// WordStore persists words and their per-file occurrence counts.
type WordStore interface {
	// Ingest records counts for an already stored file in one write.
	// Words are created on first sighting. Returns domain.ErrNotFound if
	// the file does not exist and domain.ErrAlreadyExists if the file was
	// already ingested. Nothing is written on failure.
	Ingest(ctx context.Context, fileID int64, counts map[string]int) error

	// Aggregates returns per-word totals, ordered by word ID.
	// A file scope restricts the result to words occurring in that file
	// and fills CountInFile. TotalFiles is read in the same snapshot as
	// the per-word counts.
	Aggregates(ctx context.Context, scope domain.StatsScope) ([]domain.WordAggregate, error)

	// Occurrences returns the occurrence rows of one file.
	Occurrences(ctx context.Context, fileID int64) ([]domain.Occurrence, error)
}
