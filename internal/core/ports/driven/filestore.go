package driven

import (
	"context"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

// FileStore persists uploaded file rows.
type FileStore interface {
	// CreateFile inserts file together with one occurrence per entry in
	// counts, atomically. ID and UploadedAt are set on success.
	CreateFile(ctx context.Context, file *domain.File, counts map[string]int) error

	// GetFile retrieves a file by ID.
	// Returns domain.ErrNotFound if absent.
	GetFile(ctx context.Context, id int64) (*domain.File, error)

	// ListFiles returns all files ordered by ID.
	ListFiles(ctx context.Context) ([]domain.File, error)

	// CountFiles returns the number of files.
	CountFiles(ctx context.Context) (int, error)

	// DeleteFile removes a file and its occurrences.
	// Returns domain.ErrNotFound if absent.
	DeleteFile(ctx context.Context, id int64) error
}
