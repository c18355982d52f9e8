package driving

import (
	"context"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

// UploadService ingests new documents.
type UploadService interface {
	// Upload validates, extracts, counts and stores a document.
	// Validation failures wrap domain.ErrValidation; extraction failures
	// wrap domain.ErrDecode or domain.ErrFormat. Nothing is persisted on
	// failure.
	Upload(ctx context.Context, name string, content []byte) (*domain.File, error)
}
