package driving

import (
	"context"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

// FileService lists and serves uploaded files.
type FileService interface {
	// List returns all files.
	List(ctx context.Context) ([]domain.File, error)

	// Filter returns the files matching id: one file, or none.
	// An unknown id is an empty result, not an error.
	Filter(ctx context.Context, id int64) ([]domain.File, error)

	// Get retrieves a file by ID.
	Get(ctx context.Context, id int64) (*domain.File, error)

	// Retrieve loads a file's content for presentation.
	// Returns domain.ErrNotFound for an unknown id and
	// domain.ErrContentMissing when the bytes are absent.
	Retrieve(ctx context.Context, id int64, disposition domain.Disposition) (*FileContent, error)

	// Delete removes a file, its occurrences and its bytes.
	Delete(ctx context.Context, id int64) error
}

// FileContent is a file ready to be written to a client.
type FileContent struct {
	// File is the stored row.
	File domain.File

	// Disposition is how the content should be presented.
	Disposition domain.Disposition

	// ContentType is the MIME type of Body.
	ContentType string

	// Body is the raw bytes, or re-extracted text for inline documents.
	Body []byte
}
