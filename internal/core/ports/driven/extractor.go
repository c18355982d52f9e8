package driven

import (
	"context"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

// Extractor turns the raw bytes of one document format into text.
type Extractor interface {
	// Format returns the format this extractor handles.
	Format() domain.Format

	// Extract returns the text content of a document.
	// Malformed input fails with domain.ErrDecode or domain.ErrFormat.
	Extract(ctx context.Context, content []byte) (string, error)
}

// ExtractorRegistry selects the extractor for a format.
// The set of formats is closed; see domain.Format.
type ExtractorRegistry interface {
	// Register adds an extractor, replacing any previous one for its format.
	Register(extractor Extractor)

	// Extract dispatches to the extractor registered for format.
	// An unregistered format fails with domain.ErrUnsupportedType.
	Extract(ctx context.Context, format domain.Format, content []byte) (string, error)

	// Formats returns the registered formats.
	Formats() []domain.Format
}
