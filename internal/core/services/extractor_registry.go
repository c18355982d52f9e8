package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
)

// Ensure ExtractorRegistry implements the interface.
var _ driven.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry maps each domain.Format to its extractor.
type ExtractorRegistry struct {
	mu         sync.RWMutex
	extractors map[domain.Format]driven.Extractor
}

// NewExtractorRegistry creates a registry holding the given extractors.
func NewExtractorRegistry(extractors ...driven.Extractor) *ExtractorRegistry {
	r := &ExtractorRegistry{
		extractors: make(map[domain.Format]driven.Extractor, len(extractors)),
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor, replacing any previous one for its format.
func (r *ExtractorRegistry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[extractor.Format()] = extractor
}

// Extract dispatches to the extractor registered for format.
func (r *ExtractorRegistry) Extract(ctx context.Context, format domain.Format, content []byte) (string, error) {
	r.mu.RLock()
	extractor, ok := r.extractors[format]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: format %s", domain.ErrUnsupportedType, format)
	}
	return extractor.Extract(ctx, content)
}

// Formats returns the registered formats in ascending order.
func (r *ExtractorRegistry) Formats() []domain.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]domain.Format, 0, len(r.extractors))
	for f := range r.extractors {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
