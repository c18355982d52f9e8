package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
	"github.com/custodia-labs/wordstats/internal/core/ports/driving"
	"github.com/custodia-labs/wordstats/internal/logger"
)

// Ensure FileService implements the interface.
var _ driving.FileService = (*FileService)(nil)

// FileService lists uploaded files and serves their content.
type FileService struct {
	files      driven.FileStore
	blobs      driven.BlobStore
	extractors driven.ExtractorRegistry
}

// NewFileService creates a new file service.
func NewFileService(
	files driven.FileStore,
	blobs driven.BlobStore,
	extractors driven.ExtractorRegistry,
) *FileService {
	return &FileService{
		files:      files,
		blobs:      blobs,
		extractors: extractors,
	}
}

// List returns all files.
func (s *FileService) List(ctx context.Context) ([]domain.File, error) {
	files, err := s.files.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []domain.File{}
	}
	return files, nil
}

// Filter returns the file with the given id as a one-element slice,
// or an empty slice when there is none.
func (s *FileService) Filter(ctx context.Context, id int64) ([]domain.File, error) {
	file, err := s.files.GetFile(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.File{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []domain.File{*file}, nil
}

// Get retrieves a file by ID.
func (s *FileService) Get(ctx context.Context, id int64) (*domain.File, error) {
	return s.files.GetFile(ctx, id)
}

// Retrieve loads a file's content for presentation.
func (s *FileService) Retrieve(
	ctx context.Context,
	id int64,
	disposition domain.Disposition,
) (*driving.FileContent, error) {
	if !disposition.IsValid() {
		return nil, fmt.Errorf("%w: disposition %q", domain.ErrInvalidInput, disposition)
	}

	file, err := s.files.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !file.HasContent() {
		return nil, fmt.Errorf("file %d: %w", id, domain.ErrContentMissing)
	}

	raw, err := s.blobs.Get(ctx, file.BlobKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("file %d: %w", id, domain.ErrContentMissing)
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %d: %w", id, err)
	}

	content := &driving.FileContent{
		File:        *file,
		Disposition: disposition,
		ContentType: domain.ContentTypeForName(file.Name),
		Body:        raw,
	}

	if disposition == domain.DispositionInline && domain.FormatForName(file.Name) == domain.FormatDocx {
		text, err := s.extractors.Extract(ctx, domain.FormatDocx, raw)
		if err != nil {
			return nil, fmt.Errorf("extracting file %d: %w", id, err)
		}
		content.ContentType = domain.ContentTypePlainText
		content.Body = []byte(text)
	}

	logger.Debug("Serving file %d %q as %s (%s, %d bytes)",
		id, file.Name, disposition, content.ContentType, len(content.Body))
	return content, nil
}

// Delete removes a file, its occurrences and its bytes.
func (s *FileService) Delete(ctx context.Context, id int64) error {
	file, err := s.files.GetFile(ctx, id)
	if err != nil {
		return err
	}

	if err := s.files.DeleteFile(ctx, id); err != nil {
		return err
	}

	if file.HasContent() {
		if err := s.blobs.Delete(ctx, file.BlobKey); err != nil {
			logger.Warn("Removing blob %s of file %d: %v", file.BlobKey, id, err)
		}
	}

	logger.Info("Deleted file %d %q", id, file.Name)
	return nil
}
