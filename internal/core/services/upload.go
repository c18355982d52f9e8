package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
	"github.com/custodia-labs/wordstats/internal/core/ports/driving"
	"github.com/custodia-labs/wordstats/internal/logger"
	"github.com/custodia-labs/wordstats/internal/tokenizer"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// uploadForm is the validated view of an upload.
type uploadForm struct {
	Name string `field:"file_name" validate:"required,max=255"`
	Size int64  `field:"file" validate:"gt=0"`
}

// UploadService stores uploaded documents and their word counts.
type UploadService struct {
	blobs      driven.BlobStore
	files      driven.FileStore
	extractors driven.ExtractorRegistry
	validate   *validator.Validate
	maxBytes   int64
}

// NewUploadService creates a new upload service.
// A non-positive maxBytes disables the size limit.
func NewUploadService(
	blobs driven.BlobStore,
	files driven.FileStore,
	extractors driven.ExtractorRegistry,
	maxBytes int64,
) *UploadService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)

	return &UploadService{
		blobs:      blobs,
		files:      files,
		extractors: extractors,
		validate:   validate,
		maxBytes:   maxBytes,
	}
}

// Upload validates, extracts, counts and stores a document.
func (s *UploadService) Upload(ctx context.Context, name string, content []byte) (*domain.File, error) {
	if err := s.check(name, content); err != nil {
		return nil, err
	}

	logger.Section("Upload")
	format := domain.FormatForName(name)
	logger.Debug("File: %q (%d bytes, format %s)", name, len(content), format)

	text, err := s.extractors.Extract(ctx, format, content)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", name, err)
	}

	counts := tokenizer.Count(text)
	logger.Debug("Tokens: %d, distinct words: %d", counts.Total(), len(counts))

	key, err := s.blobs.Put(ctx, name, content)
	if err != nil {
		return nil, fmt.Errorf("storing %s: %w", name, err)
	}

	file := &domain.File{BlobKey: key, Name: name}
	if err := s.files.CreateFile(ctx, file, counts); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logger.Warn("Removing orphaned blob %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("saving %s: %w", name, err)
	}

	logger.Info("Ingested file %d %q: %d words, %d distinct", file.ID, file.Name, counts.Total(), len(counts))
	return file, nil
}

// check validates the upload fields. Failures are domain.FieldErrors.
func (s *UploadService) check(name string, content []byte) error {
	form := uploadForm{Name: name, Size: int64(len(content))}

	fieldErrs := domain.FieldErrors{}
	if err := s.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating upload: %w", err)
		}
		for _, fe := range verrs {
			fieldErrs.Add(fe.Field(), validationMessage(fe))
		}
	}

	if s.maxBytes > 0 && form.Size > s.maxBytes {
		fieldErrs.Add("file", fmt.Sprintf("Ensure this file is no larger than %d bytes (it is %d bytes).", s.maxBytes, form.Size))
	}

	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}

// validationMessage renders a failed rule the way API clients expect it.
func validationMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "file" && fe.Tag() == "gt":
		return "The submitted file is empty."
	case fe.Tag() == "required":
		return "This field may not be blank."
	case fe.Tag() == "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

// fieldName reports struct fields under their `field` tag so validation
// errors use the API's field names.
func fieldName(sf reflect.StructField) string {
	if name := sf.Tag.Get("field"); name != "" {
		return name
	}
	return sf.Name
}
