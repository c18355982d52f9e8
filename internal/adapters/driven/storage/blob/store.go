// Package blob stores uploaded file content on the local filesystem.
//
// Content lives under <root>/uploaded_texts/. Keys are slash-separated paths
// relative to the root, so the same key doubles as the public /media/ path.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
)

// UploadDir is the directory, relative to the root, that holds uploads.
const UploadDir = "uploaded_texts"

// fallbackName is used when an upload name has no usable base.
const fallbackName = "upload"

// maxAttempts bounds the suffixing loop on name collisions.
const maxAttempts = 16

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

// Store is a filesystem-backed blob store.
type Store struct {
	root string
}

// NewStore creates the upload directory under root.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: media directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Join(root, UploadDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the media root directory.
func (s *Store) Root() string {
	return s.root
}

// Put writes content under a key derived from name. An existing file is
// never overwritten: a short random suffix is added before the extension.
func (s *Store) Put(ctx context.Context, name string, content []byte) (string, error) {
	base := sanitizeName(name)
	candidate := base

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		key := path.Join(UploadDir, candidate)
		err := writeExclusive(s.pathFor(key), content)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("writing %s: %w", key, err)
		}
		candidate = withSuffix(base, uuid.NewString()[:7])
	}

	return "", fmt.Errorf("storing %s: %w", base, domain.ErrAlreadyExists)
}

// Get reads the content stored under key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	p, ok := s.resolve(key)
	if !ok {
		return nil, domain.ErrNotFound
	}
	content, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return content, nil
}

// Delete removes the content under key. Missing keys are not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	p, ok := s.resolve(key)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

func (s *Store) pathFor(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// resolve maps key to a path inside the upload directory.
func (s *Store) resolve(key string) (string, bool) {
	clean := path.Clean("/" + key)[1:]
	if path.Dir(clean) != UploadDir || clean != key {
		return "", false
	}
	return s.pathFor(clean), true
}

func writeExclusive(p string, content []byte) error {
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(p)
		return err
	}
	return f.Close()
}

// sanitizeName keeps only the final path element of name.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." || strings.TrimSpace(base) == "" {
		return fallbackName
	}
	return base
}

// withSuffix inserts suffix before the extension: a.txt -> a_1234567.txt.
func withSuffix(name, suffix string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + suffix + ext
}
