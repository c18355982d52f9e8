package memory

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is an in-memory implementation of driven.BlobStore.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobStore creates a new in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{
		blobs: make(map[string][]byte),
	}
}

// Put stores content under a key derived from name.
func (s *BlobStore) Put(_ context.Context, name string, content []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := "uploaded_texts/" + path.Base(name)
	key := base
	for i := 1; ; i++ {
		if _, exists := s.blobs[key]; !exists {
			break
		}
		key = fmt.Sprintf("%s_%d", base, i)
	}

	s.blobs[key] = append([]byte(nil), content...)
	return key, nil
}

// Get returns the content stored under key.
func (s *BlobStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.blobs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), content...), nil
}

// Delete removes the content under key.
func (s *BlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// Len returns the number of stored blobs.
func (s *BlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
