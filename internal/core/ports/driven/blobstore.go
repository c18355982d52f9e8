package driven

import "context"

// BlobStore keeps the raw bytes of uploaded files.
// Keys are relative paths inside the blob area.
type BlobStore interface {
	// Put stores content under a key derived from name and returns the key.
	// An existing key is never overwritten; a unique variant is chosen instead.
	Put(ctx context.Context, name string, content []byte) (string, error)

	// Get returns the content stored under key.
	// Returns domain.ErrNotFound if nothing is stored there.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the content under key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
