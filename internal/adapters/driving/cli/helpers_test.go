package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordstats/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/services"
	"github.com/custodia-labs/wordstats/internal/normalisers/docx"
	"github.com/custodia-labs/wordstats/internal/normalisers/plaintext"
)

// testStores exposes the in-memory stores behind the injected services.
type testStores struct {
	files  *memory.Store
	blobs  *memory.BlobStore
	config *memory.ConfigStore
}

// setupTestServices injects services over in-memory stores.
func setupTestServices() (*testStores, func()) {
	store := memory.NewStore()
	blobs := memory.NewBlobStore()
	config := memory.NewConfigStore()
	extractors := services.NewExtractorRegistry(plaintext.New(), docx.New())

	SetServices(&Services{
		Settings: services.NewSettingsService(config),
		Upload:   services.NewUploadService(blobs, store, extractors, domain.DefaultMaxUploadSize),
		Files:    services.NewFileService(store, blobs, extractors),
		Stats:    services.NewStatsService(store, store),
		Config:   domain.DefaultAppSettings(),
	})

	return &testStores{files: store, blobs: blobs, config: config}, func() {
		SetServices(nil)
		downloadOutput = ""
	}
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// seedFile uploads content through the injected upload service.
func seedFile(t *testing.T, name, content string) *domain.File {
	t.Helper()
	file, err := uploadService.Upload(context.Background(), name, []byte(content))
	require.NoError(t, err)
	return file
}
