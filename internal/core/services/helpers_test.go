package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordstats/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordstats/internal/normalisers/docx"
	"github.com/custodia-labs/wordstats/internal/normalisers/plaintext"
)

// testEnv wires the services over in-memory stores.
type testEnv struct {
	store  *memory.Store
	blobs  *memory.BlobStore
	upload *UploadService
	files  *FileService
	stats  *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	blobs := memory.NewBlobStore()
	extractors := NewExtractorRegistry(plaintext.New(), docx.New())

	return &testEnv{
		store:  store,
		blobs:  blobs,
		upload: NewUploadService(blobs, store, extractors, 1<<20),
		files:  NewFileService(store, blobs, extractors),
		stats:  NewStatsService(store, store),
	}
}

// docxWithParagraphs builds a minimal DOCX holding the given paragraphs.
func docxWithParagraphs(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	doc, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}
