package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

func TestUploadService_PlainText(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file, err := env.upload.Upload(ctx, "test_file.txt", []byte("This is a test file. Test file content here."))
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, int64(1), file.ID)
	assert.Equal(t, "test_file.txt", file.Name)
	assert.Equal(t, "uploaded_texts/test_file.txt", file.BlobKey)
	assert.False(t, file.UploadedAt.IsZero())

	occ, err := env.store.Occurrences(ctx, file.ID)
	require.NoError(t, err)
	assert.Len(t, occ, 7, "one row per distinct word")

	total := 0
	for _, o := range occ {
		total += o.Count
	}
	assert.Equal(t, 9, total)
}

func TestUploadService_Docx(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file, err := env.upload.Upload(ctx, "report.docx", docxWithParagraphs(t, "Alpha beta", "beta gamma"))
	require.NoError(t, err)

	stats, err := env.stats.List(ctx, domain.ForFile(file.ID))
	require.NoError(t, err)

	counts := map[string]int{}
	for _, s := range stats {
		counts[s.Text] = s.CountInCurrentFile
	}
	assert.Equal(t, map[string]int{"alpha": 1, "beta": 2, "gamma": 1}, counts)
}

func TestUploadService_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		file    string
		content []byte
		field   string
		message string
	}{
		{"empty file", "a.txt", nil, "file", "The submitted file is empty."},
		{"blank name", "", []byte("x"), "file_name", "This field may not be blank."},
		{"long name", strings.Repeat("n", 252) + ".txt", []byte("x"), "file_name", "Ensure this field has no more than 255 characters."},
		{"too large", "big.txt", make([]byte, (1<<20)+1), "file", "Ensure this file is no larger than 1048576 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.upload.Upload(context.Background(), tt.file, tt.content)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var fe domain.FieldErrors
			require.True(t, errors.As(err, &fe))
			require.NotEmpty(t, fe[tt.field])
			assert.Contains(t, fe[tt.field][0], tt.message)
		})
	}

	assert.Zero(t, env.blobs.Len(), "nothing stored for invalid uploads")
}

func TestUploadService_DecodeError(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.upload.Upload(context.Background(), "bad.txt", []byte{0xff, 0xfe, 0xfd})
	assert.ErrorIs(t, err, domain.ErrDecode)
	assert.Zero(t, env.blobs.Len())

	n, _ := env.store.CountFiles(context.Background())
	assert.Zero(t, n)
}

func TestUploadService_FormatError(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.upload.Upload(context.Background(), "broken.docx", []byte("not a zip"))
	assert.ErrorIs(t, err, domain.ErrFormat)
	assert.Zero(t, env.blobs.Len())
}

func TestUploadService_UnknownExtensionIsText(t *testing.T) {
	env := newTestEnv(t)

	file, err := env.upload.Upload(context.Background(), "data.csv", []byte("a,b,a"))
	require.NoError(t, err)

	occ, err := env.store.Occurrences(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Len(t, occ, 2)
}

func TestUploadService_SameNameTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.upload.Upload(ctx, "dup.txt", []byte("one"))
	require.NoError(t, err)
	second, err := env.upload.Upload(ctx, "dup.txt", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.BlobKey, second.BlobKey)
	assert.Equal(t, first.Name, second.Name)
}

func TestUploadService_NoSizeLimit(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUploadService(env.blobs, env.store, env.upload.extractors, 0)

	_, err := svc.Upload(context.Background(), "big.txt", []byte(strings.Repeat("word ", 300000)))
	assert.NoError(t, err)
}
