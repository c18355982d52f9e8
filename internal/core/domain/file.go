package domain

import "time"

// MaxNameLength bounds File.Name and Word.Text.
const MaxNameLength = 255

// File is an uploaded document.
// Its raw bytes live in the blob area under BlobKey.
type File struct {
	// ID is the generated identifier.
	ID int64

	// BlobKey addresses the raw content in the blob area.
	// Empty means the content is absent.
	BlobKey string

	// Name is the file name declared by the uploader.
	Name string

	// UploadedAt is when the file was created.
	UploadedAt time.Time
}

// HasContent reports whether the file references stored bytes.
func (f *File) HasContent() bool {
	return f != nil && f.BlobKey != ""
}

// Word is a normalised token, unique by Text across all files.
type Word struct {
	ID   int64
	Text string
}

// Occurrence is the number of times a word appears in one file.
// At most one Occurrence exists per (FileID, WordID).
type Occurrence struct {
	FileID int64
	WordID int64
	Count  int
}
