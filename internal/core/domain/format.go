package domain

import "strings"

// Format is the closed set of document formats the extractor understands.
type Format int

const (
	// FormatPlainText is UTF-8 text. Unknown extensions fall back to it.
	FormatPlainText Format = iota

	// FormatDocx is an Office Open XML word-processor document.
	FormatDocx
)

// Content types used when serving files.
const (
	ContentTypeDocx        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePlainText   = "text/plain"
	ContentTypeOctetStream = "application/octet-stream"
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatPlainText:
		return "text"
	case FormatDocx:
		return "docx"
	default:
		return "unknown"
	}
}

// FormatForName picks the extraction format from a declared file name.
// Anything that is not a .docx is treated as plain text.
func FormatForName(name string) Format {
	if hasExt(name, ".docx") {
		return FormatDocx
	}
	return FormatPlainText
}

// ContentTypeForName picks the served content type from a file name.
// Unlike FormatForName this is three-way: unknown extensions are binary.
func ContentTypeForName(name string) string {
	switch {
	case hasExt(name, ".docx"):
		return ContentTypeDocx
	case hasExt(name, ".txt"):
		return ContentTypePlainText
	default:
		return ContentTypeOctetStream
	}
}

func hasExt(name, ext string) bool {
	return strings.HasSuffix(strings.ToLower(name), ext)
}

// Disposition selects how a retrieved file is presented.
type Disposition string

const (
	// DispositionAttachment serves the original bytes for download.
	DispositionAttachment Disposition = "attachment"

	// DispositionInline serves text for display.
	// Word-processor documents are re-extracted rather than passed through.
	DispositionInline Disposition = "inline"
)

// IsValid returns true if the disposition is recognised.
func (d Disposition) IsValid() bool {
	return d == DispositionAttachment || d == DispositionInline
}
