package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Extractor = (*Normaliser)(nil)

// documentPart is the main story of a word-processor container.
const documentPart = "word/document.xml"

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Format returns domain.FormatDocx.
func (n *Normaliser) Format() domain.Format {
	return domain.FormatDocx
}

// Extract returns the text of each body paragraph in document order,
// joined with newlines. Paragraphs nested in tables are not included.
func (n *Normaliser) Extract(_ context.Context, content []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}

	part, err := readPart(reader, documentPart)
	if err != nil {
		return "", err
	}

	paragraphs, err := parseParagraphs(part)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrFormat, documentPart, err)
	}
	return strings.Join(paragraphs, "\n"), nil
}

// readPart reads a named entry from the container.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrFormat, name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrFormat, name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%w: missing %s", domain.ErrFormat, name)
}

// parseParagraphs walks document.xml and returns the text of every
// paragraph that is a direct child of the body. Only run content counts:
// w:t is text, w:tab a tab, w:br and w:cr a line break.
func parseParagraphs(content []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		sawBody    bool
	)

	// inBodyParagraph reports whether the innermost open paragraph sits
	// directly under w:body.
	inBodyParagraph := func() bool {
		for i := len(stack) - 1; i >= 1; i-- {
			if stack[i] == "p" {
				return stack[i-1] == "body"
			}
		}
		return false
	}

	// parentIs reports whether the element on top of the stack is a child of name.
	parentIs := func(name string) bool {
		return len(stack) >= 2 && stack[len(stack)-2] == name
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			stack = append(stack, el.Name.Local)
			if el.Name.Local == "body" {
				sawBody = true
			}
			if !parentIs("r") || !inBodyParagraph() {
				continue
			}
			switch el.Name.Local {
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			if el.Name.Local == "p" && parentIs("body") {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 && stack[len(stack)-1] == "t" && parentIs("r") && inBodyParagraph() {
				current.Write(el)
			}
		}
	}

	if !sawBody {
		return nil, errors.New("no document body")
	}
	return paragraphs, nil
}
