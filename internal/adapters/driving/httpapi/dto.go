package httpapi

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/wordstats/internal/core/domain"
)

// fileResponse is the File resource.
type fileResponse struct {
	ID         int64     `json:"id"`
	File       *string   `json:"file"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// newFileResponse renders file with an absolute media URL, or a null
// "file" when the content is missing.
func newFileResponse(c *gin.Context, file domain.File) fileResponse {
	resp := fileResponse{
		ID:         file.ID,
		FileName:   file.Name,
		UploadedAt: file.UploadedAt,
	}
	if file.HasContent() {
		path := (&url.URL{Path: mediaPrefix + "/" + file.BlobKey}).EscapedPath()
		link := baseURL(c.Request) + path
		resp.File = &link
	}
	return resp
}

func newFileResponses(c *gin.Context, files []domain.File) []fileResponse {
	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, newFileResponse(c, f))
	}
	return out
}

// baseURL returns scheme://host for r, honouring X-Forwarded-Proto.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
