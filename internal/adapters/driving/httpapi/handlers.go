package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driving"
)

// multipartOverhead is the allowance for multipart framing on top of
// the upload limit, so the size check reports the file itself.
const multipartOverhead = 1 << 20

type handler struct {
	upload         driving.UploadService
	files          driving.FileService
	stats          driving.StatsService
	maxUploadBytes int64
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) uploadFile(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, map[string][]string{
				"file": {fmt.Sprintf("Ensure this file is no larger than %d bytes.", h.maxUploadBytes)},
			})
			return
		}
		c.JSON(http.StatusBadRequest, errorBody{Error: msgNoFile})
		return
	}

	f, err := header.Open()
	if err != nil {
		writeError(c, fmt.Errorf("opening upload: %w", err))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		writeError(c, fmt.Errorf("reading upload: %w", err))
		return
	}

	file, err := h.upload.Upload(c.Request.Context(), header.Filename, content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newFileResponse(c, *file))
}

func (h *handler) listFiles(c *gin.Context) {
	files, err := h.files.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFileResponses(c, files))
}

func (h *handler) filterFiles(c *gin.Context) {
	id, ok := fileID(c)
	if !ok {
		return
	}

	files, err := h.files.Filter(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFileResponses(c, files))
}

func (h *handler) deleteFile(c *gin.Context) {
	id, ok := fileID(c)
	if !ok {
		return
	}

	if err := h.files.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listStats(c *gin.Context) {
	stats, err := h.stats.List(c.Request.Context(), domain.AllFiles())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) fileStats(c *gin.Context) {
	id, ok := fileID(c)
	if !ok {
		return
	}

	stats, err := h.stats.List(c.Request.Context(), domain.ForFile(id))
	if errors.Is(err, domain.ErrNotFound) {
		writeFileNotFound(c, id)
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) retrieve(disposition domain.Disposition) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := fileID(c)
		if !ok {
			return
		}

		content, err := h.files.Retrieve(c.Request.Context(), id, disposition)
		if err != nil {
			writeError(c, err)
			return
		}

		c.Header("Content-Disposition", contentDisposition(content.Disposition, content.File.Name))
		c.Data(http.StatusOK, content.ContentType, content.Body)
	}
}

// fileID parses the :id path parameter. Anything but a positive integer
// is answered with 404, as if the route did not match.
func fileID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, detailBody{Detail: msgNotFound})
		return 0, false
	}
	return id, true
}

// contentDisposition renders e.g. attachment; filename="notes.txt".
func contentDisposition(d domain.Disposition, name string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "").Replace(name)
	return fmt.Sprintf(`%s; filename="%s"`, d, escaped)
}
