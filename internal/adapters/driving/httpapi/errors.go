package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/logger"
)

// errorBody is the generic error payload.
type errorBody struct {
	Error string `json:"error"`
}

// detailBody is the not-found payload.
type detailBody struct {
	Detail string `json:"detail"`
}

const (
	msgNoFile          = "No file provided"
	msgContentMissing  = "File not found."
	msgNotFound        = "Not found."
	msgTooManyRequests = "Too many uploads, retry later."
	msgInternal        = "Internal server error."
)

// writeError translates a service error into a response.
// Every handler error goes through here.
func writeError(c *gin.Context, err error) {
	var fieldErrs domain.FieldErrors

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, map[string][]string(fieldErrs))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, detailBody{Detail: msgNotFound})
	case errors.Is(err, domain.ErrContentMissing):
		c.JSON(http.StatusBadRequest, errorBody{Error: msgContentMissing})
	case errors.Is(err, domain.ErrDecode), errors.Is(err, domain.ErrFormat),
		errors.Is(err, domain.ErrUnsupportedType), errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
	default:
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorBody{Error: msgInternal})
	}
}

// writeFileNotFound is the statistics variant of a 404, naming the id.
func writeFileNotFound(c *gin.Context, id int64) {
	c.JSON(http.StatusNotFound, detailBody{Detail: fmt.Sprintf("No file found with id %d", id)})
}
