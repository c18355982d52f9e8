package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/wordstats/internal/adapters/driven/storage/blob"
	"github.com/custodia-labs/wordstats/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/services"
	"github.com/custodia-labs/wordstats/internal/logger"
	"github.com/custodia-labs/wordstats/internal/normalisers/docx"
	"github.com/custodia-labs/wordstats/internal/normalisers/plaintext"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type testAPI struct {
	router *gin.Engine
	store  *memory.Store
	blobs  *blob.Store
}

func newTestAPI(t *testing.T, mutate ...func(*Config)) *testAPI {
	t.Helper()

	mediaDir := t.TempDir()
	blobs, err := blob.NewStore(mediaDir)
	require.NoError(t, err)

	store := memory.NewStore()
	extractors := services.NewExtractorRegistry(plaintext.New(), docx.New())

	cfg := Config{
		MediaDir:       mediaDir,
		MaxUploadBytes: 1 << 16,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	for _, fn := range mutate {
		fn(&cfg)
	}

	router := NewRouter(
		services.NewUploadService(blobs, store, extractors, cfg.MaxUploadBytes),
		services.NewFileService(store, blobs, extractors),
		services.NewStatsService(store, store),
		cfg,
	)
	return &testAPI{router: router, store: store, blobs: blobs}
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func uploadRequest(t *testing.T, field, name string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (a *testAPI) upload(t *testing.T, name, content string) fileResponse {
	t.Helper()
	w := a.do(uploadRequest(t, "file", name, []byte(content)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp fileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// ==================== Upload ====================

func TestUpload_Created(t *testing.T) {
	api := newTestAPI(t)

	resp := api.upload(t, "test_file.txt", "This is a test file. Test file content here.")

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "test_file.txt", resp.FileName)
	require.NotNil(t, resp.File)
	assert.Equal(t, "http://example.com/media/uploaded_texts/test_file.txt", *resp.File)
	assert.False(t, resp.UploadedAt.IsZero())
}

func TestUpload_NoFile(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(uploadRequest(t, "", "", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgNoFile, decode[errorBody](t, w).Error)

	w = api.do(uploadRequest(t, "document", "a.txt", []byte("x")))
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong field name")
}

func TestUpload_ValidationErrors(t *testing.T) {
	api := newTestAPI(t, func(c *Config) { c.MaxUploadBytes = 8 })

	w := api.do(uploadRequest(t, "file", "empty.txt", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode[map[string][]string](t, w)
	assert.Equal(t, []string{"The submitted file is empty."}, fields["file"])

	w = api.do(uploadRequest(t, "file", "big.txt", []byte("more than eight bytes")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields = decode[map[string][]string](t, w)
	require.Len(t, fields["file"], 1)
	assert.Contains(t, fields["file"][0], "no larger than 8 bytes")
}

func TestUpload_ExtractionErrors(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(uploadRequest(t, "file", "bad.txt", []byte{0xff, 0xfe}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode[errorBody](t, w).Error)

	w = api.do(uploadRequest(t, "file", "bad.docx", []byte("not a zip")))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	n, err := api.store.CountFiles(t.Context())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpload_RateLimited(t *testing.T) {
	api := newTestAPI(t, func(c *Config) {
		c.UploadRatePerSecond = 0.001
		c.UploadBurst = 1
	})

	api.upload(t, "a.txt", "alpha")

	w := api.do(uploadRequest(t, "file", "b.txt", []byte("beta")))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	w = api.get("/files/")
	assert.Equal(t, http.StatusOK, w.Code, "only uploads are throttled")
}

// ==================== Files ====================

func TestFiles_ListAndFilter(t *testing.T) {
	api := newTestAPI(t)

	w := api.get("/files/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	api.upload(t, "a.txt", "alpha")
	api.upload(t, "b.txt", "beta")

	files := decode[[]fileResponse](t, api.get("/files/"))
	require.Len(t, files, 2)
	assert.Equal(t, "a.txt", files[0].FileName)

	files = decode[[]fileResponse](t, api.get("/files/2/"))
	require.Len(t, files, 1)
	assert.Equal(t, "b.txt", files[0].FileName)

	w = api.get("/files/99/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFiles_NonIntegerID(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/files/abc/", "/stats/1.5/", "/download/-1/", "/show/x/"} {
		w := api.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestFiles_Delete(t *testing.T) {
	api := newTestAPI(t)
	api.upload(t, "a.txt", "alpha")

	w := api.do(httptest.NewRequest(http.MethodDelete, "/files/1/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoFileExists(t, filepath.Join(api.blobs.Root(), "uploaded_texts", "a.txt"))

	w = api.do(httptest.NewRequest(http.MethodDelete, "/files/1/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFiles_NullFileWhenContentMissing(t *testing.T) {
	api := newTestAPI(t)
	api.store.PutFile(domain.File{ID: 1, Name: "ghost.txt"})

	files := decode[[]map[string]any](t, api.get("/files/1/"))
	require.Len(t, files, 1)
	assert.Nil(t, files[0]["file"])
	assert.Equal(t, "ghost.txt", files[0]["file_name"])
}

// ==================== Stats ====================

func TestStats_Global(t *testing.T) {
	api := newTestAPI(t)
	api.upload(t, "one.txt", "test alpha")
	api.upload(t, "two.txt", "test")

	stats := decode[[]domain.WordStats](t, api.get("/stats/"))
	byText := map[string]domain.WordStats{}
	for _, s := range stats {
		byText[s.Text] = s
	}

	assert.Equal(t, 2, byText["test"].TotalCount)
	assert.Equal(t, 2, byText["test"].FileCount)
	assert.Equal(t, 100.0, byText["test"].FilePercentage)
	assert.Equal(t, 50.0, byText["alpha"].FilePercentage)
}

func TestStats_ScopedFields(t *testing.T) {
	api := newTestAPI(t)
	api.upload(t, "test_file.txt", "This is a test file. Test file content here.")

	w := api.get("/stats/1/")
	require.Equal(t, http.StatusOK, w.Code)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw, 7)
	for _, row := range raw {
		for _, key := range []string{"text", "total_count", "file_count", "file_percentage", "count_in_current_file"} {
			assert.Contains(t, row, key)
		}
		assert.Equal(t, 100.0, row["file_percentage"])
	}
}

func TestStats_UnknownFile(t *testing.T) {
	api := newTestAPI(t)

	w := api.get("/stats/999/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"No file found with id 999"}`, w.Body.String())
}

// ==================== Download / Show ====================

func TestDownload_Attachment(t *testing.T) {
	api := newTestAPI(t)
	api.upload(t, "test_download.txt", "Download test content.")

	w := api.get("/download/1/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="test_download.txt"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Equal(t, "Download test content.", w.Body.String())
}

func TestShow_Inline(t *testing.T) {
	api := newTestAPI(t)
	api.upload(t, "test_show.txt", "Show test content.")

	w := api.get("/show/1/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `inline; filename="test_show.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Show test content.", w.Body.String())
}

func TestDownload_Errors(t *testing.T) {
	api := newTestAPI(t)

	w := api.get("/download/1/")
	assert.Equal(t, http.StatusNotFound, w.Code)

	api.store.PutFile(domain.File{ID: 1, Name: "ghost.txt"})
	for _, path := range []string{"/download/1/", "/show/1/"} {
		w = api.get(path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.JSONEq(t, `{"error":"File not found."}`, w.Body.String())
	}
}

func TestContentDisposition_EscapesQuotes(t *testing.T) {
	assert.Equal(t, `attachment; filename="a\"b.txt"`, contentDisposition(domain.DispositionAttachment, `a"b.txt`))
}

// ==================== Ambient ====================

func TestMedia_ServesBlob(t *testing.T) {
	api := newTestAPI(t)
	resp := api.upload(t, "media.txt", "raw bytes")

	path := strings.TrimPrefix(*resp.File, "http://example.com")
	w := api.get(path)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "raw bytes", w.Body.String())
}

func TestMedia_EscapesFileURL(t *testing.T) {
	api := newTestAPI(t)
	resp := api.upload(t, "my notes #1.txt", "escaped bytes")

	require.NotNil(t, resp.File)
	assert.Equal(t, "http://example.com/media/uploaded_texts/my%20notes%20%231.txt", *resp.File)

	w := api.get(strings.TrimPrefix(*resp.File, "http://example.com"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "escaped bytes", w.Body.String())
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)

	w := api.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	api := newTestAPI(t)

	w := api.get("/healthz")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = api.do(req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/files/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := api.do(req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/upload/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = api.do(req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")

	req = httptest.NewRequest(http.MethodGet, "/files/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = api.do(req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestBaseURL_ForwardedProto(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/files/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://example.com", baseURL(req))
}

func TestConfigFromSettings(t *testing.T) {
	s := domain.DefaultAppSettings()
	s.Storage.MediaDir = "/srv/media"

	cfg := ConfigFromSettings(s)
	assert.Equal(t, "/srv/media", cfg.MediaDir)
	assert.Equal(t, s.Upload.MaxBytes, cfg.MaxUploadBytes)
	assert.Equal(t, s.Server.AllowedOrigins, cfg.AllowedOrigins)
}
