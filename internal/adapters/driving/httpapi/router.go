package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driving"
)

const mediaPrefix = "/media"

// Config holds the HTTP surface settings.
type Config struct {
	// MediaDir is served read-only under /media. Empty disables it.
	MediaDir string

	// MaxUploadBytes caps the upload size. Zero means unlimited.
	MaxUploadBytes int64

	// AllowedOrigins lists CORS origins.
	AllowedOrigins []string

	// UploadRatePerSecond and UploadBurst shape the upload token bucket.
	UploadRatePerSecond float64
	UploadBurst         int
}

// ConfigFromSettings maps application settings onto a router Config.
func ConfigFromSettings(s domain.AppSettings) Config {
	return Config{
		MediaDir:            s.Storage.MediaDir,
		MaxUploadBytes:      s.Upload.MaxBytes,
		AllowedOrigins:      s.Server.AllowedOrigins,
		UploadRatePerSecond: s.Upload.RatePerSecond,
		UploadBurst:         s.Upload.Burst,
	}
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(
	upload driving.UploadService,
	files driving.FileService,
	stats driving.StatsService,
	cfg Config,
) *gin.Engine {
	h := &handler{
		upload:         upload,
		files:          files,
		stats:          stats,
		maxUploadBytes: cfg.MaxUploadBytes,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(), cors(cfg.AllowedOrigins))

	r.GET("/healthz", h.health)

	r.POST("/upload/", rateLimit(newLimiter(cfg.UploadRatePerSecond, cfg.UploadBurst)), h.uploadFile)

	r.GET("/files/", h.listFiles)
	r.GET("/files/:id/", h.filterFiles)
	r.DELETE("/files/:id/", h.deleteFile)

	r.GET("/stats/", h.listStats)
	r.GET("/stats/:id/", h.fileStats)

	r.GET("/download/:id/", h.retrieve(domain.DispositionAttachment))
	r.GET("/show/:id/", h.retrieve(domain.DispositionInline))

	if cfg.MediaDir != "" {
		r.StaticFS(mediaPrefix, gin.Dir(cfg.MediaDir, false))
	}

	return r
}
