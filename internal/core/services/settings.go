package services

import (
	"fmt"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
	"github.com/custodia-labs/wordstats/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyServerAddr     = "server.addr"
	keyAllowedOrigins = "server.allowed_origins"
	keyDataDir        = "storage.data_dir"
	keyMediaDir       = "storage.media_dir"
	keyUploadMaxBytes = "upload.max_bytes"
	keyUploadRate     = "upload.rate_per_second"
	keyUploadBurst    = "upload.burst"
	keyVerbose        = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing, zero or
// mistyped values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Addr:           s.getString(keyServerAddr, defaults.Server.Addr),
			AllowedOrigins: s.getStringSlice(keyAllowedOrigins, defaults.Server.AllowedOrigins),
		},
		Storage: domain.StorageSettings{
			DataDir:  s.getString(keyDataDir, defaults.Storage.DataDir),
			MediaDir: s.getString(keyMediaDir, defaults.Storage.MediaDir),
		},
		Upload: domain.UploadSettings{
			MaxBytes:      int64(s.getInt(keyUploadMaxBytes, int(defaults.Upload.MaxBytes))),
			RatePerSecond: s.getFloat(keyUploadRate, defaults.Upload.RatePerSecond),
			Burst:         s.getInt(keyUploadBurst, defaults.Upload.Burst),
		},
		Verbose: s.getBool(keyVerbose, defaults.Verbose),
	}

	if settings.Upload.MaxBytes < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, keyUploadMaxBytes)
	}
	if settings.Upload.RatePerSecond < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, keyUploadRate)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyServerAddr, settings.Server.Addr},
		{keyAllowedOrigins, settings.Server.AllowedOrigins},
		{keyDataDir, settings.Storage.DataDir},
		{keyMediaDir, settings.Storage.MediaDir},
		{keyUploadMaxBytes, settings.Upload.MaxBytes},
		{keyUploadRate, settings.Upload.RatePerSecond},
		{keyUploadBurst, settings.Upload.Burst},
		{keyVerbose, settings.Verbose},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}
