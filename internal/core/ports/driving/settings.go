package driving

import "github.com/custodia-labs/wordstats/internal/core/domain"

// SettingsService resolves application settings from configuration.
type SettingsService interface {
	// Get returns the effective settings: stored values over defaults.
	Get() (*domain.AppSettings, error)

	// Save persists settings to the configuration store.
	Save(settings *domain.AppSettings) error
}
