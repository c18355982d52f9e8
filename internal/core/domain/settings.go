package domain

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address, e.g. "127.0.0.1:8000".
	Addr string

	// AllowedOrigins lists origins permitted for cross-origin requests.
	// "*" allows any origin.
	AllowedOrigins []string
}

// StorageSettings holds persistence locations.
type StorageSettings struct {
	// DataDir holds the metadata database.
	DataDir string

	// MediaDir is the root of the blob area for raw uploads.
	MediaDir string
}

// UploadSettings bounds upload traffic.
type UploadSettings struct {
	// MaxBytes is the largest accepted upload.
	MaxBytes int64

	// RatePerSecond throttles uploads. Zero disables throttling.
	RatePerSecond float64

	// Burst is the token bucket size used with RatePerSecond.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Server  ServerSettings
	Storage StorageSettings
	Upload  UploadSettings

	// Verbose enables debug logging.
	Verbose bool
}

// Default setting values.
const (
	DefaultAddr          = "127.0.0.1:8000"
	DefaultMaxUploadSize = 10 << 20
	DefaultUploadBurst   = 5
)

// DefaultAppSettings returns settings with sensible defaults.
// Storage directories are left empty so adapters pick their own
// location under the user's home directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Addr:           DefaultAddr,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Upload: UploadSettings{
			MaxBytes: DefaultMaxUploadSize,
			Burst:    DefaultUploadBurst,
		},
	}
}
