package driven

// ConfigStore provides access to flat, dot-keyed configuration values
// such as "server.addr". Typed getters return the zero value when a key
// is missing or holds another type.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores a configuration value and persists it.
	Set(key string, value any) error

	// Path returns the backing file path, or "" when not file-backed.
	Path() string
}
