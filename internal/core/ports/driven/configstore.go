package driven

// ConfigStore provides persistent application configuration.
// Keys use dot notation, e.g. "library.path".
type ConfigStore interface {
	// GetString retrieves a string configuration value.
	// Returns "" when the key is absent or not a string.
	GetString(key string) string

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) bool

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Path returns the backing file path, for diagnostics.
	Path() string
}
