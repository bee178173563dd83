// Package config defines service configuration and its loader.
//
// Values are layered, lowest precedence first: defaults from New, an optional
// YAML file named by PHONEBOOK_CONFIG, then PHONEBOOK_* environment variables.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address. The default binds every interface.
	Addr string `koanf:"addr"`

	// CORSAllowedOrigins lists origins allowed to call the API. "*" allows any.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// MaxBodyBytes caps the size of a POST body.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// SeedContacts is written into the phonebook at start-up.
	SeedContacts map[string]string `koanf:"seed_contacts"`
}

const defaultMaxBodyBytes = 1 << 20

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               "0.0.0.0:5999",
		CORSAllowedOrigins: []string{"*"},
		MaxBodyBytes:       defaultMaxBodyBytes,
		SeedContacts: map[string]string{
			"John": "657-532-1112",
		},
	}
}
