package config

// DefaultBaseURL is the production Request API.
const DefaultBaseURL = "https://api.request.network"

// DefaultTimeout is the default per-call timeout in seconds.
const DefaultTimeout = 30

// MaxTimeout is the largest accepted timeout in seconds.
const MaxTimeout = 600

// DefaultLogLevel is the default reqctl log level.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default reqctl log format.
const DefaultLogFormat = "text"

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}

	cfg.Sources["baseUrl"] = SourceDefault
	cfg.Sources["timeout"] = SourceDefault
	cfg.Sources["validation"] = SourceDefault
	cfg.Sources["logLevel"] = SourceDefault
	cfg.Sources["logFormat"] = SourceDefault

	return cfg
}
