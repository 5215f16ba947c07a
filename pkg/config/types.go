package config

import (
	"time"

	"github.com/requestnetwork/request-api-go/pkg/validation"
)

// Config is the resolved client configuration.
type Config struct {
	// BaseURL is the Request API base URL.
	BaseURL string `yaml:"baseUrl,omitempty" json:"baseUrl,omitempty"`

	// Credentials. APIKey is for server-side use; ClientID and Origin for
	// browser-style access.
	APIKey   string `yaml:"apiKey,omitempty" json:"apiKey,omitempty"`
	ClientID string `yaml:"clientId,omitempty" json:"clientId,omitempty"`
	Origin   string `yaml:"origin,omitempty" json:"origin,omitempty"`

	// Timeout is the per-call timeout in seconds.
	Timeout int `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// Validation overrides the runtime validation defaults. Accepts a
	// boolean or a {requests, responses, errors} object.
	Validation *validation.Override `yaml:"validation,omitempty" json:"validation,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	LogFormat string `yaml:"logFormat,omitempty" json:"logFormat,omitempty"`

	// SchemaDir holds extra *.schema.json files registered on top of the
	// built-in schemas.
	SchemaDir string `yaml:"schemaDir,omitempty" json:"schemaDir,omitempty"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`
}

// Config sources.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceFlag    = "flag"
)

// RuntimeValidation resolves the validation override against the defaults.
func (c *Config) RuntimeValidation() validation.Config {
	return validation.Merge(validation.DefaultConfig(), c.Validation)
}

// TimeoutDuration returns Timeout as a duration, or DefaultTimeout when unset.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}
