package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/requestnetwork/request-api-go/pkg/validation"
)

// Environment variables.
const (
	EnvAPIURL    = "REQUEST_API_URL"
	EnvAPIKey    = "REQUEST_API_KEY"
	EnvClientID  = "REQUEST_CLIENT_ID"
	EnvOrigin    = "REQUEST_ORIGIN"
	EnvTimeout   = "REQUEST_TIMEOUT"
	EnvValidate  = "REQUEST_VALIDATE"
	EnvLogLevel  = "REQUEST_LOG_LEVEL"
	EnvLogFormat = "REQUEST_LOG_FORMAT"
	EnvSchemaDir = "REQUEST_SCHEMA_DIR"
)

// LoadEnvConfig applies REQUEST_* environment variables to cfg.
func LoadEnvConfig(cfg *Config) error {
	env := &Config{
		BaseURL:   os.Getenv(EnvAPIURL),
		APIKey:    os.Getenv(EnvAPIKey),
		ClientID:  os.Getenv(EnvClientID),
		Origin:    os.Getenv(EnvOrigin),
		LogLevel:  os.Getenv(EnvLogLevel),
		LogFormat: os.Getenv(EnvLogFormat),
		SchemaDir: os.Getenv(EnvSchemaDir),
	}

	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid timeout %q", EnvTimeout, v)
		}
		env.Timeout = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvValidate)); v != "" {
		o, err := validation.ParseFlags(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvValidate, err)
		}
		env.Validation = o
	}

	MergeConfig(cfg, env, SourceEnv)
	return nil
}
