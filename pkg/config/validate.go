package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/requestnetwork/request-api-go/pkg/logging"
)

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("baseUrl %q must be an http or https URL", c.BaseURL))
		}
	}
	if c.Timeout < 0 || c.Timeout > MaxTimeout {
		errs = append(errs, fmt.Errorf("timeout %d is out of range (0-%d)", c.Timeout, MaxTimeout))
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("logLevel %q is not one of debug, info, warn, error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logFormat %q must be text or json", c.LogFormat))
	}
	if c.Origin != "" && c.ClientID == "" {
		errs = append(errs, errors.New("origin is only sent with a clientId"))
	}

	return errors.Join(errs...)
}
