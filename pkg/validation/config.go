package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime validation switches.
type Config struct {
	// Requests validates outgoing request bodies.
	Requests bool `json:"requests" yaml:"requests"`
	// Responses validates successful response bodies.
	Responses bool `json:"responses" yaml:"responses"`
	// Errors validates error response bodies.
	Errors bool `json:"errors" yaml:"errors"`
}

// DefaultConfig returns the client-wide defaults: requests and responses on,
// error bodies off.
func DefaultConfig() Config {
	return Config{Requests: true, Responses: true, Errors: false}
}

// String renders the config for logs.
func (c Config) String() string {
	return fmt.Sprintf("requests=%t responses=%t errors=%t", c.Requests, c.Responses, c.Errors)
}

// Override is a per-call change to a Config. A nil flag inherits the base
// value.
type Override struct {
	Requests  *bool `json:"requests,omitempty" yaml:"requests,omitempty"`
	Responses *bool `json:"responses,omitempty" yaml:"responses,omitempty"`
	Errors    *bool `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Uniform returns an override setting all three flags to b.
func Uniform(b bool) *Override {
	return &Override{Requests: Bool(b), Responses: Bool(b), Errors: Bool(b)}
}

// IsZero reports whether the override sets no flag.
func (o *Override) IsZero() bool {
	return o == nil || (o.Requests == nil && o.Responses == nil && o.Errors == nil)
}

// Overlay returns a copy of o with the flags set in next applied on top.
// Either side may be nil.
func (o *Override) Overlay(next *Override) *Override {
	if o == nil && next == nil {
		return nil
	}
	out := &Override{}
	if o != nil {
		*out = *o
	}
	if next != nil {
		if next.Requests != nil {
			out.Requests = next.Requests
		}
		if next.Responses != nil {
			out.Responses = next.Responses
		}
		if next.Errors != nil {
			out.Errors = next.Errors
		}
	}
	return out
}

// Merge applies override to base. A nil override returns base unchanged.
func Merge(base Config, override *Override) Config {
	if override == nil {
		return base
	}
	out := base
	if override.Requests != nil {
		out.Requests = *override.Requests
	}
	if override.Responses != nil {
		out.Responses = *override.Responses
	}
	if override.Errors != nil {
		out.Errors = *override.Errors
	}
	return out
}

// UnmarshalJSON accepts either a boolean (uniform override) or an object.
// Object flags that are not booleans are left unset.
func (o *Override) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*o = *Uniform(b)
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("validation override must be a boolean or an object: %w", err)
	}
	*o = Override{}
	for name, raw := range fields {
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		o.set(name, v)
	}
	return nil
}

// UnmarshalYAML accepts either a boolean (uniform override) or a mapping.
// Mapping values that are not booleans are left unset.
func (o *Override) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("line %d: validation must be a boolean or a mapping", node.Line)
		}
		*o = *Uniform(b)
		return nil
	case yaml.MappingNode:
		*o = Override{}
		for i := 0; i+1 < len(node.Content); i += 2 {
			name, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode || value.Tag != "!!bool" {
				continue
			}
			var v bool
			if err := value.Decode(&v); err != nil {
				continue
			}
			o.set(name.Value, v)
		}
		return nil
	default:
		return fmt.Errorf("line %d: validation must be a boolean or a mapping", node.Line)
	}
}

func (o *Override) set(name string, v bool) {
	switch strings.ToLower(name) {
	case "requests":
		o.Requests = Bool(v)
	case "responses":
		o.Responses = Bool(v)
	case "errors":
		o.Errors = Bool(v)
	}
}

// ParseFlags parses a comma separated list of flag names ("requests",
// "responses", "errors") into an override that turns the named flags on and
// the others off. "all" and "none" are accepted, as are plain booleans.
func ParseFlags(s string) (*Override, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "none", "false", "0", "off":
		return Uniform(false), nil
	case "all", "true", "1", "on":
		return Uniform(true), nil
	}
	o := &Override{Requests: Bool(false), Responses: Bool(false), Errors: Bool(false)}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		switch part {
		case "requests", "responses", "errors":
			o.set(part, true)
		case "":
		default:
			return nil, fmt.Errorf("unknown validation flag %q (want requests, responses or errors)", part)
		}
	}
	return o, nil
}
