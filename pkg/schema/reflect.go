package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

type reflectConfig struct {
	strict bool
}

// ReflectOption configures FromType.
type ReflectOption func(*reflectConfig)

// Strict rejects properties the type does not declare.
func Strict() ReflectOption {
	return func(c *reflectConfig) {
		c.strict = true
	}
}

// FromType derives a validator from the Go type T using its json and
// jsonschema struct tags. Fields without omitempty are required.
//
// It gives operations without a published schema the same runtime checks as
// built-in ones:
//
//	reg.Register(schema.Entry{Key: schema.RequestKey("MyOp"), Schema: schema.MustFromType[MyBody]()})
func FromType[T any](opts ...ReflectOption) (*JSONSchema, error) {
	cfg := &reflectConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: !cfg.strict,
	}
	t := reflect.TypeFor[T]()
	raw, err := json.Marshal(r.ReflectFromType(t))
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema for %s: %w", t, err)
	}

	name := t.Name()
	if name == "" {
		name = "value"
	}
	return CompileJSON(name+".json", raw)
}

// MustFromType is like FromType but panics on error.
func MustFromType[T any](opts ...ReflectOption) *JSONSchema {
	s, err := FromType[T](opts...)
	if err != nil {
		panic(err)
	}
	return s
}
