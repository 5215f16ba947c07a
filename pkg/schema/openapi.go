package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPISchema validates values against a kin-openapi schema. Defaults
// declared by the schema are filled into objects, and readOnly/writeOnly
// properties are checked for the schema's direction.
type OpenAPISchema struct {
	schema *openapi3.Schema
	kind   Kind
}

// NewOpenAPISchema wraps s for validating messages of the given kind.
func NewOpenAPISchema(s *openapi3.Schema, kind Kind) *OpenAPISchema {
	return &OpenAPISchema{schema: s, kind: kind}
}

// Schema returns the wrapped kin-openapi schema.
func (s *OpenAPISchema) Schema() *openapi3.Schema {
	return s.schema
}

// Parse validates a JSON-shaped copy of value and returns that copy.
func (s *OpenAPISchema) Parse(value any) (any, error) {
	v, err := toJSONValue(value, false)
	if err != nil {
		return nil, err
	}

	opts := []openapi3.SchemaValidationOption{
		openapi3.MultiErrors(),
		openapi3.DefaultsSet(func() {}),
	}
	if s.kind == KindRequest {
		opts = append(opts, openapi3.VisitAsRequest())
	} else {
		opts = append(opts, openapi3.VisitAsResponse())
	}

	if err := s.schema.VisitJSON(v, opts...); err != nil {
		return nil, err
	}
	return v, nil
}
