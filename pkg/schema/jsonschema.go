package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSONSchema is a compiled JSON Schema (draft 2020-12).
type JSONSchema struct {
	name     string
	compiled *jsonschema.Schema
}

// CompileJSON compiles a JSON Schema document. name identifies the resource
// in compiler errors and $ref resolution.
func CompileJSON(name string, raw []byte) (*JSONSchema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return &JSONSchema{name: name, compiled: compiled}, nil
}

// MustCompileJSON is like CompileJSON but panics on error.
func MustCompileJSON(name string, raw []byte) *JSONSchema {
	s, err := CompileJSON(name, raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the resource name the schema was compiled under.
func (s *JSONSchema) Name() string {
	return s.name
}

// Parse validates value. Structs and typed maps are converted to their JSON
// form first; numbers come back as json.Number.
func (s *JSONSchema) Parse(value any) (any, error) {
	v, err := toJSONValue(value, true)
	if err != nil {
		return nil, err
	}
	if err := s.compiled.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

// toJSONValue converts value into the generic form produced by decoding JSON.
func toJSONValue(value any, useNumber bool) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value is not JSON encodable: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if useNumber {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("value is not JSON decodable: %w", err)
	}
	return v, nil
}
