package validation

import (
	"fmt"

	"github.com/requestnetwork/request-api-go/pkg/schema"
)

const fallbackMessage = "validation failed"

// Lookup resolves schemas by exact key. *schema.Registry implements it.
type Lookup interface {
	Get(key schema.Key) (schema.Schema, bool)
}

// Outcome is the result of a validation attempt. On success Data holds the
// parsed value; on failure Err is set.
type Outcome struct {
	Success bool
	Data    any
	Err     *Error
}

// ParseInput is the input of ParseWithSchema.
type ParseInput struct {
	Schema      schema.Schema
	Value       any
	Description string
	// Key is recorded on failures; it is not used for lookup.
	Key schema.Key
	// Location is the FieldError location; defaults to body.
	Location string
}

// RegistryInput is the input of ParseWithRegistry.
type RegistryInput struct {
	Key                 schema.Key
	Value               any
	Description         string
	SkipOnMissingSchema bool
}

// ParseWithSchema runs the schema against the value. It never panics; a
// panicking schema is reported as a failure.
func ParseWithSchema(in ParseInput) (out Outcome) {
	message := in.Description
	if message == "" {
		message = fallbackMessage
	}

	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Err: &Error{
				Message: message,
				Key:     in.Key,
				Cause:   fmt.Errorf("schema panicked: %v", r),
			}}
		}
	}()

	if in.Schema == nil {
		return Outcome{Err: &Error{Message: message, Key: in.Key, Cause: fmt.Errorf("no schema")}}
	}

	data, err := in.Schema.Parse(in.Value)
	if err != nil {
		location := in.Location
		if location == "" {
			location = LocationBody
		}
		return Outcome{Err: &Error{
			Message: message,
			Key:     in.Key,
			Cause:   err,
			Issues:  Issues(err, location),
		}}
	}
	return Outcome{Success: true, Data: data}
}

// ParseWithRegistry looks the key up and validates the value against it.
// When no schema is registered the value passes through unchanged if
// SkipOnMissingSchema is set, and fails otherwise.
func ParseWithRegistry(reg Lookup, in RegistryInput) Outcome {
	var (
		s  schema.Schema
		ok bool
	)
	if reg != nil {
		s, ok = reg.Get(in.Key)
	}
	if !ok {
		if in.SkipOnMissingSchema {
			return Outcome{Success: true, Data: in.Value}
		}
		return Outcome{Err: &Error{
			Message: fmt.Sprintf("no schema registered for operation %s (%s)", in.Key.OperationID, in.Key.String()),
			Key:     in.Key,
		}}
	}

	location := LocationBody
	if in.Key.Kind == schema.KindResponse {
		location = LocationResponse
	}
	return ParseWithSchema(ParseInput{
		Schema:      s,
		Value:       in.Value,
		Description: in.Description,
		Key:         in.Key,
		Location:    location,
	})
}
