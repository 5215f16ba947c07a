package validation

import (
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Issues flattens a schema error into field errors. Errors that are neither
// JSON Schema nor OpenAPI schema errors become a single root issue.
func Issues(err error, location string) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	collectIssues(err, location, &out)
	return out
}

func collectIssues(err error, location string, out *[]*FieldError) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, e := range multi {
			collectIssues(e, location, out)
		}
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if schemaErr.Origin != nil {
			var nested openapi3.MultiError
			if errors.As(schemaErr.Origin, &nested) {
				collectIssues(nested, location, out)
				return
			}
		}
		code := ErrCodeSchema
		switch schemaErr.SchemaField {
		case "required":
			code = ErrCodeRequired
		case "type":
			code = ErrCodeType
		case "enum":
			code = ErrCodeEnum
		}
		*out = append(*out, &FieldError{
			Field:    formatJSONPath(schemaErr.JSONPointer()),
			Location: location,
			Code:     code,
			Message:  schemaErr.Reason,
		})
		return
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		parseSchemaErrors(validationErr, location, out)
		return
	}

	*out = append(*out, &FieldError{
		Location: location,
		Code:     ErrCodeSchema,
		Message:  err.Error(),
	})
}

// parseSchemaErrors extracts the leaf errors of a JSON Schema validation error
func parseSchemaErrors(err *jsonschema.ValidationError, location string, out *[]*FieldError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &FieldError{
			Field:    formatJSONPath(splitPointer(err.InstanceLocation)),
			Location: location,
			Code:     ErrCodeSchema,
			Message:  err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		parseSchemaErrors(cause, location, out)
	}
}

func splitPointer(ptr string) []string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return nil
	}
	parts := strings.Split(ptr, "/")
	for i, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		parts[i] = strings.ReplaceAll(p, "~0", "~")
	}
	return parts
}

// formatJSONPath converts JSON pointer parts to $.foo.bar[0]; the root is
// rendered as an empty string.
func formatJSONPath(parts []string) string {
	var sb strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if isNumeric(part) {
			sb.WriteString("[")
			sb.WriteString(part)
			sb.WriteString("]")
		} else {
			sb.WriteString(".")
			sb.WriteString(part)
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return "$" + sb.String()
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
