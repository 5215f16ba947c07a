// Package schema holds the validators the SDK applies to request and
// response bodies, keyed by operation.
//
// A Key identifies one validator slot: the operation id, the message
// direction (request or response), the content variant and the HTTP status.
// Keys are plain comparable structs, so the Registry stores them directly as
// map keys.
//
//	reg := schema.NewRegistry()
//	s, err := schema.CompileJSON("create.json", raw)
//	if err != nil {
//	    return err
//	}
//	reg.Register(schema.Entry{Key: schema.RequestKey("RequestControllerV2_createRequest_v2"), Schema: s})
//
// Lookups are exact. A schema registered for status 404 does not answer a
// lookup for StatusAny, and a StatusAny schema does not answer a lookup for
// 404.
//
// Three validator flavours are provided:
//   - JSONSchema: JSON Schema (draft 2020-12) compiled from raw bytes
//   - OpenAPISchema: a kin-openapi schema, typically taken from an OpenAPI document
//   - Func: any function with the Parse signature
package schema
