// Package validation decides whether a call is validated and runs the
// validation.
//
// Config holds the three runtime switches (requests, responses, errors).
// A per-call Override is either uniform (one boolean for all three) or
// partial (only the flags it sets), and Merge combines the two:
//
//	cfg := validation.Merge(validation.DefaultConfig(), &validation.Override{
//	    Responses: validation.Bool(false),
//	})
//
// The executor functions never panic and never return a Go error. They
// report the result as an Outcome so the caller decides what to do with a
// failure:
//
//	out := validation.ParseWithRegistry(reg, validation.RegistryInput{
//	    Key:   schema.ResponseKey("RequestControllerV2_getRequestStatus_v2", 200),
//	    Value: body,
//	})
//	if !out.Success {
//	    return out.Err
//	}
//
// Failures are *Error values that match ErrValidation with errors.Is and
// carry the underlying schema error as their cause, plus a flattened list of
// FieldError issues.
package validation
