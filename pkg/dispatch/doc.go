// Package dispatch runs an operation through validation and the transport.
//
// For RequestJSON the steps are:
//
//  1. Resolve the validation config: the transport defaults merged with the
//     call's override.
//  2. When request validation is on and the call has a body and a request
//     schema key, validate the body. A missing schema lets the body through
//     unchanged. A failure is returned before anything is sent.
//  3. Record the operation id and validation settings in the request Meta.
//  4. Send the request. Transport errors are returned as they are.
//  5. When response validation is on, validate the response body against the
//     response schema for the returned status. Here a missing schema is a
//     failure.
//
// RequestVoid runs steps 1 to 4 and discards the response body.
package dispatch
