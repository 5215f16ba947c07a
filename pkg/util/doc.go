// Package util provides small helpers shared by the transport and reqctl:
// body truncation for logs and secret masking for printed configuration.
package util
