// Package logging configures the slog loggers used by the SDK and reqctl.
//
// The SDK never logs unless it is given a logger. Components accept a
// *slog.Logger through an option and fall back to Nop:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	c, err := client.New(client.WithLogger(logger))
//
// At debug level the transport logs every call with its operation id,
// status, duration and a truncated body. Validation failures of error
// bodies are logged at warn level.
package logging
