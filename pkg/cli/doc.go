// Package cli implements reqctl, a command-line client for the Request
// Network API built on the SDK packages.
//
// Every command resolves its settings through pkg/config, so flags,
// REQUEST_* environment variables and .requestrc.yaml files apply uniformly.
// With --json (or --query) results are written to stdout as JSON only;
// anything meant for humans goes to stderr.
package cli
