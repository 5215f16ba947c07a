// Package config loads reqctl and SDK settings.
//
// Values come from several sources, highest precedence first:
//
//  1. Command-line flags
//  2. Environment variables (REQUEST_*)
//  3. Local config file (.requestrc.yaml in the current directory)
//  4. Global config file (<user config dir>/request-api/config.yaml)
//  5. Defaults
//
// Sources records where each value came from, for `reqctl config show`.
package config
