package config

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied. Validation flags are
// overlaid one by one, so a file setting only errors keeps the other flags.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.BaseURL != "" {
		target.BaseURL = source.BaseURL
		target.Sources["baseUrl"] = sourceType
	}
	if source.APIKey != "" {
		target.APIKey = source.APIKey
		target.Sources["apiKey"] = sourceType
	}
	if source.ClientID != "" {
		target.ClientID = source.ClientID
		target.Sources["clientId"] = sourceType
	}
	if source.Origin != "" {
		target.Origin = source.Origin
		target.Sources["origin"] = sourceType
	}
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}
	if !source.Validation.IsZero() {
		target.Validation = target.Validation.Overlay(source.Validation)
		target.Sources["validation"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if source.SchemaDir != "" {
		target.SchemaDir = source.SchemaDir
		target.Sources["schemaDir"] = sourceType
	}
}
