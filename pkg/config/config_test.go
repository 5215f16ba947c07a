package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requestnetwork/request-api-go/pkg/validation"
)

// isolate points every config source at empty temp locations.
func isolate(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{EnvAPIURL, EnvAPIKey, EnvClientID, EnvOrigin, EnvTimeout, EnvLogLevel, EnvLogFormat, EnvSchemaDir} {
		t.Setenv(k, "")
	}
	t.Setenv(EnvValidate, "")
	_ = os.Unsetenv(EnvValidate)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, validation.DefaultConfig(), cfg.RuntimeValidation())
	assert.Equal(t, SourceDefault, cfg.Sources["baseUrl"])
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"http url", func(c *Config) { c.BaseURL = "http://localhost:3000" }, ""},
		{"ftp url", func(c *Config) { c.BaseURL = "ftp://example.com" }, "must be an http or https URL"},
		{"no host", func(c *Config) { c.BaseURL = "https://" }, "must be an http or https URL"},
		{"timeout too high", func(c *Config) { c.Timeout = 9999 }, "timeout 9999 is out of range"},
		{"timeout negative", func(c *Config) { c.Timeout = -1 }, "timeout -1 is out of range"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, `logLevel "loud"`},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, `logFormat "xml"`},
		{"origin without client id", func(c *Config) { c.Origin = "https://shop.example" }, "origin is only sent with a clientId"},
		{"client id and origin", func(c *Config) { c.ClientID = "cid"; c.Origin = "https://shop.example" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeConfig(t *testing.T) {
	t.Run("non-zero values override and record the source", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &Config{APIKey: "k", Timeout: 5}, SourceLocal)
		assert.Equal(t, "k", target.APIKey)
		assert.Equal(t, 5, target.Timeout)
		assert.Equal(t, DefaultBaseURL, target.BaseURL)
		assert.Equal(t, SourceLocal, target.Sources["apiKey"])
		assert.Equal(t, SourceDefault, target.Sources["baseUrl"])
	})

	t.Run("validation flags overlay", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &Config{Validation: &validation.Override{Errors: validation.Bool(true)}}, SourceGlobal)
		MergeConfig(target, &Config{Validation: &validation.Override{Responses: validation.Bool(false)}}, SourceLocal)
		assert.Equal(t, validation.Config{Requests: true, Responses: false, Errors: true}, target.RuntimeValidation())
		assert.Equal(t, SourceLocal, target.Sources["validation"])
	})

	t.Run("nil source", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceFlag)
		assert.Equal(t, NewDefault(), target)
	})
}

func TestParse(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		cfg, err := Parse("test.yaml", []byte(`
baseUrl: https://api.stage.request.network
apiKey: sk_test
timeout: 10
validation:
  responses: false
  errors: "yes please"
logLevel: debug
`))
		require.NoError(t, err)
		assert.Equal(t, "https://api.stage.request.network", cfg.BaseURL)
		assert.Equal(t, 10, cfg.Timeout)
		assert.Equal(t, validation.Config{Requests: true, Responses: false, Errors: false}, cfg.RuntimeValidation())
		assert.Nil(t, cfg.Validation.Errors, "a string flag stays unset")
	})

	t.Run("boolean validation", func(t *testing.T) {
		cfg, err := Parse("test.yaml", []byte("validation: false\n"))
		require.NoError(t, err)
		assert.Equal(t, validation.Config{}, cfg.RuntimeValidation())
	})

	t.Run("type error has a line", func(t *testing.T) {
		_, err := Parse("bad.yaml", []byte("baseUrl: https://x\ntimeout: soon\n"))
		require.Error(t, err)
		var cerr *ConfigError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, "bad.yaml", cerr.Path)
		assert.Equal(t, 2, cerr.Line)
		assert.Contains(t, err.Error(), "bad.yaml (line 2, column 1)")
	})

	t.Run("validation list is rejected", func(t *testing.T) {
		_, err := Parse("bad.yaml", []byte("validation:\n  - requests\n"))
		var cerr *ConfigError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, 2, cerr.Line)
	})
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	empty := filepath.Join(dir, "empty.yaml")
	writeFile(t, empty, "")
	_, err = LoadFile(empty)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestConfigError_Error(t *testing.T) {
	assert.Equal(t, "/path/to/file.yaml: boom", (&ConfigError{Path: "/path/to/file.yaml", Message: "boom"}).Error())
	assert.Equal(t, "/path/to/file.yaml (line 3, column 7): boom",
		(&ConfigError{Path: "/path/to/file.yaml", Line: 3, Column: 7, Message: "boom"}).Error())
}

func TestLoadAll_Precedence(t *testing.T) {
	isolate(t)
	writeFile(t, GlobalConfigSearchPaths()[0], "baseUrl: https://global.example\napiKey: global-key\ntimeout: 20\nlogLevel: info\n")

	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".requestrc.yaml"), "apiKey: local-key\ntimeout: 15\n")

	t.Setenv(EnvTimeout, "12")
	t.Setenv(EnvValidate, "requests,errors")

	cfg, err := LoadAll(LoadOptions{Dir: project, Flags: &Config{LogLevel: "debug"}})
	require.NoError(t, err)

	assert.Equal(t, "https://global.example", cfg.BaseURL)
	assert.Equal(t, SourceGlobal, cfg.Sources["baseUrl"])
	assert.Equal(t, "local-key", cfg.APIKey)
	assert.Equal(t, SourceLocal, cfg.Sources["apiKey"])
	assert.Equal(t, 12, cfg.Timeout)
	assert.Equal(t, SourceEnv, cfg.Sources["timeout"])
	assert.Equal(t, validation.Config{Requests: true, Responses: false, Errors: true}, cfg.RuntimeValidation())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, SourceFlag, cfg.Sources["logLevel"])
}

func TestLoadAll_ExplicitFile(t *testing.T) {
	isolate(t)
	writeFile(t, GlobalConfigSearchPaths()[0], "apiKey: global-key\n")

	explicit := filepath.Join(t.TempDir(), "ci.yaml")
	writeFile(t, explicit, "clientId: cid_ci\norigin: https://ci.example\n")

	cfg, err := LoadAll(LoadOptions{File: explicit, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey, "global config is skipped")
	assert.Equal(t, "cid_ci", cfg.ClientID)
	assert.Equal(t, SourceFile, cfg.Sources["clientId"])

	_, err = LoadAll(LoadOptions{File: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadAll_BadEnv(t *testing.T) {
	isolate(t)

	t.Setenv(EnvTimeout, "soon")
	_, err := LoadAll(LoadOptions{Dir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTimeout)

	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvValidate, "bodies")
	_, err = LoadAll(LoadOptions{Dir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown validation flag "bodies"`)
}

func TestLoadAll_EmptyValidateEnvIsUnset(t *testing.T) {
	isolate(t)
	t.Setenv(EnvValidate, " ")

	cfg, err := LoadAll(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, validation.Config{Requests: true, Responses: true}, cfg.RuntimeValidation())
	assert.Equal(t, SourceDefault, cfg.Sources["validation"])
}

func TestLoadAll_BrokenLocalFile(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, ".requestrc.yml"), "timeout: [1, 2]\n")

	_, err := LoadAll(LoadOptions{Dir: project})
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, filepath.Join(project, ".requestrc.yml"), cerr.Path)
}

func TestSaveFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".requestrc.yaml")
	in := &Config{
		BaseURL:    "https://api.stage.request.network",
		APIKey:     "sk_test",
		Validation: &validation.Override{Errors: validation.Bool(true)},
	}
	require.NoError(t, SaveFile(path, in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in.BaseURL, out.BaseURL)
	assert.Equal(t, in.APIKey, out.APIKey)
	assert.Equal(t, in.Validation, out.Validation)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
