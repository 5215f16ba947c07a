package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// GlobalConfigDir is the directory for global config, under os.UserConfigDir.
const GlobalConfigDir = "request-api"

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".requestrc.yaml", ".requestrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrEmptyFile    = errors.New("configuration file is empty")
)

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d): %s", e.Path, e.Line, e.Column, e.Message)
	}
	return e.Path + ": " + e.Message
}

// FindLocalConfig returns the first local config file in dir, or "" when
// there is none.
func FindLocalConfig(dir string) string {
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GlobalConfigSearchPaths returns the paths searched for global config.
func GlobalConfigSearchPaths() []string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	paths := make([]string, len(GlobalConfigFileNames))
	for i, name := range GlobalConfigFileNames {
		paths[i] = filepath.Join(configDir, GlobalConfigDir, name)
	}
	return paths
}

// FindGlobalConfig returns the path to the global config file, or "" when
// there is none.
func FindGlobalConfig() string {
	for _, path := range GlobalConfigSearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadFile loads a Config from a YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return Parse(path, data)
}

// Parse decodes YAML config data. path is only used in errors.
func Parse(path string, data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, yamlError(path, err)
	}
	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// yamlError turns a yaml.v3 error into a ConfigError. yaml.v3 reports the
// line in the message text only.
func yamlError(path string, err error) *ConfigError {
	cerr := &ConfigError{Path: path, Message: err.Error()}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		cerr.Message = typeErr.Errors[0]
	}
	if m := yamlLine.FindStringSubmatch(cerr.Message); m != nil {
		cerr.Line, _ = strconv.Atoi(m[1])
		cerr.Column = 1
	}
	return cerr
}

// LoadOptions tunes LoadAll.
type LoadOptions struct {
	// File replaces the local and global lookup when set.
	File string
	// Dir is searched for a local config; defaults to the working directory.
	Dir string
	// Flags holds values given on the command line.
	Flags *Config
}

// LoadAll loads configuration from all sources and merges them.
// Precedence: flags > env > local config (or explicit file) > global config > defaults
func LoadAll(opts LoadOptions) (*Config, error) {
	cfg := NewDefault()

	if opts.File != "" {
		fileCfg, err := LoadFile(opts.File)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, fileCfg, SourceFile)
	} else {
		if path := FindGlobalConfig(); path != "" {
			globalCfg, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			MergeConfig(cfg, globalCfg, SourceGlobal)
		}

		dir := opts.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			dir = wd
		}
		if path := FindLocalConfig(dir); path != "" {
			localCfg, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			MergeConfig(cfg, localCfg, SourceLocal)
		}
	}

	if err := LoadEnvConfig(cfg); err != nil {
		return nil, err
	}
	MergeConfig(cfg, opts.Flags, SourceFlag)

	return cfg, nil
}
