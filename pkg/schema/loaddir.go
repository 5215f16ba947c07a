package schema

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSuffix is the suffix of schema files picked up by LoadDir.
const FileSuffix = ".schema.json"

// KeyFromFileName derives a key from a schema file name of the form
// <operationId>.<request|response>[.<status>][.<variant>].schema.json.
func KeyFromFileName(name string) (Key, error) {
	base := path.Base(name)
	if !strings.HasSuffix(base, FileSuffix) {
		return Key{}, fmt.Errorf("schema file %q must end with %s", base, FileSuffix)
	}
	parts := strings.Split(strings.TrimSuffix(base, FileSuffix), ".")
	if len(parts) < 2 || parts[0] == "" {
		return Key{}, fmt.Errorf("schema file %q must be named <operationId>.<request|response>%s", base, FileSuffix)
	}

	kind, err := ParseKind(parts[1])
	if err != nil {
		return Key{}, fmt.Errorf("schema file %q: %w", base, err)
	}
	key := Key{OperationID: parts[0], Kind: kind}

	rest := parts[2:]
	if len(rest) > 0 {
		if status, err := strconv.Atoi(rest[0]); err == nil {
			if status < 100 || status > 599 {
				return Key{}, fmt.Errorf("schema file %q: status %d out of range", base, status)
			}
			key.Status = status
			rest = rest[1:]
		}
	}
	switch len(rest) {
	case 0:
	case 1:
		key.Variant = rest[0]
	default:
		return Key{}, fmt.Errorf("schema file %q has too many segments", base)
	}
	return key.Normalize(), nil
}

// LoadDir compiles every *.schema.json file below dir and registers it. Files
// are processed in lexical order so later files win on key collisions.
func LoadDir(reg *Registry, dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, fmt.Errorf("schema directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("schema directory %s is not a directory", dir)
	}
	return LoadFS(reg, os.DirFS(dir))
}

// LoadFS is LoadDir over an arbitrary file system.
func LoadFS(reg *Registry, fsys fs.FS) (int, error) {
	matches, err := doublestar.Glob(fsys, "**/*"+FileSuffix)
	if err != nil {
		return 0, fmt.Errorf("failed to list schema files: %w", err)
	}
	sort.Strings(matches)

	for i, name := range matches {
		key, err := KeyFromFileName(name)
		if err != nil {
			return i, err
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return i, fmt.Errorf("failed to read schema file %s: %w", name, err)
		}
		compiled, err := CompileJSON(name, raw)
		if err != nil {
			return i, err
		}
		reg.Register(Entry{Key: key, Schema: compiled})
	}
	return len(matches), nil
}
