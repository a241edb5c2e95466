package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadDefaultsOverlay reads the YAML (or JSON, which YAML accepts) file at
// path and returns it as a nested map. An empty path yields an empty map.
// Keys are returned as written; no dotted-key expansion happens.
func LoadDefaultsOverlay(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	k := koanf.New("\x00")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDefaultsOverlay, path, err)
	}

	return k.Raw(), nil
}
