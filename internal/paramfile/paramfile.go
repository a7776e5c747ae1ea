// Package paramfile reads user parameter files into the flat mapping the
// workflow builders consume.
//
// TOML files are decoded with go-toml; YAML and JSON files with yaml.v3.
// Files written in pyAFQ's own layout group their keys into upper-case
// section tables such as [TRACTOGRAPHY_PARAMS]; those tables are flattened
// into the top level.
package paramfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a parameter file syntax.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("unsupported parameter file %q: expected .toml, .yaml, .yml or .json", path)
}

// Load reads and decodes the parameter file at path.
func Load(path string) (map[string]any, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}
	params, err := Decode(src, format)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", path, err)
	}
	return params, nil
}

// Decode decodes src in the given format and flattens section tables.
func Decode(src []byte, format Format) (map[string]any, error) {
	raw := map[string]any{}
	if len(bytes.TrimSpace(src)) > 0 {
		var err error
		switch format {
		case TOML:
			err = toml.Unmarshal(src, &raw)
		case YAML, JSON:
			err = yaml.Unmarshal(src, &raw)
		default:
			return nil, fmt.Errorf("unknown parameter format %q", format)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s parameters: %w", format, err)
		}
	}
	return flatten(raw)
}

// flatten lifts the entries of upper-case section tables to the top level.
func flatten(raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	origin := make(map[string]string, len(raw))
	put := func(key string, v any, from string) error {
		if prev, dup := origin[key]; dup {
			return fmt.Errorf("parameter %q is set in both %s and %s", key, prev, from)
		}
		out[key] = v
		origin[key] = from
		return nil
	}

	for key, v := range raw {
		table, isTable := v.(map[string]any)
		if !isTable || !isSectionName(key) {
			if err := put(key, v, "the top level"); err != nil {
				return nil, err
			}
			continue
		}
		for sub, sv := range table {
			if err := put(sub, sv, "section "+key); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// isSectionName reports whether key looks like a pyAFQ section name.
func isSectionName(key string) bool {
	hasLetter := false
	for _, r := range key {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r == '_' || (r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return hasLetter
}
