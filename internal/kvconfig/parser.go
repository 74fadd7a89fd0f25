// Package kvconfig builds adapter and webhook settings from inline flags.
package kvconfig

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// ParseKV parses a key=value pair, attempting type inference for the value
func ParseKV(kvPair string) (string, any, error) {
	key, raw, found := strings.Cut(kvPair, "=")
	if !found {
		return "", nil, fmt.Errorf("invalid format, expected key=value: %s", kvPair)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", nil, fmt.Errorf("empty key in key=value pair")
	}

	return key, inferValue(strings.TrimSpace(raw)), nil
}

func inferValue(s string) any {
	// Integers first so "1" stays a number rather than a boolean
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}

// ParseJSON parses a JSON object of settings
func ParseJSON(jsonStr string) (map[string]any, error) {
	var settings map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &settings); err != nil {
		return nil, fmt.Errorf("invalid JSON settings (expected an object): %w", err)
	}
	return settings, nil
}

// Merge combines setting maps. Later maps override earlier ones.
func Merge(sources ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, src := range sources {
		maps.Copy(result, src)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// Build merges the JSON object and the key=value pairs, with pairs taking precedence.
// It returns nil when neither source supplies a setting.
func Build(jsonStr string, kvPairs []string) (map[string]any, error) {
	var sources []map[string]any

	if strings.TrimSpace(jsonStr) != "" {
		settings, err := ParseJSON(jsonStr)
		if err != nil {
			return nil, err
		}
		sources = append(sources, settings)
	}

	if len(kvPairs) > 0 {
		pairs := make(map[string]any, len(kvPairs))
		for _, kv := range kvPairs {
			key, value, err := ParseKV(kv)
			if err != nil {
				return nil, err
			}
			pairs[key] = value
		}
		sources = append(sources, pairs)
	}

	return Merge(sources...), nil
}
