package upload

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// applyStrings copies string settings from config into the matching targets.
// Keys without a target are rejected so typos surface instead of being ignored.
func applyStrings(name string, config map[string]any, targets map[string]*string) error {
	for key := range config {
		if _, ok := targets[key]; !ok {
			return fmt.Errorf("%s: unknown setting %q (supported: %s)", name, key, strings.Join(sortedKeys(targets), ", "))
		}
	}
	for key, target := range targets {
		if val, ok := getStringValue(config, key); ok {
			if val == "" {
				return fmt.Errorf("%s: %s must not be empty", name, key)
			}
			*target = val
		} else if _, present := config[key]; present {
			return fmt.Errorf("%s: %s must be a string", name, key)
		}
	}
	return nil
}

func sortedKeys(m map[string]*string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Helper functions to extract values from config map
func getStringValue(config map[string]any, key string) (string, bool) {
	if val, ok := config[key]; ok {
		if str, ok := val.(string); ok {
			return str, true
		}
	}
	return "", false
}

func getStringValueWithDefault(config map[string]any, key, defaultValue string) string {
	if val, ok := getStringValue(config, key); ok {
		return val
	}
	return defaultValue
}

func getBoolValue(config map[string]any, key string, defaultValue bool) bool {
	if val, ok := config[key]; ok {
		switch v := val.(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
	}
	return defaultValue
}
