package engines

import (
	"fmt"
	"sort"
	"time"
)

// HookOptions carries backend-specific options for the handle construction
// step (schema, dial timeout, TLS mode). Recognized keys are documented
// per strategy package.
type HookOptions map[string]any

// EngineOptions carries options governing the runtime behavior of the
// resulting engine (pool sizing, connection lifetimes). Recognized keys
// are documented per strategy package.
type EngineOptions map[string]any

// UnknownOptionKeys returns the keys of opts that are not in the
// recognized set, sorted for stable error messages.
func UnknownOptionKeys(opts map[string]any, recognized ...string) []string {
	if len(opts) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(recognized))
	for _, k := range recognized {
		known[k] = struct{}{}
	}
	var unknown []string
	for k := range opts {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// OptionString reads a string option. The boolean reports presence; an
// error is returned when the key is present with a non-string value.
func OptionString(opts map[string]any, key string) (string, bool, error) {
	raw, ok := opts[key]
	if !ok {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", true, fmt.Errorf("option %q must be a string, got %T", key, raw)
	}
	return s, true, nil
}

// OptionBool reads a boolean option.
func OptionBool(opts map[string]any, key string) (bool, bool, error) {
	raw, ok := opts[key]
	if !ok {
		return false, false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, true, fmt.Errorf("option %q must be a bool, got %T", key, raw)
	}
	return b, true, nil
}

// OptionInt reads an integer option. Untyped numeric literals arriving
// through JSON or YAML decode as float64 and are accepted when integral.
func OptionInt(opts map[string]any, key string) (int, bool, error) {
	raw, ok := opts[key]
	if !ok {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return v, true, nil
	case int32:
		return int(v), true, nil
	case int64:
		return int(v), true, nil
	case float64:
		if v != float64(int(v)) {
			return 0, true, fmt.Errorf("option %q must be an integer, got %v", key, v)
		}
		return int(v), true, nil
	default:
		return 0, true, fmt.Errorf("option %q must be an integer, got %T", key, raw)
	}
}

// OptionDuration reads a duration option, accepting time.Duration values
// and strings in time.ParseDuration syntax.
func OptionDuration(opts map[string]any, key string) (time.Duration, bool, error) {
	raw, ok := opts[key]
	if !ok {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case time.Duration:
		return v, true, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, true, fmt.Errorf("option %q: %w", key, err)
		}
		return d, true, nil
	default:
		return 0, true, fmt.Errorf("option %q must be a duration, got %T", key, raw)
	}
}
