package forms

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Values is the raw client value tree. It may hold file references, time.Time
// values and Go-typed boolean sets.
type Values map[string]any

// TransportValues is the serialized tree: JSON-safe, attachments reduced to metadata.
type TransportValues map[string]any

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// Lookup resolves a dot-separated path. A missing segment yields (nil, false).
// The last segment may name a member of a boolean set held as a list of keys.
func Lookup(tree map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var current any = tree
	parts := strings.Split(path, ".")
	for i, part := range parts {
		if m, ok := asMap(current); ok {
			next, exists := m[part]
			if !exists {
				return nil, false
			}
			current = next
			continue
		}
		if keys, ok := asStringList(current); ok && i == len(parts)-1 {
			for _, k := range keys {
				if k == part {
					return true, true
				}
			}
			return false, true
		}
		return nil, false
	}
	return current, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Values:
		return m, true
	case TransportValues:
		return m, true
	case map[string]bool:
		out := make(map[string]any, len(m))
		for k, b := range m {
			out[k] = b
		}
		return out, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asStringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// selection returns the checked keys of a boolean set.
func selection(v any) ([]string, bool) {
	if keys, ok := asStringList(v); ok {
		return keys, true
	}
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	selected := make([]string, 0, len(m))
	for key, raw := range m {
		checked, ok := toBool(raw)
		if !ok {
			return nil, false
		}
		if checked {
			selected = append(selected, key)
		}
	}
	return selected, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// toBool accepts real booleans and the string forms posted by HTML forms.
func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "on", "yes", "1":
			return true, true
		case "false", "off", "no", "0", "":
			return false, true
		}
	}
	return false, false
}

func toDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case *time.Time:
		if d == nil {
			return time.Time{}, false
		}
		return *d, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(d)); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// isBlank reports values that count as "not provided" regardless of field kind.
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case time.Time:
		return x.IsZero()
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	return false
}
