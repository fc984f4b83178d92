package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// listKeys are the wrapper keys a list endpoint may nest its array under.
var listKeys = []string{"items", "data", "results", "records"}

// Decode normalizes the field names of a JSON object and decodes it into T.
// Numeric identifiers are coerced to strings.
func Decode[T any](raw json.RawMessage) (T, error) {
	var zero T
	v, err := parseJSON(raw)
	if err != nil {
		return zero, err
	}
	if m, ok := v.(map[string]any); ok {
		if inner, ok := unwrapRecord(m); ok {
			m = inner
		}
		v = coerceIDs(NormalizeKeys(m))
	}
	return reencode[T](v)
}

// DecodeList decodes a list response. It accepts a bare array, an object
// wrapping the array under items/data/results/records, or null.
func DecodeList[T any](raw json.RawMessage) ([]T, error) {
	v, err := parseJSON(raw)
	if err != nil {
		return nil, err
	}
	var arr []any
	switch t := v.(type) {
	case nil:
		return []T{}, nil
	case []any:
		arr = t
	case map[string]any:
		found := false
		for _, k := range listKeys {
			if a, ok := t[k].([]any); ok {
				arr, found = a, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("decoding list: object has none of %s", strings.Join(listKeys, ", "))
		}
	default:
		return nil, fmt.Errorf("decoding list: unexpected %T", v)
	}
	out := make([]T, 0, len(arr))
	for i, e := range arr {
		if m, ok := e.(map[string]any); ok {
			e = coerceIDs(NormalizeKeys(m))
		}
		item, err := reencode[T](e)
		if err != nil {
			return nil, fmt.Errorf("decoding list item %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func parseJSON(raw json.RawMessage) (any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return v, nil
}

// unwrapRecord handles single-record responses of the form {"data": {...}}.
func unwrapRecord(m map[string]any) (map[string]any, bool) {
	if len(m) != 1 {
		return nil, false
	}
	for _, k := range []string{"data", "record", "item"} {
		if inner, ok := m[k].(map[string]any); ok {
			return inner, true
		}
	}
	return nil, false
}

func coerceIDs(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if n, ok := val.(json.Number); ok && isIDKey(k) {
				t[k] = n.String()
				continue
			}
			t[k] = coerceIDs(val)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = coerceIDs(e)
		}
		return t
	default:
		return v
	}
}

func isIDKey(k string) bool {
	return k == "id" || strings.HasSuffix(k, "_id") || strings.HasSuffix(k, "Id")
}

func reencode[T any](v any) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("re-encoding record: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding record: %w", err)
	}
	return out, nil
}

// ToMap converts a struct into a generic map via its JSON tags, for use with
// DualCase. Zero-valued omitempty fields are dropped as encoding/json would.
func ToMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return m, nil
}
