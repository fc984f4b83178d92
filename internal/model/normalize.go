package model

import (
	"sort"
	"strings"
	"unicode"
)

// ToSnake converts a camelCase or PascalCase key to snake_case. Keys that
// are already snake_case are returned unchanged.
func ToSnake(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prev != '_' && (unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamel converts a key to lowerCamelCase. It goes through ToSnake first so
// that "eventID", "EventId" and "event_id" all map to "eventId". Keys whose
// camel form would not snake back to the same key are returned in snake_case.
func ToCamel(s string) string {
	snake := ToSnake(s)
	lead := len(snake) - len(strings.TrimLeft(snake, "_"))
	core := snake[lead:]
	if !strings.Contains(core, "_") {
		return snake
	}
	var b strings.Builder
	b.WriteString(snake[:lead])
	for i, p := range strings.Split(core, "_") {
		if i == 0 {
			b.WriteString(p)
			continue
		}
		r := []rune(p)
		if len(r) == 0 || !unicode.IsLetter(r[0]) {
			b.WriteByte('_')
			b.WriteString(p)
			continue
		}
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	camel := b.String()
	if ToSnake(camel) != snake {
		return snake
	}
	return camel
}

// NormalizeKeys returns a copy of m in which every key is present in both
// its snake_case and camelCase spelling. Existing keys keep their values;
// a missing spelling takes the value of the first original key (in sorted
// order) that maps to it. Nested objects and arrays of objects are
// normalized too. The result is a fixed point: normalizing it again yields
// an equal map.
func NormalizeKeys(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m)*2)
	keys := make([]string, 0, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, alt := range [2]string{ToSnake(k), ToCamel(k)} {
			if _, ok := out[alt]; !ok {
				out[alt] = out[k]
			}
		}
	}
	return out
}

// DualCase is NormalizeKeys for outgoing payloads: the backend reads some
// fields as camelCase and others as snake_case, so both are sent.
func DualCase(payload map[string]any) map[string]any {
	return NormalizeKeys(payload)
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return NormalizeKeys(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
