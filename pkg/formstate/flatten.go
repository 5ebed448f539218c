package formstate

import (
	"fmt"
	"sort"
	"strings"
)

// Flatten turns nested string-keyed maps into a single map keyed by dotted
// paths. Values that are not maps, including empty maps, are kept as is.
func Flatten(nested map[string]any) map[string]any {
	out := make(map[string]any)
	flattenMap(out, nested, "")
	return out
}

func flattenMap(out, m map[string]any, prefix string) {
	for k, v := range m {
		if child, ok := v.(map[string]any); ok && len(child) > 0 {
			flattenMap(out, child, prefix+k+Separator)
			continue
		}
		out[prefix+k] = v
	}
}

// Unflatten is the inverse of Flatten. It fails with ErrShapeMismatch when
// one key is both a value and a prefix of another key.
func Unflatten(flat map[string]any) (map[string]any, error) {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any)
	for _, key := range keys {
		if err := setPath(out, strings.Split(key, Separator), flat[key]); err != nil {
			return nil, fmt.Errorf("%w: %s", err, key)
		}
	}
	return out, nil
}

func setPath(m map[string]any, path []string, v any) error {
	for _, seg := range path[:len(path)-1] {
		next, exists := m[seg]
		if !exists {
			child := make(map[string]any)
			m[seg] = child
			m = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return ErrShapeMismatch
		}
		m = child
	}

	last := path[len(path)-1]
	if _, exists := m[last]; exists {
		return ErrShapeMismatch
	}
	m[last] = v
	return nil
}
