package form

import "github.com/dmitrymomot/formkit/pkg/formstate"

// sameValue is the dirty comparison: deep equality, except that nil and
// the empty string are interchangeable.
func sameValue(a, b any) bool {
	if blank(a) && blank(b) {
		return true
	}
	return formstate.Equal(a, b)
}

func blank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// diff returns the keys whose current value differs from snap.
func diff(s *formstate.Store, snap formstate.Snapshot) []string {
	var changed []string
	for _, key := range s.Keys() {
		current, _ := s.Value(key)
		initial, _ := snap.Get(key)
		if !sameValue(initial, current) {
			changed = append(changed, key)
		}
	}
	return changed
}
