package formstate

import (
	"mime/multipart"
	"reflect"
	"slices"
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/mohae/deepcopy"
)

// Snapshot is an independent copy of every field value keyed by flat key.
type Snapshot map[string]any

// Get returns the value recorded for key.
func (s Snapshot) Get(key string) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// Keys returns the recorded keys in lexical order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue isolates v from its owner. Slices, maps and structs are deep
// copied. Pointers and uploaded file headers are handles and are shared.
func copyValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *multipart.FileHeader:
		return x
	case []*multipart.FileHeader:
		return slices.Clone(x)
	}
	if reflect.ValueOf(v).Kind() == reflect.Pointer {
		return v
	}
	return deepcopy.Copy(v)
}

// Equal reports deep equality of two field values. Unexported struct fields
// are ignored, matching what snapshots copy. Types with an Equal method,
// such as time.Time, are compared with it.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, ignoreUnexported)
}

var ignoreUnexported = cmp.FilterPath(func(p cmp.Path) bool {
	sf, ok := p.Last().(cmp.StructField)
	if !ok {
		return false
	}
	f, ok := p.Index(-2).Type().FieldByName(sf.Name())
	return ok && !f.IsExported()
}, cmp.Ignore())

