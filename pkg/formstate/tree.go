package formstate

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Separator joins path segments into flat keys.
const Separator = "."

// Reader is a read-only view of a live store passed to field hooks.
type Reader interface {
	// Value returns the current raw value of the field at key.
	Value(key string) (any, bool)
	// Keys returns every flat key in traversal order.
	Keys() []string
}

type (
	// GetFunc maps a stored value to the value submitted.
	GetFunc func(value any, r Reader) any

	// SetFunc maps an input to the value stored. It may block.
	SetFunc func(ctx context.Context, input any, r Reader) (any, error)

	// ValidateFunc validates a stored value. Validation failures are
	// verdicts; a non-nil error means the validator itself failed.
	ValidateFunc func(ctx context.Context, value any, r Reader) (Verdict, error)
)

// Node is either a *Field or a Tree.
type Node interface {
	node()
}

// Field is a leaf of the tree.
type Field struct {
	Value    any
	Get      GetFunc
	Set      SetFunc
	Validate ValidateFunc
}

// Tree is a branch of the tree.
type Tree map[string]Node

func (*Field) node() {}
func (Tree) node()   {}

// Value builds a field holding v and no hooks.
func Value(v any) *Field { return &Field{Value: v} }

// Validated builds a field holding v checked by fn.
func Validated(v any, fn ValidateFunc) *Field { return &Field{Value: v, Validate: fn} }

// Join builds a flat key from path segments.
func Join(segments ...string) string { return strings.Join(segments, Separator) }

type leafRef struct {
	key   string
	field *Field
}

// flatten returns every leaf of t with its flat key. Branch keys are
// visited in lexical order.
func flatten(t Tree) ([]leafRef, error) {
	var out []leafRef
	if err := flattenInto(&out, t, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out *[]leafRef, t Tree, prefix string) error {
	if len(t) == 0 {
		if prefix == "" {
			return fmt.Errorf("%w: empty tree", ErrInvalidTree)
		}
		return fmt.Errorf("%w: empty branch %q", ErrInvalidTree, strings.TrimSuffix(prefix, Separator))
	}

	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name == "" || strings.Contains(name, Separator) {
			return fmt.Errorf("%w: bad key %q under %q", ErrInvalidTree, name, prefix)
		}
		key := prefix + name

		switch n := t[name].(type) {
		case *Field:
			if n == nil {
				return fmt.Errorf("%w: nil field %q", ErrInvalidTree, key)
			}
			*out = append(*out, leafRef{key: key, field: n})
		case Tree:
			if err := flattenInto(out, n, key+Separator); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: nil node %q", ErrInvalidTree, key)
		}
	}
	return nil
}
