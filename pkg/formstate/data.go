package formstate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

func splitKey(key string) []string { return strings.Split(key, Separator) }

// FlatData returns every field value keyed by flat key. With isSubmit set,
// fields with a Get hook report the hook's result instead of the raw value.
func (s *Store) FlatData(isSubmit bool) map[string]any {
	s.mu.RLock()
	out := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		out[key] = copyValue(s.leaves[key].value)
	}
	s.mu.RUnlock()

	if isSubmit {
		for _, key := range s.keys {
			if l := s.leaves[key]; l.get != nil {
				out[key] = l.get(out[key], s)
			}
		}
	}
	return out
}

// GetData is FlatData nested back into the shape of the tree.
func (s *Store) GetData(isSubmit bool) map[string]any {
	flat := s.FlatData(isSubmit)
	out := make(map[string]any)
	for _, key := range s.keys {
		m := out
		segments := s.leaves[key].segments
		for _, seg := range segments[:len(segments)-1] {
			child, ok := m[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				m[seg] = child
			}
			m = child
		}
		m[segments[len(segments)-1]] = flat[key]
	}
	return out
}

type assignment struct {
	l     *leaf
	input any
}

// collect matches nested against the tree shape and returns the addressed
// leaves ordered by key.
func (s *Store) collect(nested map[string]any, prefix string, out *[]assignment) error {
	names := make([]string, 0, len(nested))
	for name := range nested {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key := prefix + name
		v := nested[name]

		if l, ok := s.leaves[key]; ok {
			*out = append(*out, assignment{l: l, input: v})
			continue
		}
		if !s.branches[key] {
			return fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
		child, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s expects a map, got %T", ErrShapeMismatch, key, v)
		}
		if err := s.collect(child, key+Separator, out); err != nil {
			return err
		}
	}
	return nil
}

// SetData assigns the leaves present in nested, which follows the shape of
// the tree. Fields with a Set hook store the hook's result. Absent fields
// keep their values. The shape of nested is checked before anything is
// assigned; a failing Set hook stops the assignment at that field.
func (s *Store) SetData(ctx context.Context, nested map[string]any) error {
	var assignments []assignment
	if err := s.collect(nested, "", &assignments); err != nil {
		return err
	}

	var first error
	for _, a := range assignments {
		if err := ctx.Err(); err != nil {
			return err
		}
		v := a.input
		if a.l.set != nil {
			out, err := a.l.set(ctx, a.input, s)
			if err != nil {
				s.logger.WarnContext(ctx, "set hook failed", logger.FieldKey(a.l.key), logger.Error(err))
				return fieldError(a.l.key, err)
			}
			v = out
		}
		if err := s.assign(ctx, a.l, v); err != nil {
			if errors.Is(err, ErrClosed) {
				return err
			}
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// SetValue assigns v to the field at key without the Set hook. A changed
// value re-validates the field, which lifts an override on it.
func (s *Store) SetValue(ctx context.Context, key string, v any) error {
	l, ok := s.leaves[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	return s.assign(ctx, l, v)
}

func (s *Store) assign(ctx context.Context, l *leaf, v any) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if Equal(l.value, v) {
		s.mu.Unlock()
		return nil
	}
	l.value = copyValue(v)
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeValue, Key: l.key, Valid: s.IsValid()})
	return s.react(ctx, l)
}

// SetErrors writes visible verdicts for the leaves present in nested.
// Values are converted with VerdictOf. Every addressed field is marked as
// overridden and keeps IsValid false until its value changes or Recheck
// re-validates it.
func (s *Store) SetErrors(nested map[string]any) error {
	var assignments []assignment
	if err := s.collect(nested, "", &assignments); err != nil {
		return err
	}
	for _, a := range assignments {
		if err := s.setError(a.l, VerdictOf(a.input)); err != nil {
			return err
		}
	}
	return nil
}

// SetError writes a visible verdict for key and marks it as overridden.
func (s *Store) SetError(key string, v Verdict) error {
	l, ok := s.leaves[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	return s.setError(l, v)
}

func (s *Store) setError(l *leaf, v Verdict) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	wasValid := s.isValidLocked()
	l.verdict = v
	l.override = true
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeError, Key: l.key, Valid: false})
	if wasValid {
		s.notify(Change{Kind: ChangeValidity, Valid: false})
	}
	return nil
}

// Reset restores the values captured when the store was created, clears
// every verdict and override, and repeats the initial validation pass.
func (s *Store) Reset(ctx context.Context) error {
	return s.ResetTo(ctx, s.initial)
}

// ResetTo is Reset with values taken from snap. Keys missing from snap
// keep their current value. In-flight validations are discarded.
func (s *Store) ResetTo(ctx context.Context, snap Snapshot) error {
	for key := range snap {
		if _, ok := s.leaves[key]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	for _, l := range s.leaves {
		if v, ok := snap[l.key]; ok {
			l.value = copyValue(v)
		}
		l.verdict = Valid()
		l.override = false
		l.invalid = false
		l.writePending = false
		l.token++
	}
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "store reset")
	s.notify(Change{Kind: ChangeReset, Valid: true})
	s.initialPass(ctx)
	return nil
}
