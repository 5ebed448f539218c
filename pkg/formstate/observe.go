package formstate

import "slices"

// ChangeKind classifies store notifications.
type ChangeKind uint8

const (
	// ChangeValue reports a new value for Change.Key.
	ChangeValue ChangeKind = iota + 1
	// ChangeError reports a new visible verdict for Change.Key.
	ChangeError
	// ChangeValidity reports that IsValid flipped to Change.Valid.
	ChangeValidity
	// ChangeReset reports that every value was restored.
	ChangeReset
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeValue:
		return "value"
	case ChangeError:
		return "error"
	case ChangeValidity:
		return "validity"
	case ChangeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change is a store notification.
type Change struct {
	Kind  ChangeKind
	Key   string
	Valid bool
}

// Observe registers fn for every change. Observers run synchronously on
// the goroutine that made the change, with no store lock held, so they
// may read from the store. The returned function unregisters fn.
func (s *Store) Observe(fn func(Change)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

func (s *Store) notify(c Change) {
	s.obsMu.Lock()
	if len(s.observers) == 0 {
		s.obsMu.Unlock()
		return
	}
	ids := make([]uint64, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	fns := make([]func(Change), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.observers[id])
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
