package formstate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// leaf is the store-owned state of one field. Mutable members are guarded
// by Store.mu.
type leaf struct {
	key      string
	segments []string
	get      GetFunc
	set      SetFunc
	validate ValidateFunc

	value    any
	verdict  Verdict // visible error
	decision Verdict // result of the last applied run, written or not
	invalid  bool    // error map entry
	override bool    // visible error forced through SetErrors
	token    uint64
	// writePending is set while the current run owes a visible verdict.
	// A run that supersedes it inherits the write.
	writePending bool
}

// Store owns the values and validation state of one form.
type Store struct {
	id       string
	logger   *slog.Logger
	syncMode bool

	ctx    context.Context
	cancel context.CancelFunc

	keys     []string
	leaves   map[string]*leaf
	branches map[string]bool
	initial  Snapshot

	mu     sync.RWMutex
	closed bool

	pending async.Pending[Verdict]

	obsMu     sync.Mutex
	observers map[uint64]func(Change)
	nextObs   uint64
}

// New builds a store over tree. The tree's field values are taken over by
// the store; later edits to the Field structs have no effect.
//
// New snapshots the initial values for Reset and runs every validator once
// without writing visible errors, so IsValid reflects the initial values.
func New(ctx context.Context, tree Tree, opts ...Option) (*Store, error) {
	if tree == nil {
		return nil, ErrNotObservable
	}
	refs, err := flatten(tree)
	if err != nil {
		return nil, err
	}

	s := &Store{
		id:        uuid.NewString(),
		logger:    logger.Discard(),
		leaves:    make(map[string]*leaf, len(refs)),
		branches:  make(map[string]bool),
		observers: make(map[uint64]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("formstate"), logger.FormID(s.id))
	s.ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))

	for _, ref := range refs {
		segments := splitKey(ref.key)
		for i := 1; i < len(segments); i++ {
			s.branches[Join(segments[:i]...)] = true
		}
		s.keys = append(s.keys, ref.key)
		s.leaves[ref.key] = &leaf{
			key:      ref.key,
			segments: segments,
			get:      ref.field.Get,
			set:      ref.field.Set,
			validate: ref.field.Validate,
			value:    copyValue(ref.field.Value),
		}
	}
	s.initial = s.Snapshot()

	s.initialPass(ctx)
	s.logger.DebugContext(ctx, "store created", logger.FieldKeys(s.keys))
	return s, nil
}

// ID returns the store identifier.
func (s *Store) ID() string { return s.id }

// Keys returns every flat key in traversal order.
func (s *Store) Keys() []string { return slices.Clone(s.keys) }

// Value returns a copy of the raw value of the field at key.
func (s *Store) Value(key string) (any, bool) {
	l, ok := s.leaves[key]
	if !ok {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyValue(l.value), true
}

// Error returns the visible verdict of the field at key.
func (s *Store) Error(key string) Verdict {
	l, ok := s.leaves[key]
	if !ok {
		return Verdict{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return l.verdict
}

// Errors returns the visible verdict of every field.
func (s *Store) Errors() map[string]Verdict {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Verdict, len(s.keys))
	for _, key := range s.keys {
		out[key] = s.leaves[key].verdict
	}
	return out
}

// IsValidProperty reports whether the error map holds no invalid flag for
// key. Unknown keys read as valid.
func (s *Store) IsValidProperty(key string) bool {
	l, ok := s.leaves[key]
	if !ok {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !l.invalid
}

// IsValid reports whether every field is valid and no error set through
// SetErrors or SetError still stands.
func (s *Store) IsValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isValidLocked()
}

func (s *Store) isValidLocked() bool {
	for _, l := range s.leaves {
		if l.invalid || l.override {
			return false
		}
	}
	return true
}

// Snapshot returns a deep copy of the current values.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(Snapshot, len(s.keys))
	for _, key := range s.keys {
		snap[key] = copyValue(s.leaves[key].value)
	}
	return snap
}

// Validate runs the validators of keys, or of every field that has one
// when keys is empty, one after another and writes their verdicts.
// An explicit key without a validator fails with ErrNoValidator before any
// validator runs. A validator error marks its field invalid; the remaining
// fields are still validated and the first error is returned as a
// *FieldError.
func (s *Store) Validate(ctx context.Context, keys ...string) error {
	return s.validate(ctx, keys, true)
}

// ValidateQuiet is Validate without writing visible verdicts. Only the
// error map, and therefore IsValid, is updated.
func (s *Store) ValidateQuiet(ctx context.Context, keys ...string) error {
	return s.validate(ctx, keys, false)
}

func (s *Store) validate(ctx context.Context, keys []string, setError bool) error {
	targets, err := s.validationTargets(keys)
	if err != nil {
		return err
	}

	var first error
	for _, l := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.run(ctx, l, setError); err != nil && first == nil {
			first = fieldError(l.key, err)
		}
	}
	return first
}

func (s *Store) validationTargets(keys []string) ([]*leaf, error) {
	if len(keys) == 0 {
		targets := make([]*leaf, 0, len(s.keys))
		for _, key := range s.keys {
			if l := s.leaves[key]; l.validate != nil {
				targets = append(targets, l)
			}
		}
		return targets, nil
	}

	targets := make([]*leaf, 0, len(keys))
	for _, key := range keys {
		l, ok := s.leaves[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
		if l.validate == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoValidator, key)
		}
		targets = append(targets, l)
	}
	return targets, nil
}

// run validates l once. The key reads invalid while the validator runs and
// the result is dropped when a newer run for the same key started since.
func (s *Store) run(ctx context.Context, l *leaf, setError bool) (Verdict, error) {
	r, err := s.begin(l, setError)
	if err != nil {
		return Verdict{}, err
	}
	return s.finish(ctx, r)
}

type runState struct {
	l        *leaf
	token    uint64
	value    any
	wasValid bool
	setError bool
}

// begin takes the next token for l. Tokens are taken on the caller's
// goroutine so that run order follows call order. A run that replaces one
// still owing a visible verdict writes it instead.
func (s *Store) begin(l *leaf, setError bool) (runState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return runState{}, ErrClosed
	}
	l.token++
	setError = setError || l.writePending
	l.writePending = setError
	r := runState{
		l:        l,
		token:    l.token,
		value:    copyValue(l.value),
		wasValid: s.isValidLocked(),
		setError: setError,
	}
	l.invalid = true
	return r, nil
}

func (s *Store) finish(ctx context.Context, r runState) (Verdict, error) {
	l := r.l
	start := time.Now()
	verdict, err := l.validate(ctx, r.value, s)

	s.mu.Lock()
	if l.token != r.token {
		s.mu.Unlock()
		s.logger.DebugContext(ctx, "stale validation result dropped",
			logger.FieldKey(l.key), logger.Token(r.token), logger.Duration(time.Since(start)))
		return Verdict{}, nil
	}

	l.writePending = false
	var errorChanged bool
	if err != nil {
		l.invalid = true
	} else {
		l.invalid = verdict.IsInvalid()
		l.decision = verdict
		if r.setError && l.verdict != verdict {
			l.verdict = verdict
			errorChanged = true
		}
	}
	isValid := s.isValidLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.WarnContext(ctx, "validator failed", logger.FieldKey(l.key), logger.Error(err))
	} else {
		s.logger.DebugContext(ctx, "field validated",
			logger.FieldKey(l.key), logger.Token(r.token), slog.Bool("valid", verdict.IsValid()),
			logger.Duration(time.Since(start)))
	}

	if errorChanged {
		s.notify(Change{Kind: ChangeError, Key: l.key, Valid: isValid})
	}
	if r.wasValid != isValid {
		s.notify(Change{Kind: ChangeValidity, Valid: isValid})
	}
	return verdict, err
}

// initialPass seeds the error map and validates every field without
// writing visible verdicts.
func (s *Store) initialPass(ctx context.Context) {
	s.mu.Lock()
	for _, l := range s.leaves {
		l.invalid = false
	}
	s.mu.Unlock()

	for _, key := range s.keys {
		l := s.leaves[key]
		if l.validate == nil {
			continue
		}
		// errors are logged by run and leave the key invalid
		_, _ = s.run(ctx, l, false)
	}
}

// react re-validates l after its value changed and lifts a standing
// override on it.
func (s *Store) react(ctx context.Context, l *leaf) error {
	s.mu.Lock()
	wasValid := s.isValidLocked()
	l.override = false
	isValid := s.isValidLocked()
	s.mu.Unlock()

	if wasValid != isValid {
		s.notify(Change{Kind: ChangeValidity, Valid: isValid})
	}
	if l.validate == nil {
		return nil
	}

	if s.syncMode {
		_, err := s.run(ctx, l, true)
		return fieldError(l.key, err)
	}

	r, err := s.begin(l, true)
	if err != nil {
		return err
	}
	s.pending.Add(async.Async(s.ctx, r, func(ctx context.Context, r runState) (Verdict, error) {
		v, err := s.finish(ctx, r)
		return v, fieldError(r.l.key, err)
	}))
	return nil
}

// Recheck runs every validator against the current value and re-validates,
// with visible verdicts, the fields whose decision differs from the last
// applied one. Validators that read state outside the store use it to
// publish their new decision. Overrides on re-validated fields are lifted.
func (s *Store) Recheck(ctx context.Context) error {
	var first error
	for _, key := range s.keys {
		l := s.leaves[key]
		if l.validate == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		s.mu.RLock()
		value, decision := l.value, l.decision
		s.mu.RUnlock()

		verdict, err := l.validate(ctx, value, s)
		if err == nil && verdict == decision {
			continue
		}

		s.mu.Lock()
		l.override = false
		s.mu.Unlock()
		if _, err := s.run(ctx, l, true); err != nil && first == nil {
			first = fieldError(l.key, err)
		}
	}
	return first
}

// Settle waits for background validations to complete and returns the
// first error among them.
func (s *Store) Settle(ctx context.Context) error {
	return s.pending.Wait(ctx)
}

// Close cancels background validations. Mutating calls fail with ErrClosed
// afterwards; reads keep working.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}
