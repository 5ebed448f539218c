package form_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formstate"
)

func requiredName(_ context.Context, v any, _ formstate.Reader) (formstate.Verdict, error) {
	if s, _ := v.(string); s == "" {
		return formstate.Invalid("Name is required"), nil
	}
	return formstate.Valid(), nil
}

func newStore(t *testing.T, tree formstate.Tree) *formstate.Store {
	t.Helper()
	s, err := formstate.New(context.Background(), tree, formstate.WithSyncValidation())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func noop(context.Context, map[string]any) error { return nil }

func TestNew(t *testing.T) {
	_, err := form.New(nil, noop)
	assert.ErrorIs(t, err, form.ErrNilStore)

	s := newStore(t, formstate.Tree{"name": formstate.Value(nil)})
	_, err = form.New(s, nil)
	assert.ErrorIs(t, err, form.ErrNilSubmit)

	c, err := form.New(s, noop)
	require.NoError(t, err)
	assert.Same(t, s, c.Store())
	assert.True(t, c.IsReady())
	assert.False(t, c.IsDirty())
	assert.False(t, c.IsSubmitting())
}

func TestController_Dirty(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, formstate.Tree{
		"name": formstate.Value(nil),
		"bio":  formstate.Value(""),
		"tags": formstate.Value([]string{"a"}),
	})
	c, err := form.New(s, noop)
	require.NoError(t, err)

	require.NoError(t, s.SetValue(ctx, "name", ""))
	assert.False(t, c.IsDirty(), "nil to empty string is not a change")

	require.NoError(t, s.SetValue(ctx, "bio", nil))
	assert.False(t, c.IsDirty(), "empty string to nil is not a change")

	require.NoError(t, s.SetValue(ctx, "name", "John"))
	assert.True(t, c.IsDirty())
	assert.Equal(t, []string{"name"}, c.DirtyFields())

	require.NoError(t, s.SetValue(ctx, "name", nil))
	assert.False(t, c.IsDirty(), "reverting clears dirty")

	require.NoError(t, s.SetValue(ctx, "tags", []string{"a", "b"}))
	assert.True(t, c.IsDirty())
	require.NoError(t, s.SetValue(ctx, "tags", []string{"a"}))
	assert.False(t, c.IsDirty(), "deep equality")

	require.NoError(t, s.SetValue(ctx, "tags", nil))
	assert.True(t, c.IsDirty(), "nil slice differs from a populated one")
}

func TestController_PristineSubmitBlocked(t *testing.T) {
	s := newStore(t, formstate.Tree{"name": formstate.Value("John")})
	var calls atomic.Int32
	c, err := form.New(s, func(context.Context, map[string]any) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomePristine, outcome)
	assert.Zero(t, calls.Load())
	assert.False(t, c.IsSubmitting())
}

func TestController_AllowPristineSubmit(t *testing.T) {
	s := newStore(t, formstate.Tree{"name": formstate.Value("John")})
	var calls atomic.Int32
	c, err := form.New(s, func(context.Context, map[string]any) error {
		calls.Add(1)
		return nil
	}, form.WithAllowPristineSubmit(true))
	require.NoError(t, err)

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeSubmitted, outcome)
	assert.Equal(t, int32(1), calls.Load())
}

func TestController_InvalidSubmitBlocked(t *testing.T) {
	s := newStore(t, formstate.Tree{"name": formstate.Validated(nil, requiredName)})
	var calls atomic.Int32
	c, err := form.New(s, func(context.Context, map[string]any) error {
		calls.Add(1)
		return nil
	}, form.WithAllowPristineSubmit(true))
	require.NoError(t, err)

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeInvalid, outcome)
	assert.Zero(t, calls.Load())
	assert.Equal(t, formstate.Invalid("Name is required"), s.Error("name"))
	assert.False(t, c.IsSubmitting())
}

func TestController_ServerErrorsBlockSubmit(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, formstate.Tree{"name": formstate.Validated("John", requiredName)})
	c, err := form.New(s, noop, form.WithAllowPristineSubmit(true))
	require.NoError(t, err)

	require.NoError(t, s.SetErrors(map[string]any{"name": "Name is taken"}))
	outcome, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeInvalid, outcome)

	require.NoError(t, s.SetValue(ctx, "name", "Johnny"))
	outcome, err = c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeSubmitted, outcome)
}

func TestController_SuccessfulSubmit(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, formstate.Tree{
		"id":   formstate.Value(nil),
		"name": formstate.Validated(nil, requiredName),
	})

	var got []map[string]any
	c, err := form.New(s, func(_ context.Context, data map[string]any) error {
		got = append(got, data)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, s.SetValue(ctx, "name", "John Doe"))
	assert.True(t, c.IsDirty())

	outcome, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeSubmitted, outcome)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]any{"id": nil, "name": "John Doe"}, got[0])
	assert.False(t, c.IsDirty())
	assert.False(t, c.IsSubmitting())

	require.NoError(t, s.SetValue(ctx, "name", "Jane"))
	assert.True(t, c.IsDirty())

	require.NoError(t, c.Reset(ctx))
	v, _ := s.Value("name")
	assert.Equal(t, "John Doe", v, "reset restores the post-submit value")
	assert.False(t, c.IsDirty())

	require.NoError(t, s.Reset(ctx))
	v, _ = s.Value("name")
	assert.Nil(t, v, "store reset restores construction values")
}

func TestController_HandlerError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("server unavailable")
	s := newStore(t, formstate.Tree{"name": formstate.Value("")})
	c, err := form.New(s, func(context.Context, map[string]any) error { return boom })
	require.NoError(t, err)

	require.NoError(t, s.SetValue(ctx, "name", "John"))
	outcome, err := c.Submit(ctx)
	assert.Same(t, boom, err)
	assert.Equal(t, form.OutcomeFailed, outcome)
	assert.False(t, c.IsSubmitting())
	assert.True(t, c.IsDirty(), "failed submits keep the snapshot")
}

func TestController_ConcurrentSubmit(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, formstate.Tree{"name": formstate.Value("")})

	entered := make(chan struct{})
	release := make(chan struct{})
	c, err := form.New(s, func(context.Context, map[string]any) error {
		close(entered)
		<-release
		return nil
	}, form.WithAllowPristineSubmit(true))
	require.NoError(t, err)

	done := make(chan form.Outcome)
	go func() {
		outcome, _ := c.Submit(ctx)
		done <- outcome
	}()

	<-entered
	assert.True(t, c.IsSubmitting())
	outcome, err := c.Submit(ctx)
	assert.ErrorIs(t, err, form.ErrSubmitInProgress)
	assert.Equal(t, form.OutcomeNone, outcome)

	close(release)
	assert.Equal(t, form.OutcomeSubmitted, <-done)
	assert.False(t, c.IsSubmitting())
}

func TestController_Prepare(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, formstate.Tree{
		"name":  formstate.Value(nil),
		"email": formstate.Value(nil),
	})

	c, err := form.New(s, noop, form.WithPrepare(func(ctx context.Context, s *formstate.Store) error {
		return s.SetData(ctx, map[string]any{"name": "From server", "email": "a@b.c"})
	}))
	require.NoError(t, err)
	assert.False(t, c.IsReady())

	require.NoError(t, c.Prepare(ctx))
	assert.True(t, c.IsReady())
	assert.False(t, c.IsDirty(), "prepared values are the new baseline")

	snap := c.Snapshot()
	assert.Equal(t, "From server", snap["name"])

	outcome, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, form.OutcomePristine, outcome)
}

func TestController_PrepareError(t *testing.T) {
	boom := errors.New("fetch failed")
	s := newStore(t, formstate.Tree{"name": formstate.Value(nil)})
	c, err := form.New(s, noop, form.WithPrepare(func(context.Context, *formstate.Store) error { return boom }))
	require.NoError(t, err)

	assert.Same(t, boom, c.Prepare(context.Background()))
	assert.False(t, c.IsReady())
}

func TestController_Close(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, formstate.Tree{"name": formstate.Value(nil)})
	c, err := form.New(s, noop)
	require.NoError(t, err)

	c.Close()
	require.NoError(t, s.SetValue(ctx, "name", "John"))
	assert.False(t, c.IsDirty())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "submitted", form.OutcomeSubmitted.String())
	assert.Equal(t, "invalid", form.OutcomeInvalid.String())
	assert.Equal(t, "pristine", form.OutcomePristine.String())
	assert.Equal(t, "failed", form.OutcomeFailed.String())
	assert.Equal(t, "none", form.OutcomeNone.String())
}

func TestController_SubmitBackgroundValidation(t *testing.T) {
	ctx := context.Background()
	slowName := func(ctx context.Context, v any, r formstate.Reader) (formstate.Verdict, error) {
		time.Sleep(20 * time.Millisecond)
		return requiredName(ctx, v, r)
	}
	s, err := formstate.New(ctx, formstate.Tree{"name": formstate.Validated("", slowName)})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	var calls atomic.Int32
	c, err := form.New(s, func(context.Context, map[string]any) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)

	outcome, err := c.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeInvalid, outcome)
	assert.Equal(t, "Name is required", s.Error("name").Message())

	// the submit pass replaces the background run started by SetValue
	require.NoError(t, s.SetValue(ctx, "name", "John Doe"))
	outcome, err = c.Submit(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Settle(ctx))

	assert.Equal(t, form.OutcomeSubmitted, outcome)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, s.IsValid())
	assert.Equal(t, formstate.Valid(), s.Error("name"), "visible error follows the error map")
}

func TestController_DirtyConsistentAfterConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, formstate.Tree{"name": formstate.Value("")})
	c, err := form.New(s, noop, form.WithAllowPristineSubmit(true))
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		i := i
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = s.SetValue(ctx, "name", fmt.Sprintf("value %d", i))
		}()
		outcome, err := c.Submit(ctx)
		require.NoError(t, err)
		require.Equal(t, form.OutcomeSubmitted, outcome)
		<-done

		current, _ := s.Value("name")
		initial, _ := c.Snapshot().Get("name")
		require.Equal(t, initial != current, c.IsDirty(), "iteration %d", i)
	}
}
