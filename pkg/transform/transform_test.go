package transform_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/formstate"
	"github.com/dmitrymomot/formkit/pkg/transform"
)

func TestStringFuncs(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"trim", transform.Trim, "  x  ", "x"},
		{"lower", transform.ToLower, "ABC", "abc"},
		{"upper", transform.ToUpper, "abc", "ABC"},
		{"whitespace", transform.NormalizeWhitespace, " a \t\n b  c ", "a b c"},
		{"control chars", transform.RemoveControlChars, "a\x00b\tc", "ab\tc"},
		{"digits", transform.KeepDigits, "+1 (555) 010-99", "155501099"},
		{"email", transform.NormalizeEmail, "  John..Doe.@Example.COM ", "john.doe@example.com"},
		{"email without at", transform.NormalizeEmail, " Not-An-Email ", "not-an-email"},
		{"strip html", transform.StripHTML, "<b>Tom &amp; Jerry</b><script>alert(1)</script>", "Tom & Jerry"},
		{"sanitize html", transform.SanitizeHTML, `<p onclick="x()">hi</p><script>bad()</script>`, "<p>hi</p>"},
		{"max length", transform.MaxLength(3), "héllo", "hél"},
		{"max length short", transform.MaxLength(10), "abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestCompose(t *testing.T) {
	clean := transform.Compose(transform.Trim, transform.ToLower)
	assert.Equal(t, "abc", clean("  ABC "))
	assert.Equal(t, 6, transform.Apply(1, func(n int) int { return n + 1 }, func(n int) int { return n * 3 }))
}

func TestString(t *testing.T) {
	ctx := context.Background()
	set := transform.String(transform.Trim, transform.ToLower)

	v, err := set(ctx, "  MiXed ", nil)
	require.NoError(t, err)
	assert.Equal(t, "mixed", v)

	v, err = set(ctx, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = set(ctx, 12, nil)
	assert.ErrorIs(t, err, transform.ErrNotString)
}

func TestSubmitAndNilIfEmpty(t *testing.T) {
	get := transform.Submit(transform.Trim)
	assert.Equal(t, "x", get(" x ", nil))
	assert.Equal(t, 5, get(5, nil))

	assert.Nil(t, transform.NilIfEmpty("   ", nil))
	assert.Equal(t, "x", transform.NilIfEmpty("x", nil))
	assert.Equal(t, 0, transform.NilIfEmpty(0, nil))
}

func TestParsers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		hook    formstate.SetFunc
		in      any
		want    any
		wantErr bool
	}{
		{"int", transform.Int, " 42 ", 42, false},
		{"int from number", transform.Int, int64(7), 7, false},
		{"int blank", transform.Int, "", nil, false},
		{"int invalid", transform.Int, "abc", nil, true},
		{"float", transform.Float, "1.5", 1.5, false},
		{"float blank", transform.Float, nil, nil, false},
		{"float invalid", transform.Float, "x1", nil, true},
		{"bool true", transform.Bool, "true", true, false},
		{"bool on", transform.Bool, "on", true, false},
		{"bool blank", transform.Bool, "", false, false},
		{"bool invalid", transform.Bool, "maybe", nil, true},
		{"list", transform.List(","), " a, b ,,c ", []string{"a", "b", "c"}, false},
		{"list nil", transform.List(","), nil, []string{}, false},
		{"list slice", transform.List(","), []string{" x ", ""}, []string{"x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.hook(ctx, tt.in, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, transform.ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate(t *testing.T) {
	ctx := context.Background()
	set := transform.Date(time.DateOnly)

	v, err := set(ctx, "2024-03-01", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), v)

	now := time.Now()
	v, err = set(ctx, now, nil)
	require.NoError(t, err)
	assert.Equal(t, now, v)

	v, err = set(ctx, " ", nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = set(ctx, "01/03/2024", nil)
	assert.ErrorIs(t, err, transform.ErrParse)
}

func TestChainWithStore(t *testing.T) {
	ctx := context.Background()
	s, err := formstate.New(ctx, formstate.Tree{
		"age":  &formstate.Field{Value: nil, Set: transform.Chain(transform.String(transform.KeepDigits), transform.Int)},
		"tags": &formstate.Field{Value: []string{}, Set: transform.List(",")},
	}, formstate.WithSyncValidation())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetData(ctx, map[string]any{"age": "age: 33", "tags": "go, forms"}))
	assert.Equal(t, map[string]any{"age": 33, "tags": []string{"go", "forms"}}, s.GetData(false))
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Hello, World!":    "hello-world",
		"  Crème Brûlée  ": "creme-brulee",
		"Ünïcödé -- rocks": "unicode-rocks",
		"already-a-slug":   "already-a-slug",
		"!!!":              "",
		"Go 1.24 release":  "go-1-24-release",
		"Ñandú & Co.":      "nandu-co",
	}
	for in, want := range tests {
		assert.Equal(t, want, transform.Slug(in), in)
	}
}
