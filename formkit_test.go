package formkit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/formstate"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/rules"
	"github.com/dmitrymomot/formkit/pkg/transform"
)

type signup struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Age      int    `form:"age"`
	Address  struct {
		City string `form:"city"`
	} `form:"address"`
}

func newKit(t *testing.T, cfg formkit.Config) *formkit.Kit {
	t.Helper()
	kit, err := formkit.New(context.Background(), cfg, formkit.WithLogger(logger.Discard()))
	require.NoError(t, err)
	return kit
}

func signupTree(kit *formkit.Kit) formstate.Tree {
	return formstate.Tree{
		"email": &formstate.Field{
			Value:    "",
			Set:      transform.String(transform.Trim, transform.NormalizeEmail),
			Validate: kit.Rules(rules.Required(), rules.Email()),
		},
		"password": formstate.Validated("", kit.Rules(rules.Required(), rules.MinLength(8))),
		"age":      &formstate.Field{Value: 0, Set: transform.Int},
		"address": formstate.Tree{
			"city": formstate.Value(""),
		},
	}
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestKitSignupFlow(t *testing.T) {
	t.Parallel()

	cfg := formkit.DefaultConfig()
	cfg.SyncValidation = true
	kit := newKit(t, cfg)

	var (
		mu  sync.Mutex
		got []signup
	)
	f, err := kit.NewForm(context.Background(), signupTree(kit), func(_ context.Context, data map[string]any) error {
		var in signup
		if err := formkit.Decode(data, &in); err != nil {
			return err
		}
		mu.Lock()
		got = append(got, in)
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	t.Cleanup(f.Close)

	require.NoError(t, f.Bind(postForm(url.Values{
		"email":        {"  Ann@Example.com "},
		"password":     {"short"},
		"age":          {"30"},
		"address.city": {"Berlin"},
		"csrf_token":   {"ignored"},
	})))
	assert.True(t, f.IsDirty())

	outcome, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeInvalid, outcome)

	verr := f.ValidationError()
	require.Error(t, verr)
	var ve formkit.ValidationError
	require.ErrorAs(t, verr, &ve)
	assert.Equal(t, []string{"password"}, ve.Fields())
	assert.Equal(t, "Must be at least 8 characters", ve.Get("password"))
	assert.Equal(t, "validation error: password: Must be at least 8 characters", ve.Error())

	require.NoError(t, f.SetData(context.Background(), map[string]any{"password": "correct horse"}))
	outcome, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeSubmitted, outcome)
	assert.False(t, f.IsDirty())
	assert.NoError(t, f.ValidationError())

	require.Len(t, got, 1)
	assert.Equal(t, "ann@example.com", got[0].Email)
	assert.Equal(t, "correct horse", got[0].Password)
	assert.Equal(t, 30, got[0].Age)
	assert.Equal(t, "Berlin", got[0].Address.City)
}

func TestFormPristineSubmit(t *testing.T) {
	t.Parallel()

	run := func(allow bool) form.Outcome {
		cfg := formkit.DefaultConfig()
		cfg.SyncValidation = true
		cfg.AllowPristineSubmit = allow
		kit := newKit(t, cfg)

		f, err := kit.NewForm(context.Background(), formstate.Tree{
			"name": formstate.Value("Ann"),
		}, func(context.Context, map[string]any) error { return nil })
		require.NoError(t, err)
		defer f.Close()

		outcome, err := f.Submit(context.Background())
		require.NoError(t, err)
		return outcome
	}

	assert.Equal(t, form.OutcomePristine, run(false))
	assert.Equal(t, form.OutcomeSubmitted, run(true))
}

func TestFormSetDataShape(t *testing.T) {
	t.Parallel()

	kit := newKit(t, formkit.DefaultConfig())
	f, err := kit.NewForm(context.Background(), signupTree(kit), func(context.Context, map[string]any) error { return nil })
	require.NoError(t, err)
	defer f.Close()

	err = f.SetData(context.Background(), map[string]any{"address": "Berlin"})
	assert.ErrorIs(t, err, formstate.ErrShapeMismatch)

	err = f.SetData(context.Background(), map[string]any{
		"unknown": "x",
		"address": map[string]any{"city": "Paris", "zip": "75001"},
	})
	require.NoError(t, err)
	city, _ := f.Store().Value("address.city")
	assert.Equal(t, "Paris", city)
}

func TestNewFormErrors(t *testing.T) {
	t.Parallel()

	kit := newKit(t, formkit.DefaultConfig())

	_, err := kit.NewForm(context.Background(), nil, func(context.Context, map[string]any) error { return nil })
	assert.ErrorIs(t, err, formstate.ErrNotObservable)

	_, err = kit.NewForm(context.Background(), formstate.Tree{"a": formstate.Value("")}, nil)
	assert.ErrorIs(t, err, form.ErrNilSubmit)
}

func TestKitLanguage(t *testing.T) {
	t.Parallel()

	cfg := formkit.DefaultConfig()
	cfg.Lang = "nl-BE"
	kit := newKit(t, cfg)
	assert.Equal(t, "nl", kit.Engine().Language())

	v, err := kit.Rules(rules.Required())(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Dit veld is verplicht", v.Message())
}

func TestKitMessagesPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "messages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`en:
  core:
    validation:
      required: "Please fill this in"
`), 0o600))

	cfg := formkit.DefaultConfig()
	cfg.MessagesPath = path
	kit := newKit(t, cfg)

	v, err := kit.Rules(rules.Required())(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Please fill this in", v.Message())

	cfg.MessagesPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = formkit.New(context.Background(), cfg, formkit.WithLogger(logger.Discard()))
	assert.Error(t, err)
}

func TestRulesWithMessages(t *testing.T) {
	t.Parallel()

	kit := newKit(t, formkit.DefaultConfig())
	validate := kit.RulesWithMessages(rules.Messages{rules.NameRequired: rules.Text("Name is required")}, rules.Required())

	v, err := validate(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Name is required", v.Message())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := formkit.DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.LogFormat = "xml"
	assert.ErrorIs(t, cfg.Validate(), formkit.ErrInvalidConfig)

	cfg = formkit.DefaultConfig()
	cfg.LogLevel = "loud"
	assert.ErrorIs(t, cfg.Validate(), formkit.ErrInvalidConfig)

	_, err := formkit.New(context.Background(), cfg)
	assert.ErrorIs(t, err, formkit.ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("FORMKIT_LANG", "nl")
	t.Setenv("FORMKIT_SYNC_VALIDATION", "true")
	t.Setenv("FORMKIT_LOG_FORMAT", "json")

	cfg, err := formkit.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "nl", cfg.Lang)
	assert.True(t, cfg.SyncValidation)
	assert.False(t, cfg.AllowPristineSubmit)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	var out struct {
		Name     string    `form:"name"`
		Age      int       `form:"age"`
		Admin    bool      `form:"admin"`
		Born     time.Time `form:"born"`
		Tags     []string  `form:"tags"`
		Untagged string
	}
	err := formkit.Decode(map[string]any{
		"name":     "Ann",
		"age":      "41",
		"admin":    "true",
		"born":     "1984-03-02",
		"tags":     "a,b",
		"untagged": "x",
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Ann", out.Name)
	assert.Equal(t, 41, out.Age)
	assert.True(t, out.Admin)
	assert.Equal(t, time.Date(1984, 3, 2, 0, 0, 0, 0, time.UTC), out.Born)
	assert.Equal(t, []string{"a", "b"}, out.Tags)
	assert.Equal(t, "x", out.Untagged)

	err = formkit.Decode(map[string]any{"age": "old"}, &out)
	assert.ErrorIs(t, err, formkit.ErrDecode)
}

func TestValidationErrorNested(t *testing.T) {
	t.Parallel()

	ve := formkit.NewValidationError()
	assert.True(t, ve.IsEmpty())
	assert.Equal(t, "validation failed", ve.Error())

	ve.Add("address.city", "required")
	ve.Add("email", "invalid")
	ve.Add("email", "second")

	assert.True(t, ve.Has("email"))
	assert.False(t, ve.Has("name"))
	assert.Equal(t, "invalid", ve.Get("email"))
	assert.Equal(t, map[string]any{
		"address": map[string]any{"city": "required"},
		"email":   "invalid",
	}, ve.Nested())
}
