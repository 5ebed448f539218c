package binder_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/binder"
)

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("nests dotted and bracketed names", func(t *testing.T) {
		t.Parallel()
		req := formRequest(url.Values{
			"email":           {"a@b.co"},
			"address.city":    {"Berlin"},
			"address[street]": {"Main"},
			"tags[]":          {"go", "forms"},
		})

		data, err := binder.Form(req)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"email": "a@b.co",
			"address": map[string]any{
				"city":   "Berlin",
				"street": "Main",
			},
			"tags": []string{"go", "forms"},
		}, data)
	})

	t.Run("conflicting names", func(t *testing.T) {
		t.Parallel()
		req := formRequest(url.Values{
			"address":      {"x"},
			"address.city": {"Berlin"},
		})
		_, err := binder.Form(req)
		assert.ErrorIs(t, err, binder.ErrConflictingFields)
	})

	t.Run("same key in two notations", func(t *testing.T) {
		t.Parallel()
		req := formRequest(url.Values{
			"a.b":  {"1"},
			"a[b]": {"2"},
		})
		_, err := binder.Form(req)
		assert.ErrorIs(t, err, binder.ErrConflictingFields)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
		_, err := binder.Form(req)
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
		req.Header.Set("Content-Type", "text/plain")
		_, err := binder.Form(req)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("missing boundary", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data")
		_, err := binder.Form(req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})
}

func TestFormMultipart(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "Ann"))
	part, err := w.CreateFormFile("avatar", "../../etc/passwd")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	data, err := binder.Form(req)
	require.NoError(t, err)
	assert.Equal(t, "Ann", data["name"])

	fh, ok := data["avatar"].(*multipart.FileHeader)
	require.True(t, ok)
	assert.Equal(t, "passwd", fh.Filename)
	assert.Equal(t, int64(5), fh.Size)
}

func TestJSON(t *testing.T) {
	t.Parallel()

	jsonRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		return req
	}

	t.Run("object", func(t *testing.T) {
		t.Parallel()
		data, err := binder.JSON(jsonRequest(`{"name":"Ann","profile":{"age":30}}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"name":    "Ann",
			"profile": map[string]any{"age": float64(30)},
		}, data)
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		for name, body := range map[string]string{
			"empty":    "",
			"array":    `[1,2]`,
			"null":     `null`,
			"trailing": `{"a":1}{"b":2}`,
			"broken":   `{"a":`,
		} {
			_, err := binder.JSON(jsonRequest(body))
			assert.ErrorIs(t, err, binder.ErrFailedToParseJSON, name)
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()
		_, err := binder.JSON(jsonRequest(`{"name":"a long value"}`), binder.WithMaxJSONSize(8))
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := binder.JSON(jsonRequest(`{}`).WithContext(ctx))
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
	})
}

func TestRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	data, err := binder.Request(req)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1"}, data)

	data, err = binder.Request(formRequest(url.Values{"a": {"1"}}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1"}, data)
}
