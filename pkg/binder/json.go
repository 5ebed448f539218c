package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON decodes a JSON object body into a nested map. Numbers decode as
// float64. The body must hold exactly one object.
func JSON(r *http.Request, opts ...Option) (map[string]any, error) {
	o := defaultOptions(opts)

	if err := r.Context().Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	mediaType, err := mediaTypeOf(r)
	if err != nil {
		return nil, err
	}
	if mediaType != "application/json" {
		return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, o.maxJSONSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if int64(len(body)) > o.maxJSONSize {
		return nil, fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, o.maxJSONSize)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	var out map[string]any
	if err := decoder.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrFailedToParseJSON)
	}

	// Ensure entire body was consumed
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}
	return out, nil
}
