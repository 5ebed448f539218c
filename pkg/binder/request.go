package binder

import (
	"fmt"
	"net/http"
	"strings"
)

// Request binds the body of r according to its content type. JSON bodies go
// through JSON, urlencoded and multipart bodies through Form.
func Request(r *http.Request, opts ...Option) (map[string]any, error) {
	mediaType, err := mediaTypeOf(r)
	if err != nil {
		return nil, err
	}
	if mediaType == "application/json" {
		return JSON(r, opts...)
	}
	return Form(r, opts...)
}

func mediaTypeOf(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return "", fmt.Errorf("%w: missing content-type header", ErrMissingContentType)
	}

	// Extract media type without parameters
	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	return strings.ToLower(mediaType), nil
}
