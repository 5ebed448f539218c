package binder

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/formstate"
)

// Form reads application/x-www-form-urlencoded and multipart/form-data
// bodies into a nested map suitable for formstate.Store.SetData.
//
// Field names are flat keys: "address.city" and "address[city]" both land
// at data["address"]["city"]. A trailing "[]" is dropped. A name sent once
// yields a string, a repeated name yields []string. Uploaded files yield
// *multipart.FileHeader or []*multipart.FileHeader the same way, with their
// filenames stripped of path components.
//
// Example:
//
//	data, err := binder.Form(r)
//	if err != nil {
//		return err
//	}
//	if err := store.SetData(r.Context(), data); err != nil {
//		return err
//	}
func Form(r *http.Request, opts ...Option) (map[string]any, error) {
	o := defaultOptions(opts)

	mediaType, err := mediaTypeOf(r)
	if err != nil {
		return nil, err
	}

	var values map[string][]string
	var files map[string][]*multipart.FileHeader

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		values = r.Form

	case mediaType == "multipart/form-data":
		_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return nil, fmt.Errorf("%w: malformed content type with boundary", ErrFailedToParseForm)
		}
		boundary, ok := params["boundary"]
		if !ok || boundary == "" {
			return nil, fmt.Errorf("%w: missing boundary in content type", ErrFailedToParseForm)
		}
		if !validateBoundary(boundary) {
			return nil, fmt.Errorf("%w: invalid boundary parameter", ErrFailedToParseForm)
		}

		if err := r.ParseMultipartForm(o.maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		if r.MultipartForm != nil {
			values = r.MultipartForm.Value
			files = r.MultipartForm.File
		}

	default:
		return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
	}

	return nest(values, files)
}

func nest(values map[string][]string, files map[string][]*multipart.FileHeader) (map[string]any, error) {
	flat := make(map[string]any, len(values)+len(files))

	for name, vs := range values {
		if len(vs) == 0 {
			continue
		}
		key := normalizeName(name)
		if _, dup := flat[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrConflictingFields, key)
		}
		if len(vs) == 1 {
			flat[key] = vs[0]
		} else {
			flat[key] = vs
		}
	}

	for name, fhs := range files {
		if len(fhs) == 0 {
			continue
		}
		key := normalizeName(name)
		if _, dup := flat[key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrConflictingFields, key)
		}
		for _, fh := range fhs {
			fh.Filename = sanitizeFilename(fh.Filename)
		}
		if len(fhs) == 1 {
			flat[key] = fhs[0]
		} else {
			flat[key] = fhs
		}
	}

	out, err := formstate.Unflatten(flat)
	if err != nil {
		if errors.Is(err, formstate.ErrShapeMismatch) {
			return nil, errors.Join(ErrConflictingFields, err)
		}
		return nil, err
	}
	return out, nil
}

// normalizeName rewrites bracket notation to the store separator.
func normalizeName(name string) string {
	name = strings.TrimSuffix(name, "[]")
	if !strings.Contains(name, "[") {
		return name
	}
	name = strings.ReplaceAll(name, "][", formstate.Separator)
	name = strings.ReplaceAll(name, "[", formstate.Separator)
	return strings.TrimSuffix(name, "]")
}

// validateBoundary checks a multipart boundary against RFC 2046: 1 to 70
// characters from a restricted set, not ending in a space.
func validateBoundary(boundary string) bool {
	if len(boundary) == 0 || len(boundary) > 70 {
		return false
	}
	if strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}

// sanitizeFilename removes any path components and dangerous characters from a filename.
func sanitizeFilename(filename string) string {
	// Normalize Windows separators so filepath.Base strips them too
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}
