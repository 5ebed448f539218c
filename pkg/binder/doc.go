// Package binder reads HTTP request bodies into the nested maps accepted by
// formstate.Store.SetData.
//
// Form handles application/x-www-form-urlencoded and multipart/form-data,
// JSON handles application/json, and Request picks one by content type:
//
//	data, err := binder.Request(r)
//	if err != nil {
//		http.Error(w, err.Error(), http.StatusBadRequest)
//		return
//	}
//	err = store.SetData(r.Context(), data)
//
// Dotted and bracketed field names nest: "profile.name" and "profile[name]"
// both address data["profile"]["name"]. File uploads arrive as
// *multipart.FileHeader values with sanitized filenames, ready for the
// fileSize rule.
//
// # Error Handling
//
//   - ErrMissingContentType: no Content-Type header
//   - ErrUnsupportedMediaType: content type is not a form or JSON
//   - ErrFailedToParseForm, ErrFailedToParseJSON: malformed body
//   - ErrConflictingFields: one name is both a value and a group
package binder
