// Package formstate holds the values and validation state of one form.
//
// A form is described as a Tree of Fields. Leaves are addressed by flat
// keys, the dot-joined path from the root:
//
//	tree := formstate.Tree{
//		"name": formstate.Validated(nil, validateName),
//		"address": formstate.Tree{
//			"street": formstate.Value(""),
//			"zip":    &formstate.Field{Value: "", Set: normalizeZip},
//		},
//	}
//	store, err := formstate.New(ctx, tree)
//
// # Validation
//
// Validators return a Verdict. New runs every validator once without
// writing visible verdicts so IsValid is accurate from the start. Changing
// a value through SetValue or SetData re-validates that field and writes
// its verdict; these runs happen in the background unless the store was
// built WithSyncValidation, and Settle waits for them. Each run takes a
// per-field token and only the latest run may apply its result.
//
// SetErrors forces visible verdicts, typically from a server response,
// and keeps IsValid false until each overridden field is re-validated by
// a value change or by Recheck.
//
// # Data
//
// GetData and FlatData read values, optionally through the fields' Get
// hooks. SetData writes a partial nested map through the Set hooks. Reset
// restores the values captured by New.
//
// # Observing
//
// Observe registers a synchronous callback for value, error, validity and
// reset notifications. pkg/form builds dirty tracking on it.
package formstate
