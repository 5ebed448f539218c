// Package transform provides string sanitisers and ready-made Set and Get
// hooks for formstate fields.
//
//	tree := formstate.Tree{
//		"email": &formstate.Field{Value: "", Set: transform.String(transform.NormalizeEmail)},
//		"age":   &formstate.Field{Value: nil, Set: transform.Int},
//		"bio":   &formstate.Field{Value: "", Get: transform.Submit(transform.SanitizeHTML)},
//	}
//
// HTML handling uses bluemonday policies. Numeric, boolean and time parsing
// goes through spf13/cast. Slug folds diacritics with golang.org/x/text.
package transform
