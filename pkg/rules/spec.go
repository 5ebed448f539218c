package rules

import "time"

// Built-in rule names.
const (
	NameRequired  = "required"
	NameEmail     = "email"
	NameURL       = "url"
	NameMinLength = "minLength"
	NameMaxLength = "maxLength"
	NameMin       = "min"
	NameMax       = "max"
	NameFileSize  = "fileSize"
)

// Spec is one named rule with its argument.
type Spec struct {
	Name string
	Arg  any
	// Message, when set, is used verbatim on failure.
	Message string
}

// Set is an ordered list of rules. Evaluation follows slice order.
type Set []Spec

// Rules builds a Set from specs.
func Rules(specs ...Spec) Set {
	return Set(specs)
}

// Rule builds a Spec for any registered rule, including custom ones.
func Rule(name string, arg any) Spec {
	return Spec{Name: name, Arg: arg}
}

// Disabled returns a spec for name that is skipped during evaluation.
func Disabled(name string) Spec {
	return Spec{Name: name, Arg: false}
}

// WithMessage returns a copy of s that fails with msg.
func (s Spec) WithMessage(msg string) Spec {
	s.Message = msg
	return s
}

// Enabled reports whether the spec takes part in evaluation.
func (s Spec) Enabled() bool {
	b, ok := s.Arg.(bool)
	return !ok || b
}

// Required fails nil and false values, blank strings and empty collections.
func Required() Spec { return Spec{Name: NameRequired, Arg: true} }

// Email matches strings against a basic address pattern.
func Email() Spec { return Spec{Name: NameEmail, Arg: true} }

// URL accepts http and https addresses.
func URL() Spec { return Spec{Name: NameURL, Arg: true} }

// MinLength requires at least n runes or elements.
func MinLength(n int) Spec { return Spec{Name: NameMinLength, Arg: n} }

// MaxLength allows at most n runes or elements.
func MaxLength(n int) Spec { return Spec{Name: NameMaxLength, Arg: n} }

// Min accepts a number or a time.Time bound.
func Min(bound any) Spec { return Spec{Name: NameMin, Arg: bound} }

// Max accepts a number or a time.Time bound.
func Max(bound any) Spec { return Spec{Name: NameMax, Arg: bound} }

func MinDate(t time.Time) Spec { return Min(t) }

func MaxDate(t time.Time) Spec { return Max(t) }

// FileSize limits uploads to kb kilobytes: a file passes when its size
// in bytes is at most kb*1024.
func FileSize(kb int64) Spec { return Spec{Name: NameFileSize, Arg: kb} }
