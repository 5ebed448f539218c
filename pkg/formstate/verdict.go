package formstate

import "fmt"

type verdictKind uint8

const (
	verdictUnset verdictKind = iota
	verdictValid
	verdictMessage
	verdictFlagged
)

// Verdict is the outcome of validating one field. The zero value means the
// field has not produced a visible result yet.
type Verdict struct {
	kind verdictKind
	msg  string
}

// Valid is an explicit passing verdict. It is also the cleared state.
func Valid() Verdict { return Verdict{kind: verdictValid} }

// Invalid is a failing verdict carrying msg. An empty msg yields Flagged.
func Invalid(msg string) Verdict {
	if msg == "" {
		return Flagged()
	}
	return Verdict{kind: verdictMessage, msg: msg}
}

// Flagged is a failing verdict without text.
func Flagged() Verdict { return Verdict{kind: verdictFlagged} }

// VerdictOf converts loosely typed error values, such as decoded server
// responses, into a Verdict.
func VerdictOf(v any) Verdict {
	switch x := v.(type) {
	case nil:
		return Valid()
	case Verdict:
		return x
	case string:
		if x == "" {
			return Valid()
		}
		return Invalid(x)
	case bool:
		if x {
			return Flagged()
		}
		return Valid()
	case error:
		return Invalid(x.Error())
	case fmt.Stringer:
		return VerdictOf(x.String())
	default:
		return Invalid(fmt.Sprint(x))
	}
}

// IsSet reports whether the verdict is anything but the zero value.
func (v Verdict) IsSet() bool { return v.kind != verdictUnset }

// IsInvalid reports a failing verdict.
func (v Verdict) IsInvalid() bool {
	return v.kind == verdictMessage || v.kind == verdictFlagged
}

// IsValid reports a verdict that does not fail, including the zero value.
func (v Verdict) IsValid() bool { return !v.IsInvalid() }

// Message is the failure text, empty for flagged and passing verdicts.
func (v Verdict) Message() string { return v.msg }

func (v Verdict) String() string {
	switch v.kind {
	case verdictValid:
		return "valid"
	case verdictMessage:
		return "invalid: " + v.msg
	case verdictFlagged:
		return "invalid"
	default:
		return "unset"
	}
}
