// Package rules evaluates ordered sets of named validation rules against a
// single value and resolves the message of the first rule that fails.
//
// A Set is evaluated in order and stops at the first failure, so the caller
// controls message priority through ordering:
//
//	engine := rules.New()
//	msg, failed, err := engine.Apply(ctx, "", rules.Rules(
//	    rules.Required(),
//	    rules.MinLength(5),
//	), nil)
//	// failed == true, msg is the "required" message; minLength never ran.
//
// # Rule arguments
//
// Each Spec carries an argument. false disables the rule, a string argument is
// used verbatim as the failure message, anything else is handed to the
// predicate (Required, Email and URL use true).
//
// # Messages
//
// The message of a failing rule is the first of:
//
//  1. the string argument or Spec.Message;
//  2. the per-call overrides passed to Apply;
//  3. the engine table: WithMessage/WithMessages entries, then the built-in
//     catalog messages (pkg/i18n keys core.validation.*);
//  4. "<rule> error".
//
// A Message is either Text or a Formatter receiving the value and the rule
// argument. Formatters run only when their rule fails.
//
// # Built-in rules
//
// required, email, url, minLength, maxLength, min, max and fileSize. Presence
// and format are orthogonal: email and url accept the empty string and nil,
// leaving absence to required. min and max compare numbers numerically and
// time.Time values by instant. Values of the wrong type produce a *TypeError,
// which is a configuration error rather than a validation failure.
//
// Custom rules are registered with WithRule and may be asynchronous: every
// Predicate receives the context of the validation run.
package rules
