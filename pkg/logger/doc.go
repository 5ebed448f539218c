// Package logger builds the *slog.Logger instances used across formkit.
//
// A single factory, New, assembles a slog.Handler from functional options:
//
//   - WithFormat / WithTextFormatter / WithJSONFormatter select the output format.
//   - WithLevel or WithLevelName set the minimum level.
//   - WithAttr attaches static attributes to every record.
//   - WithContextExtractors / WithContextValue inject attributes pulled from a
//     context.Context on every Handle call.
//
// Stores and controllers default to Discard, so nothing is written unless a
// caller supplies a logger built here (or any other *slog.Logger).
//
// # Attributes
//
// attr.go keeps attribute names consistent between packages: FormID, FieldKey,
// Rule, Outcome, Error and friends. Helpers taking an optional value return an
// empty slog.Attr for the zero case, which slog drops silently:
//
//	log.WarnContext(ctx, "validator failed",
//	    logger.FormID(store.ID()),
//	    logger.FieldKey("address.street"),
//	    logger.Error(err),
//	)
//
// # Usage
//
//	log := logger.New(
//	    logger.WithTextFormatter(),
//	    logger.WithLevelName("debug"),
//	    logger.WithContextValue("form_id", formIDKey{}),
//	)
package logger
