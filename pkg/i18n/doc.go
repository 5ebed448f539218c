// Package i18n holds the message catalogs behind validation messages.
//
// A Translator resolves dot-separated keys ("core.validation.required") for a
// language and substitutes named placeholders written as %{name}. Catalogs are
// loaded through an Adapter: MapAdapter for in-memory data, FileAdapter for a
// single YAML or JSON file, and FSAdapter for every catalog file inside an
// fs.FS (embedded or on disk). Files are keyed by language at their root:
//
//	en:
//	  core:
//	    validation:
//	      required: "This field is required"
//
// Default returns a translator over the catalogs embedded in this package
// (English and Dutch). Requested languages are negotiated with
// golang.org/x/text/language, so "en-GB" resolves to the "en" catalog.
//
// # Usage
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFileAdapter(i18n.NewYAMLParser(), "messages.yaml"),
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		return err
//	}
//	msg := tr.T("en", "core.validation.min_length", "min", "5")
package i18n
