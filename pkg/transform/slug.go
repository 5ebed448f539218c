package transform

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	xtransform "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug returns a URL-safe slug of s: diacritics are folded to ASCII,
// letters are lowercased and every other run of characters becomes a
// single "-". Runes outside the Latin script are dropped.
func Slug(s string) string {
	folded, _, err := xtransform.String(xtransform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))

	lastWasSep := true // no leading separator
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastWasSep = false
			continue
		}
		if !lastWasSep {
			b.WriteByte('-')
			lastWasSep = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
