package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

// Translator resolves catalog keys per language.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger

	// matcher negotiates requested languages; langs[i] is the catalog for the
	// matcher's i-th supported tag.
	matcher language.Matcher
	langs   []string
}

// NewTranslator loads translations through adapter and prepares language matching.
func NewTranslator(ctx context.Context, adapter Adapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, tree := range translations {
		if lang == "" {
			return nil, fmt.Errorf("i18n: empty language code found")
		}
		if tree == nil {
			return nil, fmt.Errorf("i18n: nil translations map for language: %s", lang)
		}
	}

	t.translations = translations
	t.buildMatcher()
	t.logger.DebugContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return t, nil
}

func (t *Translator) buildMatcher() {
	langs := t.SupportedLanguages()
	// the matcher falls back to its first tag, so the default language leads
	sort.SliceStable(langs, func(i, j int) bool {
		return langs[i] == t.defaultLang && langs[j] != t.defaultLang
	})

	tags := make([]language.Tag, 0, len(langs))
	t.langs = t.langs[:0]
	for _, lang := range langs {
		tag, err := language.Parse(lang)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		t.langs = append(t.langs, lang)
	}
	if len(tags) > 0 {
		t.matcher = language.NewMatcher(tags)
	}
}

// SupportedLanguages returns the catalog languages in sorted order.
func (t *Translator) SupportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// DefaultLanguage returns the configured default language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Match returns the catalog language that best serves lang, or the default
// language when nothing matches.
func (t *Translator) Match(lang string) string {
	if _, ok := t.translations[lang]; ok {
		return lang
	}
	if t.matcher == nil || lang == "" {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(language.Make(lang))
	if conf == language.No || idx < 0 || idx >= len(t.langs) {
		return t.defaultLang
	}
	return t.langs[idx]
}

// Lookup returns the raw template for key without placeholder substitution.
// The default language is consulted when the matched one lacks the key.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	resolved := t.Match(lang)
	if tmpl, ok := t.lookupIn(resolved, key); ok {
		return tmpl, true
	}
	if resolved != t.defaultLang {
		return t.lookupIn(t.defaultLang, key)
	}
	return "", false
}

// Has reports whether key resolves for lang.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.Lookup(lang, key)
	return ok
}

func (t *Translator) lookupIn(lang, key string) (string, bool) {
	tree, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	val, ok := getTranslation(tree, key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// T translates key for lang, substituting %{name} placeholders from args given
// as name, value pairs. A trailing unpaired arg is ignored.
//
//	tr.T("en", "core.validation.min_length", "min", "5")
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.Lookup(lang, key)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("translation not found", logger.Lang(lang), slog.String("key", key))
		}
		if t.fallbackToKey {
			return substitute(key, args)
		}
		return ""
	}
	return substitute(tmpl, args)
}

// getTranslation walks a nested map using dot-separated keys.
func getTranslation(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
