package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// supported is ordered by preference; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Turkish}

// Translator renders message keys in English or Turkish. It is safe for
// concurrent use.
type Translator struct {
	catalog *catalog.Builder
	matcher language.Matcher
	known   map[string]bool
}

func New() (*Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	known := make(map[string]bool, len(messages))
	for _, m := range messages {
		if m.EN == "" || m.TR == "" {
			return nil, fmt.Errorf("catalog %s: missing translation", m.Key)
		}
		if known[m.Key] {
			return nil, fmt.Errorf("catalog %s: duplicate key", m.Key)
		}
		known[m.Key] = true

		if err := b.SetString(language.English, m.Key, m.EN); err != nil {
			return nil, fmt.Errorf("catalog %s/en: %w", m.Key, err)
		}
		if err := b.SetString(language.Turkish, m.Key, m.TR); err != nil {
			return nil, fmt.Errorf("catalog %s/tr: %w", m.Key, err)
		}
	}
	return &Translator{catalog: b, matcher: language.NewMatcher(supported), known: known}, nil
}

// Match picks the supported language for the given preferences, each either
// a bare tag ("tr") or an Accept-Language header value. Earlier arguments
// win; empty ones are skipped.
func (t *Translator) Match(prefs ...string) language.Tag {
	for _, p := range prefs {
		if p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(tags) == 0 {
			continue
		}
		if _, i, conf := t.matcher.Match(tags...); conf != language.No {
			return supported[i]
		}
	}
	return supported[0]
}

// Translate returns the text for key, or the key itself when the catalog
// has no entry.
func (t *Translator) Translate(tag language.Tag, key string) string {
	p := message.NewPrinter(tag, message.Catalog(t.catalog))
	return p.Sprintf(key)
}

func (t *Translator) TranslateAll(tag language.Tag, keys []string) []string {
	p := message.NewPrinter(tag, message.Catalog(t.catalog))
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = p.Sprintf(k)
	}
	return out
}

// Has reports whether key has a translation in every supported language.
func (t *Translator) Has(key string) bool {
	return t.known[key]
}
