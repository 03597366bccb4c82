package model

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// FallbackLocale is tried when a text is not available in the requested locale.
const FallbackLocale = "en"

// I18nString maps a locale (en, fr, ja, zh, ...) to a localized text.
type I18nString map[string]string

// Resolve returns the text for locale, falling back to the base language of
// locale, then fallback, then the alphabetically first available locale.
func (s I18nString) Resolve(locale, fallback string) string {
	if len(s) == 0 {
		return ""
	}
	locale = strings.ReplaceAll(strings.ToLower(locale), "-", "_")
	if v, ok := s[locale]; ok {
		return v
	}
	if base, _, found := strings.Cut(locale, "_"); found {
		if v, ok := s[base]; ok {
			return v
		}
	}
	if v, ok := s[fallback]; ok {
		return v
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return s[keys[0]]
}

// ParseI18nString decodes a raw jsonb value as returned by the database driver.
func ParseI18nString(v any) (I18nString, error) {
	var raw []byte
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	case I18nString:
		return t, nil
	case map[string]any:
		s := make(I18nString, len(t))
		for k, val := range t {
			if str, ok := val.(string); ok {
				s[k] = str
			}
		}
		return s, nil
	default:
		return nil, errors.Errorf("unsupported i18n value type %T", v)
	}

	var s I18nString
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Wrap(err, "failed to decode i18n string")
	}
	return s, nil
}
