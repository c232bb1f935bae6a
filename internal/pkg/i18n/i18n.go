package i18n

import (
	"context"
	"strings"
)

// Locale is one of the portal's supported languages.
type Locale string

const (
	FR Locale = "fr"
	DE Locale = "de"
	IT Locale = "it"
	EN Locale = "en"
)

// Default is the locale every other one falls back to.
const Default = FR

var supported = []Locale{FR, DE, IT, EN}

// Supported returns the supported locales in display order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

func (l Locale) Valid() bool {
	for _, s := range supported {
		if l == s {
			return true
		}
	}
	return false
}

// Parse reads an X-Locale value or an Accept-Language header and returns the
// first supported locale, or fallback.
func Parse(header string, fallback Locale) Locale {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		lang := Locale(strings.ToLower(strings.SplitN(strings.ReplaceAll(tag, "_", "-"), "-", 2)[0]))
		if lang.Valid() {
			return lang
		}
	}
	return fallback
}

// Translator resolves message keys for a locale.
type Translator interface {
	T(locale Locale, key string, vars map[string]string) string
}

// Interpolate replaces {name} placeholders with vars.
func Interpolate(text string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(text, "{") {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

type contextKey struct{}

// WithLocale stores the request locale on ctx.
func WithLocale(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the request locale, Default when none was set.
func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(contextKey{}).(Locale); ok && l != "" {
		return l
	}
	return Default
}
