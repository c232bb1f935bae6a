package middleware

import (
	"net/http"

	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
)

// Locale picks the response language from X-Locale, then Accept-Language.
func Locale(fallback i18n.Locale) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("X-Locale")
			if header == "" {
				header = r.Header.Get("Accept-Language")
			}
			locale := i18n.Parse(header, fallback)
			w.Header().Set("Content-Language", string(locale))

			next.ServeHTTP(w, r.WithContext(i18n.WithLocale(r.Context(), locale)))
		})
	}
}
