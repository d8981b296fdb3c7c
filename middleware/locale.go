package middleware

import (
	"net/http"

	"a11ypack/internal/i18n"
)

// Locale resolves the request language and installs a fresh language store
// in the request context. Handlers read it back with i18n.StoreFrom.
func Locale(fallback i18n.Language) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := i18n.NewStore(i18n.ResolveLanguage(r, fallback))
			w.Header().Add("Vary", "Accept-Language, Cookie")
			w.Header().Set("Content-Language", string(store.Language()))
			next.ServeHTTP(w, r.WithContext(i18n.WithStore(r.Context(), store)))
		})
	}
}
