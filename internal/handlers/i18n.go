package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"a11ypack/internal/httputil"
	"a11ypack/internal/i18n"
	"a11ypack/internal/logger"
	"a11ypack/middleware"
)

// RegisterI18nRoutes exposes the chrome translations as JSON. The language
// comes from the store installed by middleware.Locale.
func RegisterI18nRoutes(router chi.Router) {
	router.Get("/api/i18n", func(w http.ResponseWriter, r *http.Request) {
		language := i18n.LanguageFrom(r.Context())
		payload := i18n.Response{
			Language: language,
			Messages: i18n.MessagesForLanguage(language),
		}
		if err := httputil.WriteJSON(w, http.StatusOK, payload); err != nil {
			logger.HTTPError(r.Method, r.URL.Path, http.StatusInternalServerError, err).
				Str("request_id", middleware.GetRequestID(r.Context())).
				Msg("failed to encode i18n response")
		}
	})
}
