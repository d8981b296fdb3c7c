package handlers

import (
	"net/http"

	"a11ypack/internal/content"
	"a11ypack/internal/httputil"
	"a11ypack/internal/i18n"
	"a11ypack/internal/logger"
	"a11ypack/middleware"
)

// ReadinessCheck reports ready once section copy loads in every supported language.
func ReadinessCheck(store *content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		for _, lang := range i18n.Supported() {
			if _, err := store.Document(lang); err != nil {
				logger.HTTPError(r.Method, r.URL.Path, http.StatusServiceUnavailable, err).
					Str("request_id", requestID).
					Str("language", string(lang)).
					Msg("content not ready")
				_ = httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		logger.HTTPEvent(r.Method, r.URL.Path, http.StatusOK, 0).
			Str("request_id", requestID).
			Msg("readiness check")
		_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
