package handlers

import (
	"net/http"

	"a11ypack/config"
	"a11ypack/internal/forms"
	"a11ypack/internal/httputil"
	"a11ypack/internal/i18n"
	"a11ypack/internal/logger"
	"a11ypack/internal/mailto"
	"a11ypack/middleware"
)

// FormConfig describes one form to the frontend.
type FormConfig struct {
	ID             string   `json:"id"`
	Fields         []string `json:"fields"`
	DismissAfterMs int64    `json:"dismissAfterMs"`
}

// ConfigResponse holds the public configuration exposed to the frontend.
type ConfigResponse struct {
	DefaultLanguage    i18n.Language   `json:"defaultLanguage"`
	SupportedLanguages []i18n.Language `json:"supportedLanguages"`
	ContactEmail       string          `json:"contactEmail"`
	MaxMailtoLength    int             `json:"maxMailtoLength"`
	Forms              []FormConfig    `json:"forms"`
}

// GetConfig returns the application configuration.
func GetConfig(cfg config.Config) http.HandlerFunc {
	resp := ConfigResponse{
		DefaultLanguage:    cfg.DefaultLanguage,
		SupportedLanguages: i18n.Supported(),
		ContactEmail:       mailto.Address,
		MaxMailtoLength:    mailto.MaxURILength,
		Forms:              []FormConfig{},
	}
	for _, id := range forms.IDs() {
		def, err := forms.Lookup(id)
		if err != nil {
			continue
		}
		entry := FormConfig{ID: def.ID, DismissAfterMs: def.DismissAfter.Milliseconds()}
		for _, field := range def.Fields {
			entry.Fields = append(entry.Fields, field.Key)
		}
		resp.Forms = append(resp.Forms, entry)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
			logger.HTTPError(r.Method, r.URL.Path, http.StatusInternalServerError, err).
				Str("request_id", requestID).
				Msg("failed to encode config response")
			return
		}
		logger.HTTPEvent(r.Method, r.URL.Path, http.StatusOK, 0).
			Str("request_id", requestID).
			Msg("config retrieved")
	}
}
