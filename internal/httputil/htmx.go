package httputil

import (
	"encoding/json"
	"net/http"
	"strings"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("HX-Request")), "true")
}

// SetTrigger sets HX-Trigger to a single event carrying detail.
func SetTrigger(w http.ResponseWriter, event string, detail any) error {
	payload, err := json.Marshal(map[string]any{event: detail})
	if err != nil {
		return err
	}
	w.Header().Set("HX-Trigger", string(payload))
	return nil
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
