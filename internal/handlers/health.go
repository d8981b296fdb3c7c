package handlers

import (
	"net/http"

	"a11ypack/internal/httputil"
	"a11ypack/internal/version"
)

// HealthCheck reports that the process is serving requests.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetVersion returns build information.
func GetVersion(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, version.Get())
}
