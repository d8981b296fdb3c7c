package httputil

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the address of the caller. Forwarding headers are only
// honored when trustProxy is set, and only when they hold a parseable IP.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); validIP(first) {
			return strings.TrimSpace(first)
		}
		if realIP := r.Header.Get("X-Real-IP"); validIP(realIP) {
			return strings.TrimSpace(realIP)
		}
	}
	remote := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(remote); err == nil {
		return host
	}
	return remote
}

func validIP(value string) bool {
	return net.ParseIP(strings.TrimSpace(value)) != nil
}
