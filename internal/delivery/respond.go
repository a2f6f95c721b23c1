package delivery

import (
	"encoding/json"
	"net/http"
	"net/netip"
	"strings"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError — single error body shape for the whole API: {"error": msg}.
// 4xx is caller input, 5xx is an upstream or local failure.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// clientIP prefers X-Forwarded-For since the service normally sits behind a
// proxy that terminates TLS.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if _, err := netip.ParseAddr(first); err == nil {
			return first
		}
	}

	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
