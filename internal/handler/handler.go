package handler

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the fixed JSON envelope every endpoint answers with.
type apiResponse struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// OriginGate checks every request against a configured allow-list of caller
// origins before normal handling. Requests without an Origin header (direct
// server-to-server or tooling calls) are admitted unconditionally.
type OriginGate struct {
	allowed map[string]struct{}
}

// NewOriginGate creates an OriginGate admitting exactly the given origins.
func NewOriginGate(origins []string) *OriginGate {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return &OriginGate{allowed: allowed}
}

// Middleware rejects disallowed origins with 403 before the route handler
// runs, and answers preflight for allowed ones.
func (g *OriginGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if _, ok := g.allowed[origin]; !ok {
			http.Error(w, "Origin not allowed.", http.StatusForbidden)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
