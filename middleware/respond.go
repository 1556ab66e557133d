package middleware

import (
	"encoding/json"
	"net/http"
)

// Machine-readable error kinds. These are the only failure details that
// cross the HTTP boundary; internal errors never appear verbatim.
const (
	KindUnauthenticated  = "unauthenticated"
	KindForbidden        = "forbidden"
	KindRateLimited      = "rate_limited"
	KindCSRFMismatch     = "csrf_mismatch"
	KindStoreUnavailable = "store_unavailable"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: kind})
}
