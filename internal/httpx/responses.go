package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the wire shape of every non-2xx response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func JSONError(w http.ResponseWriter, statusCode int, detail string) {
	JSON(w, statusCode, ErrorBody{Detail: detail})
}

// JSONUnauthorized writes a 401 with the bearer challenge header. Every
// 401 from this service carries the challenge, including mid-request
// token failures.
func JSONUnauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	JSONError(w, http.StatusUnauthorized, detail)
}

// JSONInternalError returns the generic 500 body. Callers log the cause
// server-side; it never reaches the client.
func JSONInternalError(w http.ResponseWriter) {
	JSONError(w, http.StatusInternalServerError, "An internal server error occurred")
}
