package server

import (
	"encoding/json"
	"net/http"

	"github.com/litescript/ls-starfield/internal/logging"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// writeError logs err and sends it as a JSON error reply. It is the only
// place request errors are logged.
func writeError(w http.ResponseWriter, r *http.Request, logger *logging.Logger, err error) {
	errType := TypeOf(err)
	status := StatusCode(errType)

	message := err.Error()
	switch errType {
	case ErrorTypeInternal:
		logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
		message = "internal server error"
	case ErrorTypeRateLimited:
		logger.Warn("%s %s from %s: %v", r.Method, r.URL.Path, r.RemoteAddr, err)
	default:
		logger.Debug("%s %s: %s error: %v", r.Method, r.URL.Path, errType, err)
	}

	writeJSON(w, status, ErrorResponse{
		Error:   string(errType),
		Message: message,
		Code:    status,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
