package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ServerErrorMessage is the generic payload for infrastructure
// failures. Internal detail stays in the log sink and is never echoed
// to the client.
const ServerErrorMessage = "Erro no servidor. Tente novamente mais tarde!"

// MessageResponse is the standard response envelope
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithMessage sends a `{"message": ...}` response
func RespondWithMessage(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, MessageResponse{Message: message})
}

// RespondWithServerError sends the generic 500 payload
func RespondWithServerError(w http.ResponseWriter) {
	RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
		"error": ServerErrorMessage,
	})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithServerError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
