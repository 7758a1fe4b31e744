package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/popeskul/wacloud/internal/models"
)

// Common error codes used by middleware
const (
	ErrorCodeInternal         = "INTERNAL_ERROR"
	ErrorCodeRequestTimeout   = "REQUEST_TIMEOUT"
	ErrorCodeNotFound         = "NOT_FOUND"
	ErrorCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// Common error messages used by middleware
const (
	ErrorMessageInternal         = "An internal error occurred"
	ErrorMessageRequestTimeout   = "Request timeout"
	ErrorMessageNotFound         = "Resource not found"
	ErrorMessageMethodNotAllowed = "Method not allowed"
)

// WriteError renders the gateway's error document with the given status.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	now := time.Now()
	render.Status(r, statusCode)
	render.JSON(w, r, models.ErrorResponse{
		Error:     errorCode,
		Message:   message,
		Timestamp: &now,
	})
}

// NotFound and MethodNotAllowed replace chi's plain-text defaults.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, ErrorCodeNotFound, ErrorMessageNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, ErrorMessageMethodNotAllowed)
}
