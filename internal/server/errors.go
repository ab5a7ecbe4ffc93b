package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/platfix/platfix/internal/shared"
)

// InternalErrorMessage is the only message a 5xx response ever carries.
const InternalErrorMessage = "An internal server error occurred"

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	StatusCode int               `json:"statusCode"`
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

// NewErrorBody builds the body for err. Server errors never expose their cause.
func NewErrorBody(err error) ErrorBody {
	status := shared.StatusOf(err)
	body := ErrorBody{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    http.StatusText(status),
	}

	if status >= http.StatusInternalServerError {
		body.Message = InternalErrorMessage
		return body
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		body.Message = verr.Message
		body.Details = verr.Fields
	}
	return body
}

// NewErrorHandler returns the [ErrorHandler] shared by every route.
//
// Server errors are logged with their cause; client errors at debug level.
func NewErrorHandler(logger *log.Logger) ErrorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		body := NewErrorBody(err)
		l := logger.With("method", r.Method, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))

		if body.StatusCode >= http.StatusInternalServerError {
			l.Error("request failed", "status", body.StatusCode, "error", err)
		} else {
			l.Debug("request rejected", "status", body.StatusCode, "error", err)
		}

		writeJSON(w, body.StatusCode, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRaw sends a JSON body that is already encoded.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
