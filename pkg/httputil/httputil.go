package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/medflow/resume-parser/pkg/errors"
	"github.com/medflow/resume-parser/pkg/i18n"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody represents an error in the response
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON sends a JSON response wrapped in the standard envelope
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	RawJSON(w, statusCode, Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	})
}

// RawJSON sends data as-is, without the envelope. Used by the compatibility routes
// whose clients expect the bare extraction object.
func RawJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(data)
}

// Error sends an error response (uses default locale)
func Error(w http.ResponseWriter, err error) {
	writeError(w, err, nil)
}

// ErrorLocalized sends a localized error response using request context
func ErrorLocalized(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, err, r)
}

func writeError(w http.ResponseWriter, err error, r *http.Request) {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if r != nil {
			message = appErr.Localize(r.Context())
		}

		RawJSON(w, appErr.StatusCode, Response{
			Success: false,
			Error: &ErrorBody{
				Code:    appErr.Code,
				Message: message,
				Details: appErr.Details,
			},
		})
		return
	}

	// Default to internal server error
	message := "an unexpected error occurred"
	if r != nil {
		message = i18n.LocalizerFromContext(r.Context()).T("errors.internal")
	}

	RawJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Error: &ErrorBody{
			Code:    "INTERNAL_ERROR",
			Message: message,
		},
	})
}
