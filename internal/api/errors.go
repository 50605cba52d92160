package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/models"
	"github.com/sirupsen/logrus"
)

// All error responses use the envelope the Copilot Studio connector parses:
//
//	{ "error": { "code": str, "message": str, "details": any } }
//
// The core returns typed errors with stable codes and no status awareness;
// the mapping onto HTTP statuses lives here and nowhere else.

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the wire form of every error response. It satisfies
// huma.StatusError so handlers can return it directly.
type ErrorEnvelope struct {
	status int
	Err    errorBody `json:"error"`
}

func (e *ErrorEnvelope) Error() string {
	return e.Err.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorEnvelope) GetStatus() int {
	return e.status
}

func newEnvelope(status int, code, message string, details any) *ErrorEnvelope {
	return &ErrorEnvelope{
		status: status,
		Err:    errorBody{Code: code, Message: message, Details: details},
	}
}

// statusForCode maps core error codes onto HTTP statuses
func statusForCode(code string) int {
	switch code {
	case models.CodeDepartmentNotFound, models.CodeTaskNotFound, models.CodeEmployeeNotFound:
		return http.StatusNotFound
	case models.CodeMissingField, models.CodeValidationError:
		return http.StatusBadRequest
	case models.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// coreError converts a typed core error into its response envelope. Storage
// failures are logged with their cause here; the cause never reaches the
// client.
func coreError(err error) error {
	var appErr *models.Error
	if !errors.As(err, &appErr) {
		logrus.WithError(err).Error("unexpected error from core")
		return newEnvelope(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
			"An unexpected error occurred. Please try again or contact support.", nil)
	}

	if appErr.Code == models.CodeStorageError {
		logrus.WithError(appErr.Unwrap()).Error("storage error")
	}

	return newEnvelope(statusForCode(appErr.Code), appErr.Code, appErr.Message, appErr.Details)
}

// codeForStatus maps framework-generated statuses onto stable codes so that
// request parsing and validation failures also come back as envelopes.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return models.CodeUnauthorized
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusUnprocessableEntity:
		return models.CodeValidationError
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

func init() {
	// Route every error huma generates itself (body parse failures, schema
	// validation, content negotiation) through the same envelope, so the
	// connector never sees a different error shape.
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		var details []string
		for _, e := range errs {
			if e != nil {
				details = append(details, e.Error())
			}
		}
		if details == nil {
			return newEnvelope(status, codeForStatus(status), message, nil)
		}
		return newEnvelope(status, codeForStatus(status), message, details)
	}
}
