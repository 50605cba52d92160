package models

import "fmt"

// Stable machine-readable error codes. The API layer maps these onto HTTP
// status codes; the core only knows the codes.
const (
	CodeDepartmentNotFound = "DEPARTMENT_NOT_FOUND"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeEmployeeNotFound   = "EMPLOYEE_NOT_FOUND"
	CodeMissingField       = "MISSING_FIELD"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeStorageError       = "STORAGE_ERROR"
)

// Error is a typed core error carrying a stable code, a human-readable
// message, and optional structured details. It is transport-agnostic.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewDepartmentNotFound reports an unknown department name. Valid names are
// included so the agent can prompt the user with the real choices.
func NewDepartmentNotFound(name string, valid []string) *Error {
	return &Error{
		Code:    CodeDepartmentNotFound,
		Message: fmt.Sprintf("Department '%s' is not recognized.", name),
		Details: map[string]any{"valid_departments": valid},
	}
}

// NewTaskNotFound reports a task id that does not exist in the given
// department. A task that exists elsewhere is deliberately reported the
// same way as one that does not exist at all.
func NewTaskNotFound(taskID, department string) *Error {
	return &Error{
		Code:    CodeTaskNotFound,
		Message: fmt.Sprintf("Task '%s' not found in department '%s'.", taskID, department),
	}
}

// NewEmployeeNotFound reports an unknown employee name. The agent falls back
// to asking the user for their department manually.
func NewEmployeeNotFound(name string) *Error {
	return &Error{
		Code:    CodeEmployeeNotFound,
		Message: fmt.Sprintf("No employee record found for '%s'.", name),
	}
}

// NewMissingField reports a required request field that was absent or blank.
func NewMissingField(field string) *Error {
	return &Error{
		Code:    CodeMissingField,
		Message: fmt.Sprintf("Required field '%s' is missing.", field),
		Details: map[string]any{"field": field},
	}
}

// NewStorageError wraps a persistence failure. The cause stays attached for
// logging but is never serialized to the client.
func NewStorageError(err error) *Error {
	return &Error{
		Code:    CodeStorageError,
		Message: "A storage error occurred. Please try again or contact support.",
		cause:   err,
	}
}
