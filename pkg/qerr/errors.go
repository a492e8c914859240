package qerr

import (
	"errors"
	"fmt"
)

// Error codes for the query layer. The presenter decides how each code maps
// to a user-facing response.
const (
	CodeInvalidParameter = "invalid_parameter"
	CodeDataUnavailable  = "data_unavailable"
	CodeInvalidPipeline  = "invalid_pipeline"
)

// Error standardizes query-layer error reporting and logging context.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Helpers
func InvalidParameter(msg string, err error) *Error {
	return &Error{Code: CodeInvalidParameter, Message: msg, Err: err}
}
func DataUnavailable(msg string, err error) *Error {
	return &Error{Code: CodeDataUnavailable, Message: msg, Err: err}
}
func InvalidPipeline(msg string, err error) *Error {
	return &Error{Code: CodeInvalidPipeline, Message: msg, Err: err}
}

// Is compares target code regardless of wrapped error.
func Is(err error, code string) bool {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code == code
	}
	return false
}
