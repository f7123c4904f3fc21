package apperror

import "fmt"

type AppError struct {
	Code       string // Stable machine-readable code (e.g. INVALID_INPUT)
	Message    string // User-facing message
	HTTPStatus int    // HTTP status the handler should respond with
	Err        error  // Wrapped cause (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without a wrapped cause
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        nil,
	}
}

// Wrap creates an AppError around an existing error
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
