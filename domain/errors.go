package domain

import "net/http"

type ErrorKind int

const (
	ErrValidation ErrorKind = iota
	ErrPayloadTooLarge
	ErrMethodNotAllowed
	ErrConfiguration
	ErrUpstream
	ErrRateLimited
	ErrTimeout
	ErrInternal
)

// AppError carries an error classification alongside the message that is
// safe to return to the caller in the {"error": ...} body.
type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func WrapAppError(kind ErrorKind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrRateLimited:
		return http.StatusTooManyRequests
	case ErrTimeout:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
