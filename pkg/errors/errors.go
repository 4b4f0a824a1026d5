package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("unexpected token signing method")
	ErrInvalidToken         = fmt.Errorf("Invalid token")
	ErrTokenExpired         = fmt.Errorf("Token expired")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("Authorization header missing")
	ErrInvalidAuthHeader  = fmt.Errorf("Invalid token format")
	ErrInvalidCredentials = fmt.Errorf("Invalid email or password")

	// Context
	ErrCustomerIDNotFoundInContext = fmt.Errorf("customer id not found in request context")

	// Associations
	ErrMechanicNotAssigned = fmt.Errorf("Mechanic is not assigned to this ticket.")

	// Common
	ErrNotFound   = fmt.Errorf("record not found")
	ErrBadRequest = fmt.Errorf("bad request")
)

// ErrorList maps sentinel errors to the HTTP status they translate to at
// the service boundary.
var ErrorList = map[error]int{
	ErrInvalidToken:                http.StatusUnauthorized,
	ErrTokenExpired:                http.StatusUnauthorized,
	ErrInvalidSigningMethod:        http.StatusUnauthorized,
	ErrEmptyAuthHeader:             http.StatusUnauthorized,
	ErrInvalidAuthHeader:           http.StatusUnauthorized,
	ErrInvalidCredentials:          http.StatusUnauthorized,
	ErrCustomerIDNotFoundInContext: http.StatusUnauthorized,
	ErrMechanicNotAssigned:         http.StatusBadRequest,
	ErrNotFound:                    http.StatusNotFound,
	ErrBadRequest:                  http.StatusBadRequest,
}

// HttpError carries the status code and user-facing message for a failed
// request, plus the wrapped internal error and structured context for logs.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrBadRequest, nil)
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, nil)
}

func NewForbiddenError(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message, nil, nil)
}
