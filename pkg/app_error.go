package pkg

import (
	"errors"
	"net/http"
)

// Kind is the closed set of error categories exposed to API callers.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindUnauthorized    Kind = "unauthorized"
	KindConflict        Kind = "conflict"
	KindUpstreamFailure Kind = "upstream_failure"
	KindInternal        Kind = "internal"
)

// KindFromStatus derives the error kind of an HTTP status code.
func KindFromStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusConflict:
		return KindConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindUpstreamFailure
	}
	return KindInternal
}

// AppError is an error already mapped to an API response.
type AppError struct {
	Code       string
	Message    string
	Kind       Kind
	HTTPStatus int
	Err        error
}

// HTTPError is the JSON body of a failed request.
type HTTPError struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Kind  Kind   `json:"kind,omitempty"`
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Kind:       KindFromStatus(httpStatus),
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return NewDomainError(code, message, nil, httpStatus)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// WithKind overrides the kind derived from the HTTP status.
func (e *AppError) WithKind(k Kind) *AppError {
	e.Kind = k
	return e
}

// ToHTTPError renders the error body. The wrapped cause is never exposed.
func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{OK: false, Error: e.Message, Code: e.Code, Kind: e.Kind}
}

// AsAppError unwraps err into an *AppError when one is in the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
