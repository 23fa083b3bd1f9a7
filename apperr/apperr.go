// Package apperr defines the coded errors shared by the controllers.
package apperr

import (
	"errors"
	"net/http"
)

const (
	EAUTH      = "auth_required" // no session; the client should redirect to login
	EFORBIDDEN = "forbidden"     // role check failed
	ENOTFOUND  = "not_found"
	EINVALID   = "invalid"
	ECONFLICT  = "conflict"  // e.g. illegal status transition, empty-cart checkout
	ETRANSIENT = "transient" // store unavailable; safe to retry
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Code extracts the error code, defaulting to transient for unknown errors so
// that a store hiccup is never reported as not-found or an empty result.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ETRANSIENT
}

// HTTPStatus maps an error to the status its handler should respond with.
func HTTPStatus(err error) int {
	switch Code(err) {
	case EAUTH:
		return http.StatusUnauthorized
	case EFORBIDDEN:
		return http.StatusForbidden
	case ENOTFOUND:
		return http.StatusNotFound
	case EINVALID:
		return http.StatusBadRequest
	case ECONFLICT:
		return http.StatusConflict
	case ETRANSIENT:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
