package service

import (
	"errors"

	"barwy-shop/internal/repository"
)

// Kind discriminates the outcome carried by a Response
type Kind string

const (
	KindOK           Kind = "ok"
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindConflict     Kind = "conflict"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

// Response is the envelope every service operation returns
type Response struct {
	IsSuccess bool     `json:"isSuccess"`
	Message   string   `json:"message"`
	Errors    []string `json:"errors,omitempty"`
	Payload   any      `json:"payload,omitempty"`
	Kind      Kind     `json:"-"`
}

// Ok builds a successful response
func Ok(message string, payload any) Response {
	return Response{IsSuccess: true, Message: message, Payload: payload, Kind: KindOK}
}

// Fail builds a failed response of the given kind
func Fail(kind Kind, message string, errs ...string) Response {
	return Response{Message: message, Errors: errs, Kind: kind}
}

// FromError maps a repository error to a failed response.
// The error text itself is never exposed.
func FromError(err error, message string) Response {
	switch {
	case isNotFound(err):
		return Fail(KindNotFound, message)
	case repository.IsConflict(err):
		return Fail(KindConflict, message)
	case repository.IsTransient(err):
		return Fail(KindUnavailable, msgTryLater)
	default:
		return Fail(KindInternal, message)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrProductNotFound) ||
		errors.Is(err, repository.ErrCategoryNotFound) ||
		errors.Is(err, repository.ErrUserNotFound) ||
		errors.Is(err, repository.ErrRoleNotFound)
}
