package session

import (
	"errors"
	"fmt"
)

// Domain errors

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeSessionExpired     = "SESSION_EXPIRED"
	CodeInvalidSessionData = "INVALID_SESSION_DATA"
	CodeInvalidToken       = "INVALID_SESSION_TOKEN"
	CodeInvalidCallback    = "INVALID_OAUTH_CALLBACK"
)

// Predefined domain errors

func ErrSessionNotFound(id string) *DomainError {
	return &DomainError{
		Code:    CodeSessionNotFound,
		Message: fmt.Sprintf("session %s not found", id),
	}
}

func ErrSessionExpired(id string) *DomainError {
	return &DomainError{
		Code:    CodeSessionExpired,
		Message: fmt.Sprintf("session %s expired", id),
	}
}

func ErrInvalidSessionData(field string, err error) *DomainError {
	return &DomainError{
		Code:    CodeInvalidSessionData,
		Message: fmt.Sprintf("invalid %s", field),
		Err:     err,
	}
}

func ErrInvalidToken(err error) *DomainError {
	return &DomainError{
		Code:    CodeInvalidToken,
		Message: "invalid session token",
		Err:     err,
	}
}

func ErrInvalidCallback(reason string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidCallback,
		Message: reason,
	}
}

// CodeOf returns the code of the first DomainError in err's chain.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsNotFound reports whether err is a missing or expired session.
func IsNotFound(err error) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == CodeSessionNotFound || de.Code == CodeSessionExpired
}
