package activity

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeNotAuthenticated = "NOT_AUTHENTICATED"
	CodeInvalidDate      = "INVALID_DATE"
	CodeInvalidRepoRef   = "INVALID_REPOSITORY_REF"
	CodeInvalidQuery     = "INVALID_QUERY"
	CodeUpstream         = "UPSTREAM_ERROR"
)

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

// Predefined domain errors

func ErrNotAuthenticated() *DomainError {
	return &DomainError{
		Code:    CodeNotAuthenticated,
		Message: "not authenticated",
	}
}

func ErrInvalidDate(value string, err error) *DomainError {
	return &DomainError{
		Code:    CodeInvalidDate,
		Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value),
		Err:     err,
	}
}

func ErrInvalidRepoRef(value string, err error) *DomainError {
	return &DomainError{
		Code:    CodeInvalidRepoRef,
		Message: fmt.Sprintf("invalid repository reference %q", value),
		Err:     err,
	}
}

func ErrInvalidQuery(param, value string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidQuery,
		Message: fmt.Sprintf("invalid value %q for %s", value, param),
	}
}

func ErrUpstream(operation string, err error) *DomainError {
	return &DomainError{
		Code:    CodeUpstream,
		Message: fmt.Sprintf("github %s failed", operation),
		Err:     err,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or ""
// when there is none.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
