package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gitglimpse-core/internal/application/dto"
	"gitglimpse-core/internal/domain/activity"
	"gitglimpse-core/internal/domain/session"
)

// statusClientClosedRequest is used when the caller went away mid-request
const statusClientClosedRequest = 499

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var activityStatus = map[string]int{
	activity.CodeNotAuthenticated: http.StatusUnauthorized,
	activity.CodeInvalidDate:      http.StatusBadRequest,
	activity.CodeInvalidRepoRef:   http.StatusBadRequest,
	activity.CodeInvalidQuery:     http.StatusBadRequest,
	activity.CodeUpstream:         http.StatusInternalServerError,
}

var sessionStatus = map[string]int{
	session.CodeSessionNotFound:    http.StatusUnauthorized,
	session.CodeSessionExpired:     http.StatusUnauthorized,
	session.CodeInvalidToken:       http.StatusUnauthorized,
	session.CodeInvalidCallback:    http.StatusBadRequest,
	session.CodeInvalidSessionData: http.StatusInternalServerError,
}

// respondError writes err with the status matching its domain code
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var activityErr *activity.DomainError
	if errors.As(err, &activityErr) {
		c.JSON(statusFor(activityStatus, activityErr.Code), ErrorResponse{
			Error: errorMessage(activityErr.Message, activityErr.Err),
			Code:  activityErr.Code,
		})
		return
	}

	var sessionErr *session.DomainError
	if errors.As(err, &sessionErr) {
		c.JSON(statusFor(sessionStatus, sessionErr.Code), ErrorResponse{
			Error: sessionErr.Message,
			Code:  sessionErr.Code,
		})
		return
	}

	switch {
	case errors.Is(err, context.Canceled):
		c.AbortWithStatus(statusClientClosedRequest)
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "request timed out", Code: "TIMEOUT"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "INTERNAL_ERROR"})
	}
}

func statusFor(table map[string]int, code string) int {
	if status, ok := table[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorMessage appends the upstream message, e.g. GitHub's "Not Found"
func errorMessage(message string, cause error) string {
	if cause == nil {
		return message
	}
	return message + ": " + cause.Error()
}

// respondSummary writes a summarizing response and mirrors a quota cooldown
// in the Retry-After header
func respondSummary(c *gin.Context, fields dto.SummaryFields, body any) {
	if fields.RetryAfterSeconds > 0 {
		c.Header("Retry-After", strconv.Itoa(fields.RetryAfterSeconds))
	}
	c.JSON(http.StatusOK, body)
}
