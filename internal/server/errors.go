package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

// ErrorHandlingMiddleware converts domain errors attached to the context into
// a structured JSON error response.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	if errors.Is(err, eventdomain.ErrNotFound) {
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "event not found",
		}
	}

	if errors.Is(err, eventdomain.ErrDuplicateID) {
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "event id already exists",
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, eventdomain.ErrMissingType),
		errors.Is(err, eventdomain.ErrInvalidType),
		errors.Is(err, eventdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	switch code {
	case eventdomain.ErrMissingType.Error(), eventdomain.ErrInvalidType.Error():
		return "event_type"
	case eventdomain.ErrInvalidID.Error():
		return "id"
	default:
		return "request"
	}
}

func validationErrorMessage(code string) string {
	switch code {
	case eventdomain.ErrMissingType.Error():
		return "no event type selected"
	case eventdomain.ErrInvalidType.Error():
		return "unknown event type"
	case eventdomain.ErrInvalidID.Error():
		return "invalid event id"
	default:
		return "invalid request"
	}
}
