package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/montluxe/storefront/internal/apperr"
	userdomain "github.com/montluxe/storefront/internal/user/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware translates the core's classified errors into HTTP
// responses. Handlers never write error bodies themselves.
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
	return apperr.Validation("request", apperr.ReasonWrongType)
}

func mapError(err error) (int, errorPayload) {
	var vErr *apperr.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: vErr.Error(),
			Field:   vErr.Field,
			Reason:  vErr.Reason,
		}
	}

	var nErr *apperr.NotFoundError
	if errors.As(err, &nErr) {
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: nErr.Error(),
		}
	}

	var dErr *apperr.DuplicateError
	if errors.As(err, &dErr) {
		return http.StatusConflict, errorPayload{
			Type:    "duplicate",
			Message: dErr.Error(),
		}
	}

	var cErr *apperr.ConflictError
	if errors.As(err, &cErr) {
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: cErr.Error(),
		}
	}

	if errors.Is(err, userdomain.ErrInvalidCredentials) {
		return http.StatusUnauthorized, errorPayload{
			Type:    "invalid_credentials",
			Message: "invalid credentials",
		}
	}

	// Raw storage or internal errors stay opaque at the boundary.
	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}
