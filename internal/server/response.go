package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/design"
	"github.com/theirongolddev/lifeos/internal/habit"
	"github.com/theirongolddev/lifeos/internal/planner"
)

// APIError is the error half of the response envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *APIError      `json:"error,omitempty"`
}

func ok(c *gin.Context, status int, data any, meta map[string]any) {
	c.JSON(status, APIResponse{Data: data, Meta: meta})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, APIResponse{Error: &APIError{Code: status, Message: msg}})
}

// failErr maps a domain error to its HTTP status.
func failErr(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	switch {
	case errors.As(err, &verr),
		errors.Is(err, planner.ErrInvalidInput),
		errors.Is(err, habit.ErrInvalidHabit),
		errors.Is(err, design.ErrEmptyPrompt):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, habit.ErrNotFound),
		errors.Is(err, chat.ErrMessageNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, design.ErrCredentialMissing):
		fail(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, design.ErrNoImage):
		fail(c, http.StatusBadGateway, err.Error())
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}
