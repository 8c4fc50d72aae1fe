package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/priority-items/internal/reqctx"
	"github.com/shinyyama/priority-items/internal/service"
	"go.uber.org/zap"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// errBadRequest marks failures in request shape: body decoding, path ids and
// missing fields.
var errBadRequest = errors.New("bad request")

// statusFor is the single mapping from error kind to HTTP status and code.
// Foreign key violations stay 500 but carry their own code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrConstraintViolation):
		return http.StatusInternalServerError, "constraint_violation"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func respondError(c echo.Context, log *zap.Logger, err error) error {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("rid", reqctx.RID(c.Request().Context())),
			zap.String("route", c.Path()),
			zap.Error(err),
		)
	}
	return c.JSON(status, NewErrorResponse(code, err.Error()))
}
