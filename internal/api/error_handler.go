package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/identity-core/auth-service/internal/core/domain"
)

// errorDetail is the canonical error body for all API errors. The code is a
// stable contract; clients switch on it, not on the message.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders domain errors as HTTP 400 with their stable code.
//   - Passes through echo's own errors (missing auth header, 404, bind
//     failures) with a status-derived code.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, detail := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{Error: detail})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorDetail) {
	// Domain errors all surface as 400; the code disambiguates.
	var de *domain.Error
	if errors.As(err, &de) {
		return http.StatusBadRequest, errorDetail{Code: de.Code, Message: de.Message}
	}

	// Echo's own errors (router 404, middleware 401, bind failures).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorDetail{
			Code:    statusCode(he.Code),
			Message: fmt.Sprintf("%v", he.Message),
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	}
}

func statusCode(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusBadRequest:
		return "INVALID_INPUT_VALUE"
	default:
		return "INTERNAL_ERROR"
	}
}
