package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/securecontent/workspace-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API failures.
type errorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps tagged domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "message": ...}.
//
// In non-development environments internal error messages are replaced
// with a generic one; operational errors always keep their message.
func NewHTTPErrorHandler(env string, log zerolog.Logger) echo.HTTPErrorHandler {
	development := env == "development"

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, development, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, development bool, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Tagged domain errors carry their own status and field details.
	var de *domain.Error
	if errors.As(err, &de) {
		if de.Operational() {
			return de.Kind.HTTPStatus(), errorResponse{Message: de.Message, Errors: de.Fields}
		}

		// Internal failure: log the real cause, hide it outside development.
		log.Error().
			Err(de).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		msg := "internal server error"
		if development {
			msg = de.Error()
		}
		return http.StatusInternalServerError, errorResponse{Message: msg}
	}

	// Echo's own errors (404 from the router, method not allowed, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	// Anything else is unexpected.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	msg := "internal server error"
	if development {
		msg = err.Error()
	}
	return http.StatusInternalServerError, errorResponse{Message: msg}
}
