package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/shipping-service/internal/core/domain"
	"github.com/99minutos/shipping-service/internal/infrastructure/tracing"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "trace_id": "<id>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, TraceID: correlationID(c)})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// The quote path collapses every pricing failure into this one error.
	if errors.Is(err, domain.ErrQuoteUnavailable) {
		return http.StatusInternalServerError, "Failed to calculate shipping quote"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("trace_id", correlationID(c)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// correlationID prefers the trace id and falls back to the request id.
func correlationID(c echo.Context) string {
	if id := tracing.TraceID(c.Request().Context()); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
