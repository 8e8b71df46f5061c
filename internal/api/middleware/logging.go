package middleware

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/99minutos/shipping-service/internal/infrastructure/tracing"
)

// RequestLogger stores a request-scoped logger carrying request_id, trace_id
// and span_id in the request context. Handlers read it with logger.FromContext.
// It must run after RequestID and Trace.
func RequestLogger(base zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()

			l := base.With().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("trace_id", tracing.TraceID(ctx)).
				Str("span_id", tracing.SpanID(ctx)).
				Logger()

			c.SetRequest(req.WithContext(l.WithContext(ctx)))
			return next(c)
		}
	}
}

// AccessLog writes one structured line per request.
func AccessLog(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("trace_id", tracing.TraceID(c.Request().Context())).
				Msg("request")
			return nil
		},
	})
}
