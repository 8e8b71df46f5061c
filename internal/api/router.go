package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	_ "github.com/99minutos/shipping-service/docs"
	"github.com/99minutos/shipping-service/internal/api/handler"
	"github.com/99minutos/shipping-service/internal/api/metrics"
	"github.com/99minutos/shipping-service/internal/api/middleware"
	"github.com/99minutos/shipping-service/internal/core/ports"
	"github.com/99minutos/shipping-service/internal/core/service"
)

// Deps carries everything the router needs to build the handlers.
type Deps struct {
	Pricing ports.PricingClient
	// Redis enables ship-order idempotency and the readiness check. Optional.
	Redis          *redis.Client
	Dedup          ports.ShipmentDedup
	IdempotencyTTL time.Duration
	// Tracer defaults to the global OpenTelemetry tracer.
	Tracer trace.Tracer
	Logger zerolog.Logger
	// Registerer and Gatherer back the HTTP metrics middleware and /metrics.
	// They default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.Tracer == nil {
		d.Tracer = otel.Tracer("shipping")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "shipping",
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))
	e.Use(middleware.AccessLog(d.Logger))
	e.Use(middleware.Trace(d.Tracer))
	e.Use(middleware.RequestLogger(d.Logger))

	// --- Dependencies ---
	quoteService := service.NewQuoteService(d.Pricing, metrics.Recorder{}, d.Logger)
	shippingService := service.NewShippingService(d.Dedup, d.IdempotencyTTL, d.Logger)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	shippingHandler := handler.NewShippingHandler(shippingService)

	// --- Shipping routes ---
	e.POST("/get-quote", quoteHandler.GetQuote)
	e.POST("/ship-order", shippingHandler.ShipOrder)

	// --- Health probes ---
	checks := map[string]handler.DependencyCheck{}
	if d.Redis != nil {
		rdb := d.Redis
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(checks)

	// liveness – is the process alive? readiness – are dependencies up?
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
