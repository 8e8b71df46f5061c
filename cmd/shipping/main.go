// Command shipping serves shipping quotes and tracking ids over HTTP.
//
// @title        Shipping Service API
// @version      1.0
// @description  Shipping cost quotes and shipment tracking ids.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/shipping-service/internal/api"
	"github.com/99minutos/shipping-service/internal/api/metrics"
	"github.com/99minutos/shipping-service/internal/core/ports"
	"github.com/99minutos/shipping-service/internal/infrastructure/db/redis"
	"github.com/99minutos/shipping-service/internal/infrastructure/pricing"
	"github.com/99minutos/shipping-service/internal/infrastructure/tracing"
	"github.com/99minutos/shipping-service/internal/pkg/config"
	"github.com/99minutos/shipping-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: cfg.Tracing.ServiceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracerProvider(tracing.Config{
		ServiceName:    cfg.Tracing.ServiceName,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise tracer provider")
	}
	tracer := tp.Tracer(cfg.Tracing.ServiceName)

	var (
		rdb   *goredis.Client
		dedup ports.ShipmentDedup
	)
	redisCfg := redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err = redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		dedup = redis.NewShipmentDedup(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("ship-order idempotency enabled")
	}

	pricingClient := pricing.NewClient(pricing.Config{
		BaseURL:  cfg.Quote.Addr,
		Timeout:  cfg.Quote.Timeout,
		Recorder: metrics.Recorder{},
	}, nil, tracer, log)

	e := api.NewRouter(api.Deps{
		Pricing:        pricingClient,
		Redis:          rdb,
		Dedup:          dedup,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		Tracer:         tracer,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("quote_service_addr", pricingClient.Endpoint()).
			Msg("shipping service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if tpErr := tp.Shutdown(shutdownCtx); tpErr != nil {
			log.Error().Err(tpErr).Msg("failed to flush tracer provider")
		}
		if rdb != nil {
			_ = rdb.Close()
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("shipping service stopped with error")
	}
	log.Info().Msg("shipping service stopped")
}
