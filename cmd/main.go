package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/heatmap/internal/api"
	"github.com/UnknownOlympus/heatmap/internal/config"
	"github.com/UnknownOlympus/heatmap/internal/controller"
	"github.com/UnknownOlympus/heatmap/internal/geocoding"
	"github.com/UnknownOlympus/heatmap/internal/geometry"
	"github.com/UnknownOlympus/heatmap/internal/metrics"
	"github.com/UnknownOlympus/heatmap/internal/pointset"
	"github.com/UnknownOlympus/heatmap/internal/render"
	"github.com/UnknownOlympus/heatmap/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	source, err := pointset.ParseSource(cfg.Points.Source)
	if err != nil {
		log.Fatalf("Invalid point source: %v", err)
	}

	// The database is only needed when points are stored in postgres.
	var pinger api.Pinger
	loaderCfg := pointset.LoaderConfig{
		Source: source,
		Path:   cfg.Points.File,
		Limit:  cfg.Points.Limit,
		Logger: logger,
	}
	if source == pointset.SourcePostgres {
		dtb, errDB := repository.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if errDB != nil {
			log.Fatalf("Failed to connect to DB: %v", errDB)
		}
		defer dtb.Close()

		repo := repository.NewRepository(dtb, logger)
		loaderCfg.Fetcher = repo
		pinger = repo
	}

	points, err := pointset.Load(ctx, loaderCfg)
	if err != nil {
		log.Fatalf("Failed to load point set: %v", err)
	}

	predicate, err := geometry.NewPredicate(geometry.PredicateType(cfg.Predicate))
	if err != nil {
		log.Fatalf("Failed to create containment predicate: %v", err)
	}

	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Type),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: cfg.Geocoder.RateLimit,
		Region:    cfg.Geocoder.Region,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	mapOptions := geocoding.MapOptions(ctx, geoProvider, cfg.Geocoder.Center, logger)

	store := render.NewStore(logger)
	ctrl := controller.NewController(logger, points, predicate, store, appMetrics, mapOptions)
	if err = ctrl.Start(ctx); err != nil {
		log.Fatalf("Failed to render initial layer: %v", err)
	}

	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := api.NewRateLimiter(cfg.RateLimit, 0)
	go limiter.Run(ctx, time.Minute, api.DefaultLimiterIdle)

	router := api.NewRouter(api.RouterConfig{
		Handler:  api.NewHandler(ctrl, store, pinger, logger),
		Logger:   logger,
		Metrics:  appMetrics,
		Registry: reg,
		Limiter:  limiter,
	})

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.",
		"points", points.Len(),
		"predicate", cfg.Predicate,
		"geocoder", cfg.Geocoder.Type)

	runServer(ctx, logger, router, cfg.Port)

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// runServer serves the API until ctx is canceled, then shuts the server down.
func runServer(ctx context.Context, log *slog.Logger, handler http.Handler, port int) {
	readTimeout := 5
	writeTimeout := 10
	shutdownTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	go func() {
		log.InfoContext(ctx, "Starting HTTP server", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "HTTP server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "HTTP server shutdown failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
