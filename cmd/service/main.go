package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "fulfillment/internal/app"
	"fulfillment/internal/handlers/rest/delivery_arrive_post"
	"fulfillment/internal/handlers/rest/delivery_assign_post"
	"fulfillment/internal/handlers/rest/delivery_command_post"
	"fulfillment/internal/handlers/rest/delivery_confirm_post"
	"fulfillment/internal/handlers/rest/delivery_get"
	"fulfillment/internal/handlers/rest/delivery_incident_post"
	"fulfillment/internal/handlers/rest/delivery_location_put"
	"fulfillment/internal/handlers/rest/delivery_post"
	"fulfillment/internal/handlers/rest/healthcheck_head"
	"fulfillment/internal/handlers/rest/history_get"
	"fulfillment/internal/handlers/rest/ping_get"
	"fulfillment/internal/handlers/rest/reservation_consume_post"
	"fulfillment/internal/handlers/rest/reservation_get"
	"fulfillment/internal/handlers/rest/reservation_post"
	"fulfillment/internal/handlers/rest/reservation_release_post"
	"fulfillment/internal/handlers/rest/sale_get"
	"fulfillment/internal/handlers/rest/sale_logistics_status_post"
	"fulfillment/internal/handlers/rest/sale_post"
	"fulfillment/internal/handlers/rest/stock_get"
	"fulfillment/internal/handlers/rest/stock_put"
	"fulfillment/internal/pkg/config"
	"fulfillment/internal/pkg/dotenv"
	"fulfillment/internal/pkg/grpchealth"
	metrics_system "fulfillment/internal/pkg/metrics"
	"fulfillment/internal/pkg/middlewares/graceful_shutdown"
	"fulfillment/internal/pkg/middlewares/metrics"
	"fulfillment/internal/pkg/middlewares/rate_limiter"
	"fulfillment/internal/pkg/middlewares/timeout"
	"fulfillment/pkg/logger"
	"fulfillment/pkg/logger/zap_adapter"
	"fulfillment/pkg/token_bucket"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter(
		zap_adapter.WithLevel(os.Getenv("LOG_LEVEL")),
		zap_adapter.WithService("fulfillment-service"),
	)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting fulfillment application")

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	} else {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // Получаю предупреждения от линтера в местах де наследуюсь от context.Background(), хотя это часть gracefull shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	storage, closeStorage, err := application.OpenStorage(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closeStorage()

	publisher, closePublisher, err := application.NewPublisher(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("publisher: %w", err)
	}
	defer closePublisher()

	// workersCtx живет до конца run: фоновые задачи и диспетчер останавливаются после http сервера
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	businessApp, err := application.InitializeApplication(workersCtx, log, storage, publisher, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	businessApp.Dispatcher.Start(workersCtx)
	defer businessApp.Dispatcher.Stop()

	metrics_system.StartSystemMetricsCollector(workersCtx, 0)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, storage, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
			logger.NewField("storage", storage.Driver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// grpc health сервер
	var grpcHealth *grpchealth.Server
	var grpcHealthErr chan error
	if cfg.Server.GRPCHealthPort != "" {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCHealthPort))
		if err != nil {
			return fmt.Errorf("grpc health listener: %w", err)
		}

		grpcHealth = grpchealth.New(log)
		grpcHealth.SetServing(true)

		grpcHealthErr = make(chan error, 1)
		go func() {
			defer close(grpcHealthErr)
			if err := grpcHealth.Serve(lis); err != nil {
				grpcHealthErr <- err
			}
		}()
	}
	// grpc health сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-grpcHealthErr: // nil канал, если GRPC_HEALTH_PORT не задан
		return fmt.Errorf("grpc health server: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	if grpcHealth != nil {
		grpcHealth.SetServing(false)
	}

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)

	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}
	if grpcHealth != nil {
		grpcHealth.Stop(shutdownCtx)
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	stopWorkers()
	<-businessApp.BackgroundWorkers.Done()

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	storage *application.Storage,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, storage.Checker)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log, storage.Driver)).Methods("GET")

	router.Handle("/sales", sale_post.New(log, app.ServiceSale)).Methods("POST")
	router.Handle("/sales/{id}", sale_get.New(log, app.ServiceSale)).Methods("GET")
	router.Handle("/sales/{id}/logistics-status", sale_logistics_status_post.New(log, app.ServiceSale)).Methods("POST")

	router.Handle("/reservations", reservation_post.New(log, app.ServiceReservation)).Methods("POST")
	router.Handle("/reservations/{id}", reservation_get.New(log, app.ServiceReservation)).Methods("GET")
	router.Handle("/reservations/{id}/consume", reservation_consume_post.New(log, app.ServiceReservation)).Methods("POST")
	router.Handle("/reservations/{id}/release", reservation_release_post.New(log, app.ServiceReservation)).Methods("POST")

	router.Handle("/stock/{product_id}/{warehouse_id}", stock_get.New(log, app.ServiceReservation)).Methods("GET")
	router.Handle("/stock/{product_id}/{warehouse_id}", stock_put.New(log, app.ServiceReservation)).Methods("PUT")

	router.Handle("/deliveries", delivery_post.New(log, app.ServiceDelivery)).Methods("POST")
	router.Handle("/deliveries/{id}", delivery_get.New(log, app.ServiceDelivery)).Methods("GET")
	router.Handle("/deliveries/{id}/assign", delivery_assign_post.New(log, app.ServiceDelivery)).Methods("POST")
	router.Handle("/deliveries/{id}/arrive", delivery_arrive_post.New(log, app.ServiceDelivery)).Methods("POST")
	router.Handle("/deliveries/{id}/confirm", delivery_confirm_post.New(log, app.ServiceDelivery)).Methods("POST")
	router.Handle("/deliveries/{id}/incident", delivery_incident_post.New(log, app.ServiceDelivery)).Methods("POST")
	router.Handle("/deliveries/{id}/location", delivery_location_put.New(log, app.ServiceDelivery)).Methods("PUT")
	// после конкретных маршрутов: mux проверяет их по порядку
	router.Handle("/deliveries/{id}/{command}", delivery_command_post.New(log, app.ServiceDelivery)).Methods("POST")

	router.Handle(history_get.PathPattern, history_get.New(log, app.ServiceHistory)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, nil)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
