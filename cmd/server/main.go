package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/app"
	"github.com/benvon/quest-planner/internal/backup"
	"github.com/benvon/quest-planner/internal/config"
	"github.com/benvon/quest-planner/internal/handlers"
	"github.com/benvon/quest-planner/internal/logger"
	"github.com/benvon/quest-planner/internal/middleware"
	"github.com/benvon/quest-planner/internal/storage"
	"github.com/benvon/quest-planner/internal/telemetry"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync(zapLogger)

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.String("storage_backend", cfg.StorageBackend),
		zap.String("timezone", cfg.Location.String()),
		zap.Duration("backup_interval", cfg.BackupInterval),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	tracingEnabled := false
	if cfg.OTELEnabled {
		tp, err := telemetry.InitTracer(context.Background(), logger.ServiceName, cfg.OTELEndpoint)
		if err != nil {
			zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
		} else {
			tracingEnabled = true
			zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
					zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
				}
			}()
		}
	}

	a, err := app.Open(context.Background(), cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed_to_open_planner", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			zapLogger.Warn("failed_to_close_storage", zap.Error(err))
		}
	}()
	svc := a.Planner

	scheduler := backup.NewScheduler(cfg.BackupInterval, cfg.Location, func(ctx context.Context) error {
		_, err := svc.CreateBackup(ctx)
		return err
	}, zapLogger.Named("backup"))
	if err := scheduler.Start(); err != nil {
		zapLogger.Fatal("failed_to_start_backup_scheduler", zap.Error(err))
	}

	// Share the redis connection for rate limit counters when redis is the store
	var redisClient *redis.Client
	if rs, ok := a.Store.(*storage.RedisStore); ok {
		redisClient = rs.Client()
	}
	rateLimitMW, err := middleware.RateLimit(cfg.RateLimit, redisClient)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	r := mux.NewRouter()

	// gorilla/mux runs middleware in registration order, first registered is outermost
	if tracingEnabled {
		r.Use(otelmux.Middleware(logger.ServiceName))
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(zapLogger))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORSFromEnv(cfg.FrontendURL))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize, middleware.DefaultMaxUploadSize))
	r.Use(middleware.ContentType)
	r.Use(middleware.Timeout(middleware.DefaultRequestTimeout))

	healthChecker := handlers.NewHealthChecker(a.Store, cfg.StorageBackend)
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(rateLimitMW)
	handlers.NewPlannerHandler(svc, zapLogger.Named("http")).RegisterRoutes(apiRouter)

	// Preflight requests need a matching route for the CORS middleware to run
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   middleware.DefaultRequestTimeout + 5*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server_forced_to_shutdown", zap.Error(err))
	}

	// Final backup once no request can change the state any more
	if err := scheduler.RunNow(ctx); err != nil {
		zapLogger.Error("shutdown_backup_failed", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `{"version":"1.0.0","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}
