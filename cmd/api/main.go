package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Dan9191/finance-service/docs"
	"github.com/Dan9191/finance-service/internal/config"
	"github.com/Dan9191/finance-service/internal/events/kafka"
	"github.com/Dan9191/finance-service/internal/handler"
	"github.com/Dan9191/finance-service/internal/middleware"
	"github.com/Dan9191/finance-service/internal/repository"
	"github.com/Dan9191/finance-service/internal/schema"
	"github.com/Dan9191/finance-service/internal/service"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// @title Finance API
// @version 1.0.0
// @description Health checks and transaction records
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Unknown log level %q, using info", cfg.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database. Open only validates the DSN; an unreachable server
	// surfaces later through schema readiness and /health/db.
	db := mustOpenDB(cfg.Database, logger)
	defer db.Close()

	schemaInit := schema.NewInitializer(db, logger)
	readiness := schemaInit.Run(ctx)
	if cfg.RetryEnabled() {
		if err := schemaInit.ScheduleRetries(cfg.SchemaRetrySchedule); err != nil {
			logger.Fatalf("Failed to schedule schema retries: %v", err)
		}
	}
	defer schemaInit.Stop()

	// Initialize layers
	var publisher service.Publisher
	if cfg.EventsEnabled() {
		p := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := p.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close event publisher")
			}
		}()
		publisher = p
		logger.Infof("Publishing transaction events to topic %s", cfg.Kafka.Topic)
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, publisher, logger)
	h := handler.NewHandler(svc, readiness, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Http.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      newRouter(h, logger),
		ReadTimeout:  cfg.Http.ReadTimeout,
		WriteTimeout: cfg.Http.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Errorf("Server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Http.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}

func mustOpenDB(cfg config.DatabaseConfig, logger *logrus.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db
}

func newRouter(h *handler.Handler, logger *logrus.Logger) http.Handler {
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// API explorer
	r.Handle("/", http.RedirectHandler("/swagger/index.html", http.StatusFound)).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return middleware.Chain(r,
		middleware.RequestID,
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.CORS,
	)
}
