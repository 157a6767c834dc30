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
	"time"

	"github.com/Dan9191/installment-service/internal/config"
	"github.com/Dan9191/installment-service/internal/handler"
	"github.com/Dan9191/installment-service/internal/integrations/cbr"
	"github.com/Dan9191/installment-service/internal/middleware"
	"github.com/Dan9191/installment-service/internal/notify"
	"github.com/Dan9191/installment-service/internal/repository"
	"github.com/Dan9191/installment-service/internal/service"
	"github.com/Dan9191/installment-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := notify.NewEngine(repo, cfg.Location)

	var opts []service.Option
	if cfg.LateFeeEnabled {
		opts = append(opts, service.WithKeyRates(cbr.NewCBRClient(cfg, logger)))
	}
	if cfg.MailEnabled() {
		opts = append(opts, service.WithAlertSender(email.NewSender(cfg, logger)))
	} else {
		logger.Info("SMTP not configured, alert e-mails disabled")
	}
	svc := service.NewService(repo, repo, engine, logger, cfg, opts...)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	h.Register(authRouter)

	// Background jobs
	c := cron.New(cron.WithLocation(cfg.Location))
	if _, err := c.AddFunc(cfg.ScanSchedule, func() { svc.TriggerScan() }); err != nil {
		logger.Fatalf("Invalid SCAN_SCHEDULE %q: %v", cfg.ScanSchedule, err)
	}
	if cfg.PurgeSchedule != "" {
		if _, err := c.AddFunc(cfg.PurgeSchedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := svc.Purge(ctx); err != nil {
				logger.Errorf("Notification purge failed: %v", err)
			}
		}); err != nil {
			logger.Fatalf("Invalid PURGE_SCHEDULE %q: %v", cfg.PurgeSchedule, err)
		}
	}
	c.Start()
	svc.TriggerScan()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	<-c.Stop().Done()
	svc.CancelScan()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
