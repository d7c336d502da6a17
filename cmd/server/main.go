package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitsmart/splitsmart/internal/auth"
	"github.com/splitsmart/splitsmart/internal/config"
	"github.com/splitsmart/splitsmart/internal/middleware"
	"github.com/splitsmart/splitsmart/internal/notify"
	"github.com/splitsmart/splitsmart/internal/server"
	"github.com/splitsmart/splitsmart/internal/service"
	"github.com/splitsmart/splitsmart/internal/storage/sqlite"
	"github.com/splitsmart/splitsmart/pkg/logging"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	notifier, err := buildNotifier(cfg)
	if err != nil {
		slog.Error("failed to initialize notifier", "backend", cfg.Notifier, "error", err)
		os.Exit(1)
	}
	defer notifier.Close()
	slog.Info("notifier initialized", "backend", cfg.Notifier)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	srv := server.New(
		service.NewAuthService(authenticator, jwtManager, store),
		service.NewExpenseService(store, notifier),
		service.NewSettlementService(store, notifier),
		service.NewGroupService(store, notifier),
		service.NewContactService(store, notifier),
		service.NewDashboardService(store),
		service.NewReminderService(store),
		jwtManager,
	)

	mux := http.NewServeMux()
	mux.Handle("/api/", srv.Handler())
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func buildNotifier(cfg *config.Config) (notify.Notifier, error) {
	switch cfg.Notifier {
	case "smtp":
		return notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}), nil
	case "amqp":
		return notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	default:
		return notify.Noop{}, nil
	}
}
