package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camuig/fx-signals/internal/config"
	"github.com/camuig/fx-signals/internal/contact"
	"github.com/camuig/fx-signals/internal/logger"
	"github.com/camuig/fx-signals/internal/mail"
	"github.com/camuig/fx-signals/internal/news"
	"github.com/camuig/fx-signals/internal/observability"
	"github.com/camuig/fx-signals/internal/signals"
	"github.com/camuig/fx-signals/internal/storage"
	"github.com/camuig/fx-signals/internal/telegram"
	"github.com/camuig/fx-signals/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("db", "data/fx-signals.db", "path to SQLite database")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Init logger
	log := logger.New(cfg.Logging.Level)

	// Init database
	db, err := storage.NewDatabase(*dbPath)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	repo := storage.NewRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init signal store; connecting is lazy, so an unreachable server only
	// shows up as fallbacks on the first requests.
	store, err := storage.NewMongoStore(ctx, cfg, log)
	if err != nil {
		log.Error("mongo init failed", "error", err)
		os.Exit(1)
	}
	if !store.Configured() {
		log.Warn("MONGODB_URI not set, signal listings will use mock data")
	}

	// Init services
	metrics := observability.NewDefault()
	notifier := telegram.NewNotifier(cfg, log)
	mailer := mail.NewResendMailer(cfg, log)
	newsClient := news.NewClient(cfg, log)

	log.Info("starting fx-signals",
		"store", store.Configured(),
		"news_api", newsClient.Configured(),
		"mail", mailer.Configured(),
		"telegram", notifier.Enabled())

	feed := signals.NewFeed(store,
		signals.Collections{
			Data:    cfg.Mongo.DataCollection,
			Daily:   cfg.Mongo.DailyCollection,
			Monthly: cfg.Mongo.MonthlyCollection,
		},
		signals.Limits{
			DataDefault: cfg.Signals.DataDefaultLimit,
			DataMax:     cfg.Signals.DataMaxLimit,
			Daily:       cfg.Signals.DailyLimit,
			Monthly:     cfg.Signals.MonthlyLimit,
		},
		metrics, log.With("component", "signals"))

	webServer := web.NewServer(web.Deps{
		Feed:    feed,
		News:    news.NewService(newsClient, metrics, log.With("component", "news")),
		Contact: contact.NewService(repo, mailer, notifier, metrics, log.With("component", "contact")),
		Store:   store,
		Metrics: metrics,
	}, cfg, log)

	// Start web server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- webServer.Start()
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			log.Error("web server error", "error", err)
		}
	}

	// Graceful shutdown
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown error", "error", err)
	}

	if err := store.Close(shutdownCtx); err != nil {
		log.Error("mongo close error", "error", err)
	}

	if err := storage.CloseDatabase(db); err != nil {
		log.Error("database close error", "error", err)
	}

	log.Info("fx-signals stopped")
}
