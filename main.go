package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/heonampyo/TennisTracker/internal/club"
	"github.com/heonampyo/TennisTracker/internal/config"
	"github.com/heonampyo/TennisTracker/internal/database"
	server "github.com/heonampyo/TennisTracker/internal/http"
	"github.com/heonampyo/TennisTracker/internal/ledger"
	"github.com/heonampyo/TennisTracker/internal/metrics"
	"github.com/heonampyo/TennisTracker/internal/notifier/slack"
	"github.com/heonampyo/TennisTracker/internal/processor"
	"github.com/heonampyo/TennisTracker/internal/pubsub"
	"github.com/heonampyo/TennisTracker/internal/scheduler"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	clubStore := club.New(db)
	recorder := ledger.NewRecorder(clubStore)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var notifier *slack.Notifier
	if cfg.Slack.Enabled() {
		notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("SLACK_BOT_TOKEN is not set, notifications are disabled")
		notifier = slack.NewNotifierWithAPI(nil, "", metricsSvc)
	}

	// Without a GCP project events are delivered in-process.
	var events pubsub.PubSubClient
	var local *pubsub.LocalClient
	if cfg.ProjectID != "" {
		events, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Info("GCP_PROJECT is not set, delivering events in-process")
		local = pubsub.NewLocal()
		events = local
	}
	defer events.Close()

	proc := processor.New(clubStore, notifier, metricsSvc, events, processor.WithLocation(cfg.Location))
	if local != nil {
		local.Subscribe(pubsub.EventMatchRecorded, func(ctx context.Context, data []byte) error {
			var event processor.MatchRecordedEvent
			if err := local.ProcessMessage(data, &event); err != nil {
				return err
			}
			return proc.HandleMatchRecorded(ctx, event, false)
		})
	}

	if cfg.Slack.Enabled() && cfg.Slack.ChannelID != "" {
		sched, err := scheduler.New(proc, cfg.LeaderboardCron, cfg.Location)
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %s", err)
		}
		sched.Start()
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Error("Scheduler shutdown failed", "error", err)
			}
		}()
	} else {
		log.Info("No Slack channel configured, weekly leaderboard post is disabled")
	}

	s := server.NewServer(
		clubStore,
		recorder,
		metricsSvc,
		metricsHandler,
		cfg,
		proc,
		events,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
