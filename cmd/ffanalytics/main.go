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

	"github.com/atishaysehgal/ff/internal/api/fantasy"
	"github.com/atishaysehgal/ff/internal/api/sleeper"
	"github.com/atishaysehgal/ff/internal/bot"
	"github.com/atishaysehgal/ff/internal/config"
	"github.com/atishaysehgal/ff/internal/repository/memory"
	"github.com/atishaysehgal/ff/internal/scheduler"
	"github.com/atishaysehgal/ff/internal/server"
	"github.com/atishaysehgal/ff/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	setupLogger(cfg.Log)

	sleeperClient := sleeper.NewClient(cfg.Sleeper)
	sleeperAPI := sleeper.NewAPI(sleeperClient)
	fantasyAPI := fantasy.NewAPI(sleeperAPI, cfg.Sleeper.ScoringFormat)

	repo := memory.NewRepository()
	analyticsService := service.NewAnalyticsService(fantasyAPI, repo, cfg.Sleeper.LeagueID, cfg.Sleeper.FetchConcurrency)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, analyticsService, cfg.HTTP.RequestTimeout)
		if err != nil {
			return err
		}

		sched, err := scheduler.NewScheduler(cfg.Schedule, analyticsService, telegramBot.SendMessage)
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Error("Error stopping scheduler", "error", err)
			}
		}()

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("TELEGRAM_TOKEN not set, chat bot and scheduled reports disabled")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.NewRouter(cfg.HTTP, analyticsService),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", cfg.HTTP.Addr, "league", cfg.Sleeper.LeagueID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupLogger(cfg config.Log) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
