package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/atishaysehgal/ff/internal/config"
)

const reportTimeout = 5 * time.Minute

// Reporter refreshes the season analysis and renders the leaderboard.
type Reporter interface {
	Refresh(ctx context.Context) error
	GetLeaderboard(ctx context.Context) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         config.Schedule
	reporter    Reporter
	sendMessage func(string) error
}

func NewScheduler(cfg config.Schedule, reporter Reporter, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", cfg.Timezone, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		reporter:    reporter,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	// Weekly leaderboard, Tuesday morning by default once Monday night is scored
	_, err := s.s.NewJob(
		gocron.CronJob(s.cfg.ReportCron, false),
		gocron.NewTask(s.sendLeaderboard),
		gocron.WithName("weekly-leaderboard"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create leaderboard job: %w", err)
	}

	s.s.Start()
	slog.Info("Scheduler started", "cron", s.cfg.ReportCron, "timezone", s.cfg.Timezone)
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendLeaderboard() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	if err := s.reporter.Refresh(ctx); err != nil {
		slog.Error("Failed to refresh analysis", "error", err)
		return
	}

	board, err := s.reporter.GetLeaderboard(ctx)
	if err != nil {
		slog.Error("Failed to get leaderboard", "error", err)
		return
	}
	if err := s.sendMessage(board); err != nil {
		slog.Error("Failed to send leaderboard", "error", err)
	}
}
