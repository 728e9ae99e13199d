package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/atishaysehgal/ff/internal/analytics"
	"github.com/atishaysehgal/ff/internal/api/fantasy"
	"github.com/atishaysehgal/ff/internal/models"
	"github.com/atishaysehgal/ff/internal/repository/memory"
)

const (
	metadataTTL  = 24 * time.Hour
	directoryTTL = 24 * time.Hour
	reportTTL    = time.Hour

	nameMatchThreshold = 0.6
)

var ErrManagerNotFound = errors.New("manager not found")

type AnalyticsService struct {
	api         *fantasy.API
	repo        *memory.Repository
	leagueID    string
	concurrency int
}

func NewAnalyticsService(api *fantasy.API, repo *memory.Repository, leagueID string, concurrency int) *AnalyticsService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &AnalyticsService{api: api, repo: repo, leagueID: leagueID, concurrency: concurrency}
}

func (s *AnalyticsService) DefaultLeagueID() string {
	return s.leagueID
}

func (s *AnalyticsService) GetLeagueInfo(ctx context.Context, leagueID string) (*models.LeagueInfo, error) {
	return s.api.GetLeagueInfo(ctx, leagueID)
}

func (s *AnalyticsService) getLeagueMetadata(ctx context.Context, leagueID string) (*models.LeagueMetadata, error) {
	metadata := s.repo.GetMetadata(leagueID)
	if metadata == nil || time.Since(metadata.LastUpdated) > metadataTTL {
		newMetadata, err := s.api.GetLeagueMetadata(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		s.repo.SaveMetadata(newMetadata)
		return newMetadata, nil
	}
	return metadata, nil
}

func (s *AnalyticsService) getPlayerDirectory(ctx context.Context) (analytics.PlayerDirectory, error) {
	dir, loaded := s.repo.GetPlayerDirectory()
	if dir == nil || time.Since(loaded) > directoryTTL {
		newDir, err := s.api.GetPlayerDirectory(ctx)
		if err != nil {
			return nil, err
		}
		s.repo.SavePlayerDirectory(newDir, time.Now())
		slog.Info("Player directory loaded", "players", len(newDir))
		return newDir, nil
	}
	return dir, nil
}

// AnalyzeLeague fetches every week up to the league's current week and runs
// the season analysis for each manager.
func (s *AnalyticsService) AnalyzeLeague(ctx context.Context, leagueID string) (*models.LeagueReport, error) {
	metadata, err := s.getLeagueMetadata(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error fetching league: %w", err)
	}
	slog.Info("Analyzing league", "league", metadata.Name, "season", metadata.Season, "week", metadata.CurrentWeek)

	dir, err := s.getPlayerDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching players: %w", err)
	}

	managers, err := s.api.GetManagers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error fetching managers: %w", err)
	}

	rosters, err := s.api.GetRosters(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error fetching rosters: %w", err)
	}

	weeks, err := s.fetchWeeks(ctx, metadata, rosters)
	if err != nil {
		return nil, err
	}

	weeklyRosters := make([][]analytics.WeeklyRoster, len(weeks))
	weeklyMatchups := make([][]analytics.WeeklyMatchup, len(weeks))
	weeklyStats := make([]analytics.StatsTable, len(weeks))
	for i, w := range weeks {
		weeklyRosters[i] = w.Rosters
		weeklyMatchups[i] = w.Matchups
		weeklyStats[i] = w.Stats
	}

	results := make([]models.ManagerAnalysis, len(managers))
	var wg sync.WaitGroup
	for i, m := range managers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = models.ManagerAnalysis{
				Manager: m,
				Season: analytics.AnalyzeSeason(
					m.UserID, weeklyRosters, weeklyMatchups, weeklyStats, dir, metadata.Requirement,
				),
			}
		}()
	}
	wg.Wait()

	report := &models.LeagueReport{
		League:      metadata,
		Managers:    results,
		CurrentWeek: metadata.CurrentWeek,
		Season:      metadata.Season,
		GeneratedAt: time.Now(),
	}
	s.repo.SaveReport(report)

	slog.Info("Analysis completed", "league", metadata.Name, "managers", len(results), "weeks", len(weeks))
	return report, nil
}

func (s *AnalyticsService) fetchWeeks(ctx context.Context, metadata *models.LeagueMetadata, rosters []models.SleeperRoster) ([]models.WeekSnapshot, error) {
	weeks := make([]models.WeekSnapshot, metadata.CurrentWeek)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for week := 1; week <= metadata.CurrentWeek; week++ {
		g.Go(func() error {
			snapshot, err := s.api.GetWeek(ctx, metadata.LeagueID, metadata.Season, week, rosters)
			if err != nil {
				return fmt.Errorf("error fetching week %d: %w", week, err)
			}
			weeks[week-1] = snapshot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return weeks, nil
}

func (s *AnalyticsService) latestReport(ctx context.Context) (*models.LeagueReport, error) {
	report := s.repo.GetReport(s.leagueID)
	if report != nil && time.Since(report.GeneratedAt) <= reportTTL {
		return report, nil
	}
	return s.AnalyzeLeague(ctx, s.leagueID)
}

// Refresh re-runs the analysis for the configured league regardless of cache age.
func (s *AnalyticsService) Refresh(ctx context.Context) error {
	_, err := s.AnalyzeLeague(ctx, s.leagueID)
	return err
}

func (s *AnalyticsService) GetLeaderboard(ctx context.Context) (string, error) {
	report, err := s.latestReport(ctx)
	if err != nil {
		return "", fmt.Errorf("error analyzing league: %w", err)
	}
	return formatLeaderboard(report), nil
}

func (s *AnalyticsService) GetManagerReport(ctx context.Context, name string) (string, error) {
	report, err := s.latestReport(ctx)
	if err != nil {
		return "", fmt.Errorf("error analyzing league: %w", err)
	}

	manager, err := findManager(report.Managers, name)
	if err != nil {
		return fmt.Sprintf("🔍 No manager found matching '%s'.", name), nil
	}
	return formatManagerReport(manager), nil
}

func (s *AnalyticsService) GetWeekReport(ctx context.Context, name string, week int) (string, error) {
	report, err := s.latestReport(ctx)
	if err != nil {
		return "", fmt.Errorf("error analyzing league: %w", err)
	}

	manager, err := findManager(report.Managers, name)
	if err != nil {
		return fmt.Sprintf("🔍 No manager found matching '%s'.", name), nil
	}

	for _, w := range manager.Season.Weekly {
		if w.Week == week {
			return formatWeekReport(manager.Manager, w), nil
		}
	}
	return fmt.Sprintf("No analysis for *%s* in week %d.", manager.Manager.Label(), week), nil
}

func findManager(managers []models.ManagerAnalysis, name string) (models.ManagerAnalysis, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return models.ManagerAnalysis{}, ErrManagerNotFound
	}

	best := -1
	bestScore := 0.0
	for i, m := range managers {
		for _, candidate := range []string{m.Manager.DisplayName, m.Manager.TeamName} {
			candidate = strings.ToLower(candidate)
			if candidate == "" {
				continue
			}
			distance := fuzzy.LevenshteinDistance(query, candidate)
			maxLen := float64(max(len(query), len(candidate)))
			similarity := 1 - float64(distance)/maxLen

			if similarity > nameMatchThreshold && similarity > bestScore {
				bestScore = similarity
				best = i
			}
		}
	}

	if best < 0 {
		return models.ManagerAnalysis{}, ErrManagerNotFound
	}
	return managers[best], nil
}
