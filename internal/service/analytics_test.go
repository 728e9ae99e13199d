package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/atishaysehgal/ff/internal/api/fantasy"
	"github.com/atishaysehgal/ff/internal/models"
	"github.com/atishaysehgal/ff/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	leagueCalls atomic.Int32
	playerCalls atomic.Int32
	matchupErr  error
}

func (f *fakeProvider) GetLeague(ctx context.Context, leagueID string) (*models.SleeperLeague, error) {
	f.leagueCalls.Add(1)
	if leagueID == "missing" {
		return nil, errors.New("league not found")
	}
	return &models.SleeperLeague{
		LeagueID:        leagueID,
		Name:            "Sunday Scaries",
		Season:          "2024",
		RosterPositions: []string{"QB", "RB", "BN"},
		Settings:        models.LeagueSettings{Leg: 1},
	}, nil
}

func (f *fakeProvider) GetUsers(ctx context.Context, leagueID string) ([]models.SleeperUser, error) {
	return []models.SleeperUser{
		{UserID: "u1", DisplayName: "kyle", Metadata: models.UserMetadata{TeamName: "Bijan Mustard"}},
		{UserID: "u2", DisplayName: "sam", Metadata: models.UserMetadata{TeamName: "Tush Push"}},
	}, nil
}

func (f *fakeProvider) GetRosters(ctx context.Context, leagueID string) ([]models.SleeperRoster, error) {
	return []models.SleeperRoster{
		{RosterID: 1, OwnerID: "u1"},
		{RosterID: 2, OwnerID: "u2"},
	}, nil
}

func (f *fakeProvider) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.SleeperMatchup, error) {
	if f.matchupErr != nil {
		return nil, f.matchupErr
	}
	return []models.SleeperMatchup{
		{RosterID: 1, MatchupID: 1, Points: 30, Starters: []string{"q1", "r1"}, StartersPoints: []float64{20, 10}, Players: []string{"q1", "r1", "r2"}},
		{RosterID: 2, MatchupID: 1, Points: 25, Starters: []string{"q2", "r3"}, StartersPoints: []float64{15, 10}, Players: []string{"q2", "r3"}},
	}, nil
}

func (f *fakeProvider) GetPlayerStats(ctx context.Context, season string, week int) (map[string]models.SleeperStats, error) {
	return map[string]models.SleeperStats{"r2": {PtsPPR: 18}}, nil
}

func (f *fakeProvider) GetPlayers(ctx context.Context) (map[string]models.SleeperPlayer, error) {
	f.playerCalls.Add(1)
	return map[string]models.SleeperPlayer{
		"q1": {FirstName: "Josh", LastName: "Allen", Position: "QB"},
		"r1": {FirstName: "Tony", LastName: "Pollard", Position: "RB"},
		"r2": {FirstName: "Kyren", LastName: "Williams", Position: "RB"},
		"q2": {FirstName: "Jalen", LastName: "Hurts", Position: "QB"},
		"r3": {FirstName: "Saquon", LastName: "Barkley", Position: "RB"},
	}, nil
}

func newTestService(provider *fakeProvider) *AnalyticsService {
	return NewAnalyticsService(fantasy.NewAPI(provider, "ppr"), memory.NewRepository(), "42", 2)
}

func TestAnalyzeLeague(t *testing.T) {
	svc := newTestService(&fakeProvider{})

	report, err := svc.AnalyzeLeague(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, "Sunday Scaries", report.League.Name)
	assert.Equal(t, 1, report.CurrentWeek)
	assert.Equal(t, "2024", report.Season)
	require.Len(t, report.Managers, 2)
	assert.Equal(t, "u1", report.Managers[0].Manager.UserID, "managers keep league order")
	assert.Equal(t, "u2", report.Managers[1].Manager.UserID)
	assert.Equal(t, "u2", report.Managers[1].Season.OwnerID)
	assert.Equal(t, 1, report.Managers[1].Season.TotalWeeks)

	kyle, ok := report.FindManager("u1")
	require.True(t, ok)
	assert.Equal(t, 1, kyle.Season.Wins)
	assert.Equal(t, 30.0, kyle.Season.TotalActualPoints)
	assert.Equal(t, 38.0, kyle.Season.TotalOptimalPoints)
	assert.Equal(t, 8.0, kyle.Season.PointsLostToSuboptimalLineups)
	require.Len(t, kyle.Season.Weekly[0].Substitutions, 1)
	assert.Equal(t, "Kyren Williams", kyle.Season.Weekly[0].Substitutions[0].With.Name)

	sam, ok := report.FindManager("u2")
	require.True(t, ok)
	assert.Equal(t, 1, sam.Season.Losses)
	assert.Equal(t, 0.0, sam.Season.PointsLostToSuboptimalLineups)
}

func TestAnalyzeLeague_Errors(t *testing.T) {
	t.Run("league lookup fails", func(t *testing.T) {
		_, err := newTestService(&fakeProvider{}).AnalyzeLeague(context.Background(), "missing")
		assert.ErrorContains(t, err, "league not found")
	})

	t.Run("week fetch fails", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := newTestService(&fakeProvider{matchupErr: boom}).AnalyzeLeague(context.Background(), "42")
		assert.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "week 1")
	})
}

func TestAnalyzeLeague_CachesMetadataAndPlayers(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(provider)

	_, err := svc.AnalyzeLeague(context.Background(), "42")
	require.NoError(t, err)
	_, err = svc.AnalyzeLeague(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, int32(1), provider.leagueCalls.Load())
	assert.Equal(t, int32(1), provider.playerCalls.Load())
}

func TestGetLeaderboard(t *testing.T) {
	svc := newTestService(&fakeProvider{})

	board, err := svc.GetLeaderboard(context.Background())
	require.NoError(t, err)

	assert.Contains(t, board, "1. *Bijan Mustard*")
	assert.Contains(t, board, "2. *Tush Push*")
	assert.Contains(t, board, "Lost: 8.00")
}

func TestGetManagerReport(t *testing.T) {
	svc := newTestService(&fakeProvider{})

	msg, err := svc.GetManagerReport(context.Background(), "bijan mustrd")
	require.NoError(t, err)
	assert.Contains(t, msg, "Bijan Mustard's Season")
	assert.Contains(t, msg, "Left on bench: 8.00")

	msg, err = svc.GetManagerReport(context.Background(), "nobody at all")
	require.NoError(t, err)
	assert.Contains(t, msg, "No manager found")
}

func TestGetWeekReport(t *testing.T) {
	svc := newTestService(&fakeProvider{})

	msg, err := svc.GetWeekReport(context.Background(), "kyle", 1)
	require.NoError(t, err)
	assert.Contains(t, msg, "Week 1")
	assert.Contains(t, msg, "RB Tony Pollard ➜ RB Kyren Williams (+8.00)")

	msg, err = svc.GetWeekReport(context.Background(), "sam", 1)
	require.NoError(t, err)
	assert.Contains(t, msg, "Optimal lineup started")

	msg, err = svc.GetWeekReport(context.Background(), "sam", 9)
	require.NoError(t, err)
	assert.Contains(t, msg, "No analysis")
}

func TestFindManager(t *testing.T) {
	managers := []models.ManagerAnalysis{
		{Manager: models.Manager{UserID: "u1", DisplayName: "kyle", TeamName: "Bijan Mustard"}},
		{Manager: models.Manager{UserID: "u2", DisplayName: "kylie", TeamName: "Tush Push"}},
	}

	tests := []struct {
		name  string
		query string
		want  string
		err   bool
	}{
		{"exact display name", "kylie", "u2", false},
		{"closest display name wins", "kyle", "u1", false},
		{"team name typo", "Tush Psh", "u2", false},
		{"too different", "zzzz", "", true},
		{"blank", "  ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := findManager(managers, tt.query)
			if tt.err {
				assert.ErrorIs(t, err, ErrManagerNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Manager.UserID)
		})
	}
}
