package fantasy

import (
	"context"
	"errors"
	"testing"

	"github.com/atishaysehgal/ff/internal/analytics"
	"github.com/atishaysehgal/ff/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	league   *models.SleeperLeague
	users    []models.SleeperUser
	rosters  []models.SleeperRoster
	matchups map[int][]models.SleeperMatchup
	stats    map[int]map[string]models.SleeperStats
	players  map[string]models.SleeperPlayer
	err      error
}

func (f *fakeProvider) GetLeague(ctx context.Context, leagueID string) (*models.SleeperLeague, error) {
	return f.league, f.err
}

func (f *fakeProvider) GetUsers(ctx context.Context, leagueID string) ([]models.SleeperUser, error) {
	return f.users, f.err
}

func (f *fakeProvider) GetRosters(ctx context.Context, leagueID string) ([]models.SleeperRoster, error) {
	return f.rosters, f.err
}

func (f *fakeProvider) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.SleeperMatchup, error) {
	return f.matchups[week], f.err
}

func (f *fakeProvider) GetPlayerStats(ctx context.Context, season string, week int) (map[string]models.SleeperStats, error) {
	return f.stats[week], f.err
}

func (f *fakeProvider) GetPlayers(ctx context.Context) (map[string]models.SleeperPlayer, error) {
	return f.players, f.err
}

func TestGetLeagueMetadata(t *testing.T) {
	provider := &fakeProvider{league: &models.SleeperLeague{
		Name:            "Sunday Scaries",
		RosterPositions: []string{"QB", "RB", "RB", "WR", "WR", "TE", "FLEX", "K", "DEF", "BN"},
	}}
	api := NewAPI(provider, "ppr")

	meta, err := api.GetLeagueMetadata(context.Background(), "99")
	require.NoError(t, err)

	assert.Equal(t, "99", meta.LeagueID)
	assert.Equal(t, "2023", meta.Season, "season defaults when absent")
	assert.Equal(t, 1, meta.CurrentWeek, "week defaults when absent")
	assert.Equal(t, analytics.RosterRequirement{QB: 1, RB: 2, WR: 2, TE: 1, K: 1, DEF: 1, Flex: 1}, meta.Requirement)
	assert.False(t, meta.LastUpdated.IsZero())
}

func TestGetLeagueMetadata_Error(t *testing.T) {
	api := NewAPI(&fakeProvider{err: errors.New("boom")}, "ppr")

	_, err := api.GetLeagueMetadata(context.Background(), "99")
	assert.EqualError(t, err, "boom")
}

func TestGetManagers(t *testing.T) {
	provider := &fakeProvider{users: []models.SleeperUser{
		{UserID: "u1", DisplayName: "kyle", Metadata: models.UserMetadata{TeamName: "Bijan Mustard"}},
		{UserID: "u2", DisplayName: "sam"},
	}}

	managers, err := NewAPI(provider, "ppr").GetManagers(context.Background(), "1")
	require.NoError(t, err)

	require.Len(t, managers, 2)
	assert.Equal(t, "Bijan Mustard", managers[0].Label())
	assert.Equal(t, "sam", managers[1].Label())
}

func TestGetPlayerDirectory(t *testing.T) {
	provider := &fakeProvider{players: map[string]models.SleeperPlayer{
		"4046": {FirstName: "Patrick", LastName: "Mahomes", Position: "QB"},
		"DAL":  {FirstName: "Dallas", LastName: "Cowboys", Position: "DEF"},
	}}

	dir, err := NewAPI(provider, "ppr").GetPlayerDirectory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Patrick Mahomes", dir.Name("4046"))
	assert.Equal(t, "DEF", dir.Position("DAL"))
	assert.Equal(t, analytics.PositionUnknown, dir.Position("nope"))
}

func TestGetWeek(t *testing.T) {
	provider := &fakeProvider{
		matchups: map[int][]models.SleeperMatchup{
			2: {
				{RosterID: 1, MatchupID: 1, Points: 88, Starters: []string{"a", "b"}, StartersPoints: []float64{50, 38}, Players: []string{"a", "b", "c"}},
				{RosterID: 2, MatchupID: 1, Points: 90},
			},
		},
		stats: map[int]map[string]models.SleeperStats{
			2: {"c": {PtsPPR: 12, PtsHalfPPR: 10, PtsStd: 8}},
		},
	}
	rosters := []models.SleeperRoster{
		{RosterID: 1, OwnerID: "u1", Starters: []string{"x"}, Players: []string{"x", "y"}},
		{RosterID: 2, OwnerID: "u2", Starters: []string{"z"}, Players: []string{"z"}},
	}

	t.Run("matchup lineup wins over current roster", func(t *testing.T) {
		week, err := NewAPI(provider, "ppr").GetWeek(context.Background(), "1", "2024", 2, rosters)
		require.NoError(t, err)

		assert.Equal(t, 2, week.Week)
		require.Len(t, week.Rosters, 2)
		assert.Equal(t, []string{"a", "b"}, week.Rosters[0].Starters)
		assert.Equal(t, []string{"a", "b", "c"}, week.Rosters[0].Players)
		assert.Equal(t, []string{"z"}, week.Rosters[1].Starters)
		require.Len(t, week.Matchups, 2)
		assert.Equal(t, []float64{50, 38}, week.Matchups[0].StartersPoints)
		assert.Equal(t, 12.0, week.Stats["c"].Points)
	})

	t.Run("scoring format picks the stat column", func(t *testing.T) {
		week, err := NewAPI(provider, "STD").GetWeek(context.Background(), "1", "2024", 2, rosters)
		require.NoError(t, err)
		assert.Equal(t, 8.0, week.Stats["c"].Points)
	})
}
