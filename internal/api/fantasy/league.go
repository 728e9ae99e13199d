package fantasy

import (
	"context"
	"strings"
	"time"

	"github.com/atishaysehgal/ff/internal/analytics"
	"github.com/atishaysehgal/ff/internal/models"
)

const defaultSeason = "2023"

// Provider is the subset of the Sleeper API the analytics pipeline reads.
type Provider interface {
	GetLeague(ctx context.Context, leagueID string) (*models.SleeperLeague, error)
	GetUsers(ctx context.Context, leagueID string) ([]models.SleeperUser, error)
	GetRosters(ctx context.Context, leagueID string) ([]models.SleeperRoster, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]models.SleeperMatchup, error)
	GetPlayerStats(ctx context.Context, season string, week int) (map[string]models.SleeperStats, error)
	GetPlayers(ctx context.Context) (map[string]models.SleeperPlayer, error)
}

type API struct {
	provider      Provider
	scoringFormat string
}

func NewAPI(provider Provider, scoringFormat string) *API {
	return &API{provider: provider, scoringFormat: strings.ToLower(scoringFormat)}
}

func (a *API) GetLeagueInfo(ctx context.Context, leagueID string) (*models.LeagueInfo, error) {
	league, err := a.provider.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	users, err := a.provider.GetUsers(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return &models.LeagueInfo{League: league, Users: users}, nil
}

func (a *API) GetLeagueMetadata(ctx context.Context, leagueID string) (*models.LeagueMetadata, error) {
	league, err := a.provider.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	currentWeek := league.Settings.Leg
	if currentWeek <= 0 {
		currentWeek = 1
	}
	season := league.Season
	if season == "" {
		season = defaultSeason
	}

	return &models.LeagueMetadata{
		LeagueID:        leagueID,
		Name:            league.Name,
		Season:          season,
		CurrentWeek:     currentWeek,
		RosterPositions: league.RosterPositions,
		Requirement:     analytics.RequirementFromPositions(league.RosterPositions),
		LastUpdated:     time.Now(),
	}, nil
}

func (a *API) GetManagers(ctx context.Context, leagueID string) ([]models.Manager, error) {
	users, err := a.provider.GetUsers(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	managers := make([]models.Manager, len(users))
	for i, u := range users {
		managers[i] = models.Manager{
			UserID:      u.UserID,
			DisplayName: u.DisplayName,
			TeamName:    u.Metadata.TeamName,
			Avatar:      u.Avatar,
		}
	}
	return managers, nil
}

func (a *API) GetPlayerDirectory(ctx context.Context) (analytics.PlayerDirectory, error) {
	players, err := a.provider.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	dir := make(analytics.PlayerDirectory, len(players))
	for id, p := range players {
		dir[id] = analytics.PlayerInfo{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Position:  p.Position,
		}
	}
	return dir, nil
}

// GetWeek fetches one week of rosters, matchups and stats. Owner identity
// comes from the league rosters; when a matchup carries that week's lineup it
// replaces the current roster's starters and players.
func (a *API) GetWeek(ctx context.Context, leagueID, season string, week int, rosters []models.SleeperRoster) (models.WeekSnapshot, error) {
	matchups, err := a.provider.GetMatchups(ctx, leagueID, week)
	if err != nil {
		return models.WeekSnapshot{}, err
	}
	stats, err := a.provider.GetPlayerStats(ctx, season, week)
	if err != nil {
		return models.WeekSnapshot{}, err
	}

	byRoster := make(map[int]models.SleeperMatchup, len(matchups))
	snapshot := models.WeekSnapshot{
		Week:     week,
		Rosters:  make([]analytics.WeeklyRoster, 0, len(rosters)),
		Matchups: make([]analytics.WeeklyMatchup, 0, len(matchups)),
		Stats:    make(analytics.StatsTable, len(stats)),
	}

	for _, m := range matchups {
		byRoster[m.RosterID] = m
		snapshot.Matchups = append(snapshot.Matchups, analytics.WeeklyMatchup{
			RosterID:       m.RosterID,
			MatchupID:      m.MatchupID,
			Points:         m.Points,
			StartersPoints: m.StartersPoints,
		})
	}

	for _, r := range rosters {
		weekly := analytics.WeeklyRoster{
			RosterID: r.RosterID,
			OwnerID:  r.OwnerID,
			Starters: r.Starters,
			Players:  r.Players,
		}
		if m, ok := byRoster[r.RosterID]; ok && len(m.Starters) > 0 {
			weekly.Starters = m.Starters
			weekly.Players = m.Players
		}
		snapshot.Rosters = append(snapshot.Rosters, weekly)
	}

	for id, s := range stats {
		snapshot.Stats[id] = analytics.PlayerStats{Points: a.points(s)}
	}

	return snapshot, nil
}

func (a *API) GetRosters(ctx context.Context, leagueID string) ([]models.SleeperRoster, error) {
	return a.provider.GetRosters(ctx, leagueID)
}

func (a *API) points(s models.SleeperStats) float64 {
	switch a.scoringFormat {
	case "half_ppr":
		return s.PtsHalfPPR
	case "std":
		return s.PtsStd
	default:
		return s.PtsPPR
	}
}
