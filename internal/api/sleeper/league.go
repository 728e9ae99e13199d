package sleeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atishaysehgal/ff/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeague(ctx context.Context, leagueID string) (*models.SleeperLeague, error) {
	var league models.SleeperLeague
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s", leagueID), nil, &league); err != nil {
		return nil, fmt.Errorf("fetching league %s: %w", leagueID, err)
	}
	return &league, nil
}

func (a *API) GetUsers(ctx context.Context, leagueID string) ([]models.SleeperUser, error) {
	var users []models.SleeperUser
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s/users", leagueID), nil, &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

func (a *API) GetRosters(ctx context.Context, leagueID string) ([]models.SleeperRoster, error) {
	var rosters []models.SleeperRoster
	if err := a.client.Get(ctx, fmt.Sprintf("/league/%s/rosters", leagueID), nil, &rosters); err != nil {
		return nil, fmt.Errorf("fetching rosters: %w", err)
	}
	return rosters, nil
}

// GetMatchups returns an empty list when Sleeper has no data for the week.
func (a *API) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.SleeperMatchup, error) {
	var matchups []models.SleeperMatchup
	err := a.client.Get(ctx, fmt.Sprintf("/league/%s/matchups/%d", leagueID, week), nil, &matchups)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			slog.Warn("No matchups for week", "week", week, "status", statusErr.StatusCode)
			return []models.SleeperMatchup{}, nil
		}
		return nil, fmt.Errorf("fetching matchups for week %d: %w", week, err)
	}
	return matchups, nil
}

// GetPlayerStats returns an empty table when Sleeper has no stats for the week.
func (a *API) GetPlayerStats(ctx context.Context, season string, week int) (map[string]models.SleeperStats, error) {
	var stats map[string]models.SleeperStats
	err := a.client.Get(ctx, fmt.Sprintf("/stats/nfl/regular/%s/%d", season, week), nil, &stats)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			slog.Warn("No player stats for week", "season", season, "week", week, "status", statusErr.StatusCode)
			return map[string]models.SleeperStats{}, nil
		}
		return nil, fmt.Errorf("fetching player stats for week %d: %w", week, err)
	}
	if stats == nil {
		stats = map[string]models.SleeperStats{}
	}
	return stats, nil
}

func (a *API) GetPlayers(ctx context.Context) (map[string]models.SleeperPlayer, error) {
	var players map[string]models.SleeperPlayer
	if err := a.client.Get(ctx, "/players/nfl", nil, &players); err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}
	return players, nil
}
