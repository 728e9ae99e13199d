package models

type SleeperLeague struct {
	LeagueID        string             `json:"league_id"`
	Name            string             `json:"name"`
	Season          string             `json:"season"`
	SeasonType      string             `json:"season_type"`
	Status          string             `json:"status"`
	Sport           string             `json:"sport"`
	TotalRosters    int                `json:"total_rosters"`
	RosterPositions []string           `json:"roster_positions"`
	Settings        LeagueSettings     `json:"settings"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
}

type LeagueSettings struct {
	Leg              int `json:"leg"`
	StartWeek        int `json:"start_week"`
	PlayoffWeekStart int `json:"playoff_week_start"`
	LastScoredLeg    int `json:"last_scored_leg"`
	NumTeams         int `json:"num_teams"`
}

type SleeperUser struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Avatar      string       `json:"avatar"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

type SleeperRoster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	LeagueID string         `json:"league_id"`
	Starters []string       `json:"starters"`
	Players  []string       `json:"players"`
	Reserve  []string       `json:"reserve"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
	Fpts   int `json:"fpts"`
}

type SleeperMatchup struct {
	RosterID       int                `json:"roster_id"`
	MatchupID      int                `json:"matchup_id"`
	Points         float64            `json:"points"`
	Starters       []string           `json:"starters"`
	StartersPoints []float64          `json:"starters_points"`
	Players        []string           `json:"players"`
	PlayersPoints  map[string]float64 `json:"players_points"`
}

type SleeperStats struct {
	PtsPPR     float64 `json:"pts_ppr"`
	PtsHalfPPR float64 `json:"pts_half_ppr"`
	PtsStd     float64 `json:"pts_std"`
}

type SleeperPlayer struct {
	PlayerID         string   `json:"player_id"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasy_positions"`
	Team             string   `json:"team"`
	Status           string   `json:"status"`
	InjuryStatus     string   `json:"injury_status"`
}
