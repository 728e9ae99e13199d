package models

import (
	"time"

	"github.com/atishaysehgal/ff/internal/analytics"
)

type LeagueMetadata struct {
	LeagueID        string                      `json:"league_id"`
	Name            string                      `json:"name"`
	Season          string                      `json:"season"`
	CurrentWeek     int                         `json:"current_week"`
	RosterPositions []string                    `json:"roster_positions"`
	Requirement     analytics.RosterRequirement `json:"roster_settings"`
	LastUpdated     time.Time                   `json:"-"`
}

type Manager struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	TeamName    string `json:"team_name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// Label is the name shown in reports: team name when set, display name otherwise.
func (m Manager) Label() string {
	if m.TeamName != "" {
		return m.TeamName
	}
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.UserID
}

type WeekSnapshot struct {
	Week     int
	Rosters  []analytics.WeeklyRoster
	Matchups []analytics.WeeklyMatchup
	Stats    analytics.StatsTable
}

type LeagueInfo struct {
	League *SleeperLeague `json:"league"`
	Users  []SleeperUser  `json:"users"`
}

type ManagerAnalysis struct {
	Manager Manager                  `json:"user_info"`
	Season  analytics.SeasonAnalysis `json:"season_analysis"`
}

type LeagueReport struct {
	League      *LeagueMetadata   `json:"league"`
	Managers    []ManagerAnalysis `json:"manager_analytics"`
	CurrentWeek int               `json:"current_week"`
	Season      string            `json:"season"`
	GeneratedAt time.Time         `json:"generated_at"`
}

func (r *LeagueReport) FindManager(userID string) (ManagerAnalysis, bool) {
	for _, m := range r.Managers {
		if m.Manager.UserID == userID {
			return m, true
		}
	}
	return ManagerAnalysis{}, false
}
