package analytics

import "fmt"

// PositionUnknown is reported for players missing from the directory.
const PositionUnknown = "UNK"

// Outcome is a week's head-to-head result. Ties count as losses.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeLoss Outcome = "L"
)

// RosterRequirement holds the number of starting slots per position.
// Flex counts slots that RB, WR or TE may fill beyond their own minimums.
type RosterRequirement struct {
	QB   int `json:"qb"`
	RB   int `json:"rb"`
	WR   int `json:"wr"`
	TE   int `json:"te"`
	K    int `json:"k"`
	DEF  int `json:"def"`
	Flex int `json:"flex"`
}

// RequirementFromPositions counts the league's roster position labels.
// Labels other than the seven tracked slots (BN, IR, SUPER_FLEX...) are ignored.
func RequirementFromPositions(labels []string) RosterRequirement {
	var req RosterRequirement
	for _, label := range labels {
		switch label {
		case "QB":
			req.QB++
		case "RB":
			req.RB++
		case "WR":
			req.WR++
		case "TE":
			req.TE++
		case "K":
			req.K++
		case "DEF":
			req.DEF++
		case "FLEX":
			req.Flex++
		}
	}
	return req
}

// IsZero reports whether no slots are configured; such a requirement accepts any lineup.
func (r RosterRequirement) IsZero() bool {
	return r == RosterRequirement{}
}

type PlayerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
}

// PlayerDirectory maps a player id to its display data. It is never used for points.
type PlayerDirectory map[string]PlayerInfo

// Name returns "First Last", or "Player <id>" for an unknown id.
func (d PlayerDirectory) Name(playerID string) string {
	if p, ok := d[playerID]; ok {
		name := p.FirstName
		if p.LastName != "" {
			if name != "" {
				name += " "
			}
			name += p.LastName
		}
		return name
	}
	return fmt.Sprintf("Player %s", playerID)
}

// Position returns the listed position, or PositionUnknown when the id is
// missing or has no position.
func (d PlayerDirectory) Position(playerID string) string {
	if p, ok := d[playerID]; ok && p.Position != "" {
		return p.Position
	}
	return PositionUnknown
}

type PlayerSlot struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Points   float64 `json:"points"`
}

type WeeklyRoster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Starters []string `json:"starters"`
	Players  []string `json:"players"`
}

// WeeklyMatchup is one team's side of a head-to-head week. Two matchups with
// the same MatchupID in the same week are opponents.
type WeeklyMatchup struct {
	RosterID       int       `json:"roster_id"`
	MatchupID      int       `json:"matchup_id"`
	Points         float64   `json:"points"`
	StartersPoints []float64 `json:"starters_points"`
}

type PlayerStats struct {
	Points float64 `json:"points"`
}

// StatsTable holds one week's stat lines. Only bench points are read from it.
type StatsTable map[string]PlayerStats

// Points reports the player's scored points and whether a stat line exists.
func (s StatsTable) Points(playerID string) (float64, bool) {
	stats, ok := s[playerID]
	if !ok {
		return 0, false
	}
	return stats.Points, true
}

type Substitution struct {
	Replaced  PlayerSlot `json:"replaced"`
	With      PlayerSlot `json:"with"`
	PointGain float64    `json:"point_gain"`
}

type WeeklyAnalysis struct {
	Week          int            `json:"week,omitempty"`
	ActualPoints  float64        `json:"actual_points"`
	OptimalPoints float64        `json:"optimal_points"`
	Substitutions []Substitution `json:"improvements"`
	ActualLineup  []PlayerSlot   `json:"actual_lineup"`
	OptimalLineup []PlayerSlot   `json:"optimal_lineup"`
	PointsFor     float64        `json:"points_for,omitempty"`
	PointsAgainst float64        `json:"points_against,omitempty"`
	Result        Outcome        `json:"result,omitempty"`
}

// PointsLost is the gap between the optimal and the started lineup.
func (w WeeklyAnalysis) PointsLost() float64 {
	return w.OptimalPoints - w.ActualPoints
}

type SeasonAnalysis struct {
	OwnerID                       string           `json:"owner_id"`
	TotalWeeks                    int              `json:"total_weeks"`
	Wins                          int              `json:"wins"`
	Losses                        int              `json:"losses"`
	WinPercentage                 float64          `json:"win_percentage"`
	TotalActualPoints             float64          `json:"total_actual_points"`
	TotalOptimalPoints            float64          `json:"total_optimal_points"`
	PointsLostToSuboptimalLineups float64          `json:"points_lost_to_suboptimal_lineups"`
	AverageActualPoints           float64          `json:"average_actual_points"`
	AverageOptimalPoints          float64          `json:"average_optimal_points"`
	Weekly                        []WeeklyAnalysis `json:"weekly_data"`
}
