package analytics

import (
	"fmt"
	"log/slog"
	"sort"
)

// AnalyzeSeason walks week-aligned roster, matchup and stats snapshots for a
// single owner. Index i holds week i+1. A week is skipped when the owner has
// no roster or matchup, or when its lineup analysis fails; skipped weeks do
// not count toward any total or average.
//
// Inputs are only read, so concurrent calls may share them.
func AnalyzeSeason(
	ownerID string,
	rosters [][]WeeklyRoster,
	matchups [][]WeeklyMatchup,
	stats []StatsTable,
	dir PlayerDirectory,
	req RosterRequirement,
) SeasonAnalysis {
	result := SeasonAnalysis{
		OwnerID: ownerID,
		Weekly:  []WeeklyAnalysis{},
	}

	weeks := min(len(rosters), len(matchups), len(stats))
	for i := 0; i < weeks; i++ {
		week := i + 1

		roster, ok := findRoster(rosters[i], ownerID)
		if !ok {
			slog.Debug("No roster found for owner", "owner", ownerID, "week", week)
			continue
		}

		matchup, ok := findMatchup(matchups[i], roster.RosterID)
		if !ok {
			slog.Debug("No matchup found for roster", "roster", roster.RosterID, "week", week)
			continue
		}

		var pointsAgainst float64
		if opponent, ok := findOpponent(matchups[i], matchup); ok {
			pointsAgainst = opponent.Points
		}

		weekly, err := analyzeWeek(roster, matchup, stats[i], dir, req)
		if err != nil {
			slog.Warn("Skipping week", "owner", ownerID, "week", week, "error", err)
			continue
		}

		weekly.Week = week
		weekly.PointsFor = matchup.Points
		weekly.PointsAgainst = pointsAgainst
		weekly.Result = OutcomeLoss
		if matchup.Points > pointsAgainst {
			weekly.Result = OutcomeWin
			result.Wins++
		} else {
			result.Losses++
		}

		result.TotalActualPoints += weekly.ActualPoints
		result.TotalOptimalPoints += weekly.OptimalPoints
		result.Weekly = append(result.Weekly, weekly)
	}

	result.TotalWeeks = len(result.Weekly)
	if decided := result.Wins + result.Losses; decided > 0 {
		result.WinPercentage = float64(result.Wins) / float64(decided)
	}
	if result.TotalWeeks > 0 {
		result.AverageActualPoints = result.TotalActualPoints / float64(result.TotalWeeks)
		result.AverageOptimalPoints = result.TotalOptimalPoints / float64(result.TotalWeeks)
	}
	result.PointsLostToSuboptimalLineups = result.TotalOptimalPoints - result.TotalActualPoints

	return result
}

var optimizeWeek = OptimizeWeek

// Leaderboard returns a copy of results ordered by points lost, most first.
func Leaderboard(results []SeasonAnalysis) []SeasonAnalysis {
	ranked := make([]SeasonAnalysis, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PointsLostToSuboptimalLineups != ranked[j].PointsLostToSuboptimalLineups {
			return ranked[i].PointsLostToSuboptimalLineups > ranked[j].PointsLostToSuboptimalLineups
		}
		return ranked[i].OwnerID < ranked[j].OwnerID
	})
	return ranked
}

func analyzeWeek(roster WeeklyRoster, matchup WeeklyMatchup, stats StatsTable, dir PlayerDirectory, req RosterRequirement) (weekly WeeklyAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lineup analysis panicked: %v", r)
		}
	}()
	return optimizeWeek(roster, matchup, stats, dir, req), nil
}

func findRoster(rosters []WeeklyRoster, ownerID string) (WeeklyRoster, bool) {
	for _, r := range rosters {
		if r.OwnerID == ownerID {
			return r, true
		}
	}
	return WeeklyRoster{}, false
}

func findMatchup(matchups []WeeklyMatchup, rosterID int) (WeeklyMatchup, bool) {
	for _, m := range matchups {
		if m.RosterID == rosterID {
			return m, true
		}
	}
	return WeeklyMatchup{}, false
}

func findOpponent(matchups []WeeklyMatchup, own WeeklyMatchup) (WeeklyMatchup, bool) {
	for _, m := range matchups {
		if m.MatchupID == own.MatchupID && m.RosterID != own.RosterID {
			return m, true
		}
	}
	return WeeklyMatchup{}, false
}
