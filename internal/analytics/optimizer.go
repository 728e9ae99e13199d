package analytics

import (
	"slices"
	"sort"
)

// Optimize runs a single greedy pass over the bench. Bench players are tried
// from highest to lowest score; each one replaces the first starter (scanning
// worst-first) whose swap keeps the lineup legal and strictly gains points.
// The incoming player is appended to the end of the working lineup, which is
// sorted only once. A bench player that finds no such starter is not retried.
//
// The result is not guaranteed to be the best possible lineup.
func Optimize(starters, bench []PlayerSlot, req RosterRequirement) WeeklyAnalysis {
	actual := slices.Clone(starters)

	ranked := slices.Clone(bench)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Points > ranked[j].Points
	})

	lineup := slices.Clone(starters)
	sortWorstFirst(lineup)

	positions := make([]string, len(starters))
	for i, s := range starters {
		positions[i] = s.Position
	}

	substitutions := []Substitution{}
	for _, candidate := range ranked {
		for i, starter := range lineup {
			if !IsValidSubstitution(positions, candidate.Position, starter.Position, req) {
				continue
			}
			if candidate.Points <= starter.Points {
				continue
			}

			lineup = append(slices.Delete(lineup, i, i+1), candidate)
			positions = append(removeFirst(positions, starter.Position), candidate.Position)
			substitutions = append(substitutions, Substitution{
				Replaced:  starter,
				With:      candidate,
				PointGain: candidate.Points - starter.Points,
			})
			break
		}
	}

	if actual == nil {
		actual = []PlayerSlot{}
	}
	if lineup == nil {
		lineup = []PlayerSlot{}
	}

	return WeeklyAnalysis{
		ActualPoints:  sumPoints(actual),
		OptimalPoints: sumPoints(lineup),
		Substitutions: substitutions,
		ActualLineup:  actual,
		OptimalLineup: lineup,
	}
}

// BuildLineups resolves a week's starters and bench into scored slots.
// Starter points come from the matchup snapshot and are paired by index; any
// starter without a matching points entry is dropped. Bench points come from
// the stats table; a player without a stat line is left off the bench.
func BuildLineups(roster WeeklyRoster, matchup WeeklyMatchup, stats StatsTable, dir PlayerDirectory) (starters, bench []PlayerSlot) {
	n := min(len(roster.Starters), len(matchup.StartersPoints))
	starters = make([]PlayerSlot, 0, n)
	starting := make(map[string]bool, len(roster.Starters))
	for i, id := range roster.Starters {
		starting[id] = true
		if i < n {
			starters = append(starters, slot(id, matchup.StartersPoints[i], dir))
		}
	}

	for _, id := range roster.Players {
		if starting[id] {
			continue
		}
		points, ok := stats.Points(id)
		if !ok {
			continue
		}
		bench = append(bench, slot(id, points, dir))
	}

	return starters, bench
}

// OptimizeWeek builds the lineups for one team-week and optimizes them.
func OptimizeWeek(roster WeeklyRoster, matchup WeeklyMatchup, stats StatsTable, dir PlayerDirectory, req RosterRequirement) WeeklyAnalysis {
	starters, bench := BuildLineups(roster, matchup, stats, dir)
	return Optimize(starters, bench, req)
}

func slot(playerID string, points float64, dir PlayerDirectory) PlayerSlot {
	return PlayerSlot{
		PlayerID: playerID,
		Name:     dir.Name(playerID),
		Position: dir.Position(playerID),
		Points:   points,
	}
}

// sortWorstFirst keeps equal scores in their roster order.
func sortWorstFirst(lineup []PlayerSlot) {
	sort.SliceStable(lineup, func(i, j int) bool {
		return lineup[i].Points < lineup[j].Points
	})
}

func removeFirst(positions []string, pos string) []string {
	if i := slices.Index(positions, pos); i >= 0 {
		return slices.Delete(positions, i, i+1)
	}
	return positions
}

func sumPoints(slots []PlayerSlot) float64 {
	var total float64
	for _, s := range slots {
		total += s.Points
	}
	return total
}
