package service

import (
	"fmt"
	"strings"

	"github.com/atishaysehgal/ff/internal/analytics"
	"github.com/atishaysehgal/ff/internal/models"
)

func formatLeaderboard(report *models.LeagueReport) string {
	seasons := make([]analytics.SeasonAnalysis, len(report.Managers))
	for i, m := range report.Managers {
		seasons[i] = m.Season
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🧠 *Points Left on the Bench* (through week %d)\n\n", report.CurrentWeek))

	if len(seasons) == 0 {
		sb.WriteString("No managers to rank yet.")
		return sb.String()
	}

	for i, season := range analytics.Leaderboard(seasons) {
		manager, _ := report.FindManager(season.OwnerID)
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", i+1, manager.Manager.Label()))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d\n", season.Wins, season.Losses))
		sb.WriteString(fmt.Sprintf("   Actual: %.2f | Optimal: %.2f\n", season.TotalActualPoints, season.TotalOptimalPoints))
		sb.WriteString(fmt.Sprintf("   Lost: %.2f\n\n", season.PointsLostToSuboptimalLineups))
	}

	return sb.String()
}

func formatManagerReport(m models.ManagerAnalysis) string {
	season := m.Season

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *%s's Season*\n", m.Manager.Label()))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")

	if season.TotalWeeks == 0 {
		sb.WriteString("No completed weeks to analyze.")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Record: %d-%d (%.1f%%)\n", season.Wins, season.Losses, season.WinPercentage*100))
	sb.WriteString(fmt.Sprintf("Actual: %.2f (%.2f/wk)\n", season.TotalActualPoints, season.AverageActualPoints))
	sb.WriteString(fmt.Sprintf("Optimal: %.2f (%.2f/wk)\n", season.TotalOptimalPoints, season.AverageOptimalPoints))
	sb.WriteString(fmt.Sprintf("Left on bench: %.2f\n\n", season.PointsLostToSuboptimalLineups))

	sb.WriteString("*By Week:*\n")
	for _, w := range season.Weekly {
		marker := "✅"
		if w.Result == analytics.OutcomeLoss {
			marker = "❌"
		}
		sb.WriteString(fmt.Sprintf("%s Wk %d: %.2f vs %.2f", marker, w.Week, w.PointsFor, w.PointsAgainst))
		if lost := w.PointsLost(); lost > 0 {
			sb.WriteString(fmt.Sprintf(" (-%.2f)", lost))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatWeekReport(manager models.Manager, w analytics.WeeklyAnalysis) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s: Week %d*\n\n", manager.Label(), w.Week))
	sb.WriteString(fmt.Sprintf("Result: %s (%.2f - %.2f)\n", w.Result, w.PointsFor, w.PointsAgainst))
	sb.WriteString(fmt.Sprintf("Actual: %.2f | Optimal: %.2f\n\n", w.ActualPoints, w.OptimalPoints))

	sb.WriteString("*Starting Lineup:*\n")
	for _, p := range w.ActualLineup {
		sb.WriteString(fmt.Sprintf("▫️ %s %s - %.2f\n", p.Position, p.Name, p.Points))
	}

	if len(w.Substitutions) == 0 {
		sb.WriteString("\n👏 Optimal lineup started.")
		return sb.String()
	}

	sb.WriteString("\n*Better Moves:*\n")
	for _, s := range w.Substitutions {
		sb.WriteString(fmt.Sprintf("🔁 %s %s ➜ %s %s (+%.2f)\n",
			s.Replaced.Position, s.Replaced.Name,
			s.With.Position, s.With.Name,
			s.PointGain))
	}

	return sb.String()
}
