package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Analytics is what the chat commands need from the analytics service.
type Analytics interface {
	GetLeaderboard(ctx context.Context) (string, error)
	GetManagerReport(ctx context.Context, name string) (string, error)
	GetWeekReport(ctx context.Context, name string, week int) (string, error)
	Refresh(ctx context.Context) error
}

type Handler struct {
	analytics Analytics
}

func NewHandler(analytics Analytics) *Handler {
	return &Handler{analytics: analytics}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to the lineup analyst! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/leaderboard - Points left on the bench, per manager\n/manager <name> - Season breakdown for a manager\n/week <n> <name> - Lineup review for one week\n/refresh - Re-run the season analysis"
	case "leaderboard":
		h.handleLeaderboard(ctx, &msg)
	case "manager":
		h.handleManager(ctx, &msg, args)
	case "week":
		h.handleWeek(ctx, &msg, args)
	case "refresh":
		h.handleRefresh(ctx, &msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleLeaderboard(ctx context.Context, msg *tgbotapi.MessageConfig) {
	board, err := h.analytics.GetLeaderboard(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error building leaderboard: %v", err)
	} else {
		msg.Text = board
	}
}

func (h *Handler) handleManager(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a manager or team name. Usage: /manager <name>"
		return
	}
	report, err := h.analytics.GetManagerReport(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error getting manager report: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleWeek(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		msg.Text = "Please provide a week and a manager. Usage: /week <n> <name>"
		return
	}
	week, err := strconv.Atoi(fields[0])
	if err != nil || week < 1 {
		msg.Text = fmt.Sprintf("'%s' is not a valid week.", fields[0])
		return
	}

	report, err := h.analytics.GetWeekReport(ctx, strings.Join(fields[1:], " "), week)
	if err != nil {
		msg.Text = fmt.Sprintf("Error getting week report: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleRefresh(ctx context.Context, msg *tgbotapi.MessageConfig) {
	if err := h.analytics.Refresh(ctx); err != nil {
		msg.Text = fmt.Sprintf("Error refreshing analysis: %v", err)
		return
	}
	msg.Text = "✅ Season analysis refreshed."
}
