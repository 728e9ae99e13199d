package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

type fakeAnalytics struct {
	err       error
	gotName   string
	gotWeek   int
	refreshed bool
}

func (f *fakeAnalytics) GetLeaderboard(ctx context.Context) (string, error) {
	return "board", f.err
}

func (f *fakeAnalytics) GetManagerReport(ctx context.Context, name string) (string, error) {
	f.gotName = name
	return "manager " + name, f.err
}

func (f *fakeAnalytics) GetWeekReport(ctx context.Context, name string, week int) (string, error) {
	f.gotName = name
	f.gotWeek = week
	return "week", f.err
}

func (f *fakeAnalytics) Refresh(ctx context.Context) error {
	f.refreshed = true
	return f.err
}

func command(text string, length int) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 7},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func TestHandleCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("leaderboard", func(t *testing.T) {
		msg := NewHandler(&fakeAnalytics{}).HandleCommand(ctx, command("/leaderboard", 12))
		assert.Equal(t, int64(7), msg.ChatID)
		assert.Equal(t, "Markdown", msg.ParseMode)
		assert.Equal(t, "board", msg.Text)
	})

	t.Run("manager passes the full name", func(t *testing.T) {
		fake := &fakeAnalytics{}
		msg := NewHandler(fake).HandleCommand(ctx, command("/manager Bijan Mustard", 8))
		assert.Equal(t, "Bijan Mustard", fake.gotName)
		assert.Equal(t, "manager Bijan Mustard", msg.Text)
	})

	t.Run("manager without a name", func(t *testing.T) {
		msg := NewHandler(&fakeAnalytics{}).HandleCommand(ctx, command("/manager", 8))
		assert.Contains(t, msg.Text, "Usage: /manager")
	})

	t.Run("week parses number and name", func(t *testing.T) {
		fake := &fakeAnalytics{}
		NewHandler(fake).HandleCommand(ctx, command("/week 3 Tush Push", 5))
		assert.Equal(t, 3, fake.gotWeek)
		assert.Equal(t, "Tush Push", fake.gotName)
	})

	t.Run("week rejects a bad number", func(t *testing.T) {
		fake := &fakeAnalytics{}
		msg := NewHandler(fake).HandleCommand(ctx, command("/week three sam", 5))
		assert.Contains(t, msg.Text, "not a valid week")
		assert.Zero(t, fake.gotWeek)
	})

	t.Run("refresh", func(t *testing.T) {
		fake := &fakeAnalytics{}
		msg := NewHandler(fake).HandleCommand(ctx, command("/refresh", 8))
		assert.True(t, fake.refreshed)
		assert.Contains(t, msg.Text, "refreshed")
	})

	t.Run("service error is reported", func(t *testing.T) {
		msg := NewHandler(&fakeAnalytics{err: errors.New("sleeper down")}).HandleCommand(ctx, command("/leaderboard", 12))
		assert.Equal(t, "Error building leaderboard: sleeper down", msg.Text)
	})

	t.Run("unknown", func(t *testing.T) {
		msg := NewHandler(&fakeAnalytics{}).HandleCommand(ctx, command("/scores", 7))
		assert.Contains(t, msg.Text, "Unknown command")
	})
}
