package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Sleeper     Sleeper
	TelegramBot TelegramBot
	Schedule    Schedule
	HTTP        HTTP
	Log         Log
}

type Sleeper struct {
	LeagueID          string        `envconfig:"LEAGUE_ID" required:"true"`
	BaseURL           string        `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	Timeout           time.Duration `envconfig:"SLEEPER_TIMEOUT" default:"15s"`
	RequestsPerMinute int           `envconfig:"SLEEPER_RPM" default:"600"`
	FetchConcurrency  int           `envconfig:"SLEEPER_CONCURRENCY" default:"4"`
	ScoringFormat     string        `envconfig:"SCORING_FORMAT" default:"ppr"`
}

// TelegramBot is optional; the bot and scheduled reports are off without a token.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

type Schedule struct {
	ReportCron string `envconfig:"REPORT_CRON" default:"30 7 * * 2"`
	Timezone   string `envconfig:"REPORT_TZ" default:"America/Chicago"`
}

type HTTP struct {
	Addr           string        `envconfig:"HTTP_ADDR" default:":8080"`
	AllowedOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	RequestTimeout time.Duration `envconfig:"HTTP_REQUEST_TIMEOUT" default:"2m"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sleeper.LeagueID) == "" {
		return fmt.Errorf("LEAGUE_ID must not be empty")
	}
	if c.Sleeper.RequestsPerMinute <= 0 {
		return fmt.Errorf("SLEEPER_RPM must be positive, got %d", c.Sleeper.RequestsPerMinute)
	}
	if c.Sleeper.FetchConcurrency <= 0 {
		return fmt.Errorf("SLEEPER_CONCURRENCY must be positive, got %d", c.Sleeper.FetchConcurrency)
	}
	switch strings.ToLower(c.Sleeper.ScoringFormat) {
	case "ppr", "half_ppr", "std":
	default:
		return fmt.Errorf("SCORING_FORMAT must be one of ppr, half_ppr, std, got %q", c.Sleeper.ScoringFormat)
	}
	if _, err := cron.ParseStandard(c.Schedule.ReportCron); err != nil {
		return fmt.Errorf("invalid REPORT_CRON %q: %w", c.Schedule.ReportCron, err)
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("invalid REPORT_TZ %q: %w", c.Schedule.Timezone, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format)
	}
	return nil
}
