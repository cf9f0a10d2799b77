// Package config defines the run configuration for chessboard and the
// layered loader that fills it.
package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/pable/chessboard/internal/chesscom"
	"github.com/pable/chessboard/internal/model"
)

// Config is the root configuration. Fields are populated from defaults, an
// optional TOML file and then CHESSBOARD_* environment variables.
type Config struct {
	Roster      []string          `toml:"roster" split_words:"true" validate:"min=1,unique,dive,required"`
	Scoring     model.Scoring     `toml:"scoring" split_words:"true"`
	Leaderboard LeaderboardConfig `toml:"leaderboard" split_words:"true"`
	Output      OutputConfig      `toml:"output" split_words:"true"`
	API         APIConfig         `toml:"api" split_words:"true"`
	LogLevel    string            `toml:"log_level" split_words:"true" validate:"omitempty,oneof=debug info warn warning error"`
}

// LeaderboardConfig controls the leaderboard report.
type LeaderboardConfig struct {
	RollingWindow int  `toml:"rolling_window" split_words:"true" validate:"gte=1"`
	Legend        bool `toml:"legend" split_words:"true"`
}

// OutputConfig names the files a run produces. An empty Database disables
// the SQLite snapshot.
type OutputConfig struct {
	GameLog     string `toml:"game_log" split_words:"true" validate:"required"`
	Leaderboard string `toml:"leaderboard" split_words:"true" validate:"required,nefield=GameLog"`
	Database    string `toml:"database" split_words:"true"`
}

// APIConfig configures the chess.com client.
type APIConfig struct {
	BaseURL   string   `toml:"base_url" split_words:"true" validate:"required,url"`
	UserAgent string   `toml:"user_agent" split_words:"true" validate:"required"`
	Timeout   duration `toml:"timeout" split_words:"true"`
}

// duration wraps time.Duration so TOML and env values like "30s" decode.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "parse duration %q", string(text))
	}
	d.Duration = v
	return nil
}

// Decode implements envconfig.Decoder.
func (d *duration) Decode(value string) error {
	return d.UnmarshalText([]byte(value))
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Roster:  []string{"jcorr92", "xensprinkles", "euratoole", "teamoth"},
		Scoring: model.DefaultScoring,
		Leaderboard: LeaderboardConfig{
			RollingWindow: 30,
		},
		Output: OutputConfig{
			GameLog:     "game_list.csv",
			Leaderboard: "leaderboard.csv",
		},
		API: APIConfig{
			BaseURL:   chesscom.DefaultBaseURL,
			UserAgent: "chess-leaderboard-script/1.0 (jcb.corr92@gmail.com)",
			Timeout:   duration{30 * time.Second},
		},
		LogLevel: "info",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration and normalizes the roster.
func (c *Config) Validate() error {
	for i, p := range c.Roster {
		c.Roster[i] = strings.TrimSpace(p)
	}
	lowered := make([]string, len(c.Roster))
	for i, p := range c.Roster {
		lowered[i] = strings.ToLower(p)
	}
	probe := *c
	probe.Roster = lowered
	if err := validate.Struct(probe); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if c.API.Timeout.Duration < 0 {
		return errors.New("invalid configuration: api.timeout must not be negative")
	}
	return nil
}

// ClientOptions returns the chess.com client options for this configuration.
func (c *Config) ClientOptions() chesscom.Options {
	return chesscom.Options{
		BaseURL:   c.API.BaseURL,
		UserAgent: c.API.UserAgent,
		Timeout:   c.API.Timeout.Duration,
	}
}
