package config

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment overrides, e.g. CHESSBOARD_ROSTER.
const EnvPrefix = "CHESSBOARD"

// Load builds a Config by layering, low to high precedence:
//  1. Defaults()
//  2. the TOML file at path, if path is non-empty
//  3. a .env file in the working directory, if present
//  4. CHESSBOARD_* environment variables
//
// The returned Config has NOT been validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		// Decoding over the defaults would append to the roster slice.
		cfg.Roster = nil
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if !md.IsDefined("roster") {
			cfg.Roster = Defaults().Roster
		}
	}

	// Missing .env is fine.
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}
	return &cfg, nil
}
