package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the settings for the beggar drivers
type Config struct {
	Addr             string        `env:"BEGGAR_ADDR"`
	DefaultPlayers   int           `env:"BEGGAR_DEFAULT_PLAYERS"`
	LedgerMode       string        `env:"BEGGAR_LEDGER_MODE"`
	SQLitePath       string        `env:"BEGGAR_SQLITE_PATH"`
	PostgresDSN      string        `env:"BEGGAR_POSTGRES_DSN"`
	AutoplayInterval time.Duration `env:"BEGGAR_AUTOPLAY_INTERVAL"`
	MaxTicks         int           `env:"BEGGAR_MAX_TICKS"`
	DevLogging       bool          `env:"BEGGAR_DEV_LOGGING"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Addr:             ":8000",
		DefaultPlayers:   2,
		LedgerMode:       "sqlite",
		SQLitePath:       "beggar.db",
		AutoplayInterval: 250 * time.Millisecond,
		MaxTicks:         100000,
	}
}

// Load reads any .env files given (or ./.env), then the environment, over the defaults
func Load(envFiles ...string) (Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := Default()
	err := envdecode.Decode(&cfg)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("BEGGAR_ADDR must not be empty")
	}
	if c.DefaultPlayers < 1 || c.DefaultPlayers > 52 {
		return fmt.Errorf("BEGGAR_DEFAULT_PLAYERS must be between 1 and 52, got %d", c.DefaultPlayers)
	}
	if c.AutoplayInterval <= 0 {
		return fmt.Errorf("BEGGAR_AUTOPLAY_INTERVAL must be positive, got %s", c.AutoplayInterval)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("BEGGAR_MAX_TICKS must not be negative, got %d", c.MaxTicks)
	}
	return nil
}
