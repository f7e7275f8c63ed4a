package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	DiscordToken          string
	ConnString            string
	Season                int
	MaxPlayers            int
	Port                  int // 0 disables the status api
	EliminateMissingPicks bool
	HidePicksUntilKickoff bool
	SchedulerTick         time.Duration
	LogLevel              zerolog.Level
}

// Load reads the configuration from the environment, loading a .env file first if there is one.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		ConnString:   os.Getenv("POSTGRES_CONN_STR"),
	}
	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN environment variable is not set")
	}
	if cfg.ConnString == "" {
		return nil, errors.New("POSTGRES_CONN_STR environment variable is not set")
	}

	if cfg.Season, err = intVar("SEASON_YEAR", 2025); err != nil {
		return nil, err
	}
	if cfg.MaxPlayers, err = intVar("MAX_PLAYERS", 12); err != nil {
		return nil, err
	}
	if cfg.Port, err = intVar("PORT", 3000); err != nil {
		return nil, err
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 0 and 65535, got %d", cfg.Port)
	}
	if cfg.EliminateMissingPicks, err = boolVar("ELIMINATE_ON_NO_PICK", true); err != nil {
		return nil, err
	}
	if cfg.HidePicksUntilKickoff, err = boolVar("HIDE_PICKS_UNTIL_KICKOFF", false); err != nil {
		return nil, err
	}

	cfg.SchedulerTick = 5 * time.Minute
	if v := os.Getenv("SCHEDULER_TICK"); v != "" {
		if cfg.SchedulerTick, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid SCHEDULER_TICK: %w", err)
		}
		if cfg.SchedulerTick <= 0 {
			return nil, fmt.Errorf("SCHEDULER_TICK must be positive, got %s", v)
		}
	}

	cfg.LogLevel = zerolog.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if cfg.LogLevel, err = zerolog.ParseLevel(v); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

func intVar(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func boolVar(name string, def bool) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", name, err)
	}
	return b, nil
}
