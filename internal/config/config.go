package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"staff-scheduling/internal/admission"
)

// Config is the service configuration, read from the environment after an
// optional .env file.
type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string
	PolicyFile  string
	Limits      admission.Limits
}

// Load reads configuration from the environment. Workload limits default to
// admission.DefaultLimits; overrides that fail to parse are errors rather
// than silent fallbacks.
func Load() (*Config, error) {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      getenv("APP_ENV", "development"),
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		PolicyFile:  getenv("POLICY_FILE", "policies.yaml"),
		Limits:      admission.DefaultLimits(),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if err := overrideFloat("MAX_WEEKLY_HOURS", &cfg.Limits.MaxWeeklyHours); err != nil {
		return nil, err
	}
	if err := overrideFloat("MAX_MONTHLY_HOURS", &cfg.Limits.MaxMonthlyHours); err != nil {
		return nil, err
	}
	if err := overrideInt("MAX_SHIFTS_PER_MONTH", &cfg.Limits.MaxShiftsPerMonth); err != nil {
		return nil, err
	}
	if err := overrideFloat("WARNING_RATIO", &cfg.Limits.WarningRatio); err != nil {
		return nil, err
	}
	if cfg.Limits.MaxWeeklyHours <= 0 {
		return nil, fmt.Errorf("MAX_WEEKLY_HOURS must be positive, got %v", cfg.Limits.MaxWeeklyHours)
	}
	if cfg.Limits.MaxMonthlyHours <= 0 {
		return nil, fmt.Errorf("MAX_MONTHLY_HOURS must be positive, got %v", cfg.Limits.MaxMonthlyHours)
	}
	if cfg.Limits.MaxShiftsPerMonth <= 0 {
		return nil, fmt.Errorf("MAX_SHIFTS_PER_MONTH must be positive, got %v", cfg.Limits.MaxShiftsPerMonth)
	}
	if cfg.Limits.WarningRatio <= 0 || cfg.Limits.WarningRatio >= 1 {
		return nil, fmt.Errorf("WARNING_RATIO must be between 0 and 1, got %v", cfg.Limits.WarningRatio)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func overrideFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = parsed
	return nil
}

func overrideInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = parsed
	return nil
}
