package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"cosmossdk.io/math"
	"github.com/rs/zerolog/log"
)

// Application configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function.
var (
	// LogLevel controls the global log verbosity (debug, info, warn, error).
	LogLevel string

	// DefaultSlippage is the tolerance applied to join and exit estimates
	// when the caller does not supply one, as a decimal fraction (0.01 = 1%).
	DefaultSlippage math.LegacyDec

	// QueryTimeout bounds every on-chain read issued by the fetcher.
	QueryTimeout time.Duration
)

// LoadConfig loads configuration from environment variables and sets the global config vars.
// LOG_LEVEL is optional; everything else is required and must be set.
func LoadConfig() error {
	log.Info().Msg("Loading application configuration from environment variables...")

	var err error

	LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	DefaultSlippage, err = getEnvAsDec("DEFAULT_SLIPPAGE")
	if err != nil {
		return err
	}
	if DefaultSlippage.IsNegative() || DefaultSlippage.GTE(math.LegacyOneDec()) {
		return errors.New("DEFAULT_SLIPPAGE must be in [0, 1), got: " + DefaultSlippage.String())
	}

	timeoutSeconds, err := getEnvAsUint64("QUERY_TIMEOUT_SECONDS")
	if err != nil {
		return err
	}
	QueryTimeout = time.Duration(timeoutSeconds) * time.Second

	// Load endpoint configuration
	if err := loadEndpointConfig(); err != nil {
		return err
	}

	log.Debug().
		Str("LogLevel", LogLevel).
		Str("DefaultSlippage", DefaultSlippage.String()).
		Dur("QueryTimeout", QueryTimeout).
		Msg("Configuration loaded successfully.")

	return nil
}

// getEnv retrieves a string environment variable. Returns error if not set.
func getEnv(key string) (string, error) {
	if value, exists := os.LookupEnv(key); exists {
		return value, nil
	}
	return "", errors.New("environment variable " + key + " is required but not set")
}

// getEnvOrDefault retrieves a string environment variable, falling back to def if not set.
func getEnvOrDefault(key, def string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return def
}

// getEnvAsUint64 retrieves an environment variable as a uint64. Returns error if not set or invalid.
func getEnvAsUint64(key string) (uint64, error) {
	valueStr, err := getEnv(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return 0, errors.New("environment variable " + key + " must be a valid uint64, got: " + valueStr)
	}
	return value, nil
}

// getEnvAsDec retrieves an environment variable as a LegacyDec. Returns error if not set or invalid.
func getEnvAsDec(key string) (math.LegacyDec, error) {
	valueStr, err := getEnv(key)
	if err != nil {
		return math.LegacyDec{}, err
	}
	value, err := math.LegacyNewDecFromStr(valueStr)
	if err != nil {
		return math.LegacyDec{}, errors.New("environment variable " + key + " must be a valid decimal, got: " + valueStr)
	}
	return value, nil
}
