package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/moniecodes/SAR-Logging/internal/model"
)

const (
	DefaultFilterName = "ship-logs"
	DefaultLogLevel   = "info"
)

var (
	ErrMissingDestination = errors.New("DESTINATION_ARN environment variable is required")
	ErrInvalidDestination = errors.New("DESTINATION_ARN is not a valid ARN")
	ErrMissingRole        = errors.New("ROLE_ARN environment variable is required for role-assumed destinations")
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	// Log group name constraints; empty means unset.
	IncludePrefix string
	ExcludePrefix string

	Destination   model.Destination
	FilterName    string
	FilterPattern string

	// Delivery role, only sent for role-assumed destinations.
	RoleARN string

	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		IncludePrefix: os.Getenv("PREFIX"),
		ExcludePrefix: os.Getenv("EXCLUDE_PREFIX"),
		FilterName:    getEnv("FILTER_NAME", DefaultFilterName),
		FilterPattern: os.Getenv("FILTER_PATTERN"),
		RoleARN:       os.Getenv("ROLE_ARN"),
		LogLevel:      getEnv("LOG_LEVEL", DefaultLogLevel),
	}

	destARN := os.Getenv("DESTINATION_ARN")
	if destARN == "" {
		return nil, ErrMissingDestination
	}
	dest, err := model.ParseDestination(destARN)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidDestination, destARN, err)
	}
	cfg.Destination = dest

	if dest.Mode == model.RoleAssumed && cfg.RoleARN == "" {
		return nil, ErrMissingRole
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
