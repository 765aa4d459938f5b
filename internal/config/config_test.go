package config

import (
	"errors"
	"os"
	"testing"

	"github.com/moniecodes/SAR-Logging/internal/model"
)

const (
	lambdaARN = "arn:aws:lambda:us-east-1:123456789012:function:ship-logs"
	streamARN = "arn:aws:kinesis:us-east-1:123456789012:stream/logs"
	roleARN   = "arn:aws:iam::123456789012:role/cwl-to-kinesis"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, exists := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, exists := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, old)
		}
	})
}

func clearAllEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"PREFIX", "EXCLUDE_PREFIX", "DESTINATION_ARN", "FILTER_NAME",
		"FILTER_PATTERN", "ROLE_ARN", "LOG_LEVEL",
	} {
		unsetEnv(t, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearAllEnvVars(t)
	setEnv(t, "DESTINATION_ARN", lambdaARN)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FilterName != DefaultFilterName {
		t.Errorf("FilterName = %q, want %q", cfg.FilterName, DefaultFilterName)
	}
	if cfg.FilterPattern != "" {
		t.Errorf("FilterPattern = %q, want empty", cfg.FilterPattern)
	}
	if cfg.IncludePrefix != "" || cfg.ExcludePrefix != "" {
		t.Errorf("prefixes = (%q, %q), want unset", cfg.IncludePrefix, cfg.ExcludePrefix)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Destination.Mode != model.DirectInvoke {
		t.Errorf("Destination.Mode = %v, want direct-invoke", cfg.Destination.Mode)
	}
}

func TestLoad_AllValues(t *testing.T) {
	clearAllEnvVars(t)
	setEnv(t, "PREFIX", "/aws/lambda/")
	setEnv(t, "EXCLUDE_PREFIX", "/aws/lambda/test-")
	setEnv(t, "DESTINATION_ARN", streamARN)
	setEnv(t, "FILTER_NAME", "to-kinesis")
	setEnv(t, "FILTER_PATTERN", "[level=ERROR]")
	setEnv(t, "ROLE_ARN", roleARN)
	setEnv(t, "LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		IncludePrefix: "/aws/lambda/",
		ExcludePrefix: "/aws/lambda/test-",
		Destination:   model.Destination{ARN: streamARN, Mode: model.RoleAssumed},
		FilterName:    "to-kinesis",
		FilterPattern: "[level=ERROR]",
		RoleARN:       roleARN,
		LogLevel:      "debug",
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"missing destination", map[string]string{}, ErrMissingDestination},
		{"invalid destination", map[string]string{"DESTINATION_ARN": "ship-logs"}, ErrInvalidDestination},
		{"stream without role", map[string]string{"DESTINATION_ARN": streamARN}, ErrMissingRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAllEnvVars(t)
			for k, v := range tt.env {
				setEnv(t, k, v)
			}
			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
