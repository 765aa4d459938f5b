package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/spf13/pflag"

	"github.com/moniecodes/SAR-Logging/internal/client"
)

// Options holds CLI options after parsing flags and env defaults.
type Options struct {
	Region    string
	Profile   string
	LogLevel  string
	DryRun    bool
	EventFile string
}

// BindGlobalFlags registers the flags shared by every subcommand. Defaults come
// from the environment.
func (o *Options) BindGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Region, "region", os.Getenv("AWS_REGION"), "AWS region (optional; falls back to AWS defaults)")
	fs.StringVar(&o.Profile, "profile", "", "AWS shared config profile (or set AWS_PROFILE)")
	fs.StringVar(&o.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
}

// AuthOptions returns the credentials selection for AWS clients.
func (o *Options) AuthOptions() client.AuthOptions {
	return client.AuthOptions{Region: o.Region, Profile: ResolveProfile(o.Profile)}
}

// ResolveProfile returns the profile from flag or AWS_PROFILE env, or empty.
func ResolveProfile(flagProfile string) string {
	if flagProfile != "" {
		return flagProfile
	}
	return os.Getenv("AWS_PROFILE")
}

// ResolveLogLevel prefers the flag over the configured level.
func (o *Options) ResolveLogLevel(configured string) string {
	if o.LogLevel != "" {
		return o.LogLevel
	}
	return configured
}

// ReadEvent decodes a CloudWatch (EventBridge) event from path, or from stdin
// when path is "-".
func ReadEvent(path string, stdin io.Reader) (events.CloudWatchEvent, error) {
	var ev events.CloudWatchEvent
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return ev, fmt.Errorf("open event file: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return ev, fmt.Errorf("decode event: %w", err)
	}
	return ev, nil
}
