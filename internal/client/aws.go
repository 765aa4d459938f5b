package client

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// AuthOptions selects the region and credentials used for AWS calls. Both
// fields may be empty to use the default resolution chain.
type AuthOptions struct {
	Region  string
	Profile string
}

// NewConfigOptions maps AuthOptions onto config load options. A profile (flag
// or AWS_PROFILE) takes precedence over static credentials from the
// environment.
func NewConfigOptions(opts AuthOptions) []func(*config.LoadOptions) error {
	var cfgOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(opts.Region))
	}
	profile := opts.Profile
	if profile == "" {
		profile = os.Getenv("AWS_PROFILE")
	}
	if profile != "" {
		cfgOpts = append(cfgOpts, config.WithSharedConfigProfile(profile))
		return cfgOpts
	}
	key, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if key != "" && secret != "" {
		provider := credentials.NewStaticCredentialsProvider(key, secret, os.Getenv("AWS_SESSION_TOKEN"))
		cfgOpts = append(cfgOpts, config.WithCredentialsProvider(provider))
	}
	return cfgOpts
}

// LoadConfig resolves the shared AWS configuration.
func LoadConfig(ctx context.Context, opts AuthOptions) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, NewConfigOptions(opts)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading aws config: %w", err)
	}
	return cfg, nil
}
