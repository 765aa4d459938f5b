// Package app wires configuration, AWS clients and the subscription engine
// together for every entry point.
package app

import (
	"context"
	"log/slog"

	"github.com/moniecodes/SAR-Logging/internal/client"
	"github.com/moniecodes/SAR-Logging/internal/config"
	"github.com/moniecodes/SAR-Logging/internal/filter"
	"github.com/moniecodes/SAR-Logging/internal/handler"
	"github.com/moniecodes/SAR-Logging/internal/reconciler"
	"github.com/moniecodes/SAR-Logging/internal/subscriber"
)

// LogsClient is everything the engine needs from CloudWatch Logs.
type LogsClient interface {
	reconciler.LogsClient
	subscriber.FilterWriter
}

// App holds the components built from one Config.
type App struct {
	Config     *config.Config
	Subscriber *subscriber.Subscriber
	Reconciler *reconciler.Reconciler
	Handler    *handler.Handler
}

// New builds the engine on top of the given clients.
func New(cfg *config.Config, logs LogsClient, permissions subscriber.PermissionGranter, log *slog.Logger, opts ...reconciler.Option) *App {
	names := filter.New(cfg.IncludePrefix, cfg.ExcludePrefix)
	sub := subscriber.New(logs, permissions, subscriber.Settings{
		Destination:   cfg.Destination,
		FilterName:    cfg.FilterName,
		FilterPattern: cfg.FilterPattern,
		RoleARN:       cfg.RoleARN,
	}, log)

	log.Debug("configuration loaded",
		"destination", cfg.Destination.ARN, "mode", cfg.Destination.Mode.String(),
		"prefix", cfg.IncludePrefix, "exclude_prefix", cfg.ExcludePrefix,
		"filter_name", cfg.FilterName, "filter_pattern", cfg.FilterPattern)

	return &App{
		Config:     cfg,
		Subscriber: sub,
		Reconciler: reconciler.New(logs, sub, names, cfg.Destination.ARN, log, opts...),
		Handler:    handler.New(names, sub, log),
	}
}

// NewFromAWS resolves AWS credentials and builds the engine on the real
// CloudWatch Logs and Lambda clients.
func NewFromAWS(ctx context.Context, cfg *config.Config, auth client.AuthOptions, log *slog.Logger, opts ...reconciler.Option) (*App, error) {
	awsCfg, err := client.LoadConfig(ctx, auth)
	if err != nil {
		return nil, err
	}
	return New(cfg, client.NewCloudWatchClient(awsCfg), client.NewLambdaClient(awsCfg), log, opts...), nil
}

// ExistingLogGroups runs one reconciliation pass. Per-group failures are only
// logged; a failure to list log groups is returned.
func (a *App) ExistingLogGroups(ctx context.Context) error {
	_, err := a.Reconciler.ReconcileAll(ctx)
	return err
}
