package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moniecodes/SAR-Logging/cmd"
	"github.com/moniecodes/SAR-Logging/internal/app"
	"github.com/moniecodes/SAR-Logging/internal/config"
	"github.com/moniecodes/SAR-Logging/internal/logging"
	"github.com/moniecodes/SAR-Logging/internal/reconciler"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &cmd.Options{}
	root := &cobra.Command{
		Use:   "auto-subscribe",
		Short: "Subscribe CloudWatch log groups to a single destination",
		Long: `auto-subscribe runs the log group subscription engine outside Lambda.

Configuration is read from the environment: DESTINATION_ARN (required),
PREFIX, EXCLUDE_PREFIX, FILTER_NAME, FILTER_PATTERN, ROLE_ARN.
AWS credentials come from --profile, AWS_PROFILE or the default chain.`,
		SilenceUsage: true,
	}
	opts.BindGlobalFlags(root.PersistentFlags())

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Subscribe or repair every existing log group",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runReconcile(c.Context(), opts)
		},
	}
	reconcileCmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report what would change without subscribing anything")

	handleCmd := &cobra.Command{
		Use:   "handle-event",
		Short: "Process a single log group creation event",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runHandleEvent(c.Context(), opts)
		},
	}
	handleCmd.Flags().StringVar(&opts.EventFile, "event", "", "Path to the event JSON, or - for stdin")
	_ = handleCmd.MarkFlagRequired("event")

	root.AddCommand(reconcileCmd, handleCmd)
	return root
}

func build(ctx context.Context, opts *cmd.Options) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(opts.ResolveLogLevel(cfg.LogLevel), os.Stderr)
	return app.NewFromAWS(ctx, cfg, opts.AuthOptions(), log, reconciler.WithDryRun(opts.DryRun))
}

func runReconcile(ctx context.Context, opts *cmd.Options) error {
	a, err := build(ctx, opts)
	if err != nil {
		return err
	}
	report, err := a.Reconciler.ReconcileAll(ctx)
	if report != nil {
		if werr := cmd.WriteReport(os.Stdout, report); werr != nil {
			return fmt.Errorf("write report: %w", werr)
		}
	}
	if err != nil {
		return err
	}
	return report.Err()
}

func runHandleEvent(ctx context.Context, opts *cmd.Options) error {
	ev, err := cmd.ReadEvent(opts.EventFile, os.Stdin)
	if err != nil {
		return err
	}
	a, err := build(ctx, opts)
	if err != nil {
		return err
	}
	return a.Handler.Handle(ctx, ev)
}
