// Package reconciler subscribes every existing log group to the destination.
package reconciler

import (
	"context"
	"log/slog"

	"github.com/moniecodes/SAR-Logging/internal/filter"
	"github.com/moniecodes/SAR-Logging/internal/model"
)

// LogsClient is the subset of the logs client the reconciler reads from.
type LogsClient interface {
	ListLogGroups(ctx context.Context, prefix, token string) (model.LogGroupPage, error)
	SubscriptionFilters(ctx context.Context, logGroupName string) ([]model.SubscriptionFilter, error)
}

// Subscriber subscribes a single log group.
type Subscriber interface {
	EnsureSubscribed(ctx context.Context, logGroupName string) error
}

// Reconciler walks all log groups page by page and fixes missing or stale
// subscriptions.
type Reconciler struct {
	client      LogsClient
	subscriber  Subscriber
	names       filter.NameFilter
	destination string
	log         *slog.Logger
	dryRun      bool
}

// Option customises a Reconciler.
type Option func(*Reconciler)

// WithDryRun computes actions without subscribing anything.
func WithDryRun(dryRun bool) Option {
	return func(r *Reconciler) { r.dryRun = dryRun }
}

// New creates a Reconciler. destination is the ARN existing filters are
// compared against.
func New(client LogsClient, subscriber Subscriber, names filter.NameFilter, destination string, log *slog.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		client:      client,
		subscriber:  subscriber,
		names:       names,
		destination: destination,
		log:         log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReconcileAll runs one pass over every log group. Per-group failures are
// logged and collected in the report without stopping the pass. A failure to
// fetch a page ends the pass; the partial report is returned with the error.
func (r *Reconciler) ReconcileAll(ctx context.Context) (*Report, error) {
	report := &Report{DryRun: r.dryRun}
	var token string
	for {
		page, err := r.client.ListLogGroups(ctx, r.names.Include, token)
		if err != nil {
			r.log.Error("listing log groups failed", "page", report.Pages+1, "error", err)
			return report, err
		}
		report.Pages++

		for _, g := range page.LogGroups {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if !r.names.ShouldProcess(g.Name) {
				report.Skipped++
				continue
			}
			report.record(r.reconcileGroup(ctx, g.Name))
		}

		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	r.log.Info("reconciliation finished",
		"pages", report.Pages, "processed", report.Processed(), "skipped", report.Skipped,
		"subscribed", report.Subscribed, "updated", report.Updated,
		"unchanged", report.Unchanged, "failed", len(report.Failures), "dry_run", report.DryRun)
	return report, nil
}

// reconcileGroup inspects one group's filters. Only the first filter is
// considered.
func (r *Reconciler) reconcileGroup(ctx context.Context, name string) Result {
	filters, err := r.client.SubscriptionFilters(ctx, name)
	if err != nil {
		r.log.Error("describing subscription filters failed", "log_group", name, "error", err)
		return Result{LogGroup: name, Action: ActionDescribe, Err: err}
	}

	if len(filters) == 0 {
		r.log.Info("log group doesn't have a filter yet", "log_group", name)
		res := Result{LogGroup: name, Action: ActionSubscribe}
		if res.Err = r.subscribe(ctx, name); res.Err != nil {
			r.log.Warn("subscribing log group failed, continuing", "log_group", name, "error", res.Err)
		}
		return res
	}

	current := filters[0].DestinationARN
	if current == r.destination {
		r.log.Debug("log group already subscribed", "log_group", name, "destination", current)
		return Result{LogGroup: name, Action: ActionNone}
	}

	r.log.Info("log group has an old destination, updating",
		"log_group", name, "previous_destination", current, "destination", r.destination)
	res := Result{LogGroup: name, Action: ActionUpdate, PreviousDestination: current}
	if res.Err = r.subscribe(ctx, name); res.Err != nil {
		r.log.Error("updating log group failed, continuing",
			"log_group", name, "previous_destination", current, "error", res.Err)
	}
	return res
}

func (r *Reconciler) subscribe(ctx context.Context, name string) error {
	if r.dryRun {
		return nil
	}
	return r.subscriber.EnsureSubscribed(ctx, name)
}
