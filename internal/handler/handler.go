// Package handler subscribes newly created log groups.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/moniecodes/SAR-Logging/internal/filter"
	"github.com/moniecodes/SAR-Logging/internal/util"
)

// ErrMalformedEvent is returned when the event carries no log group name.
var ErrMalformedEvent = errors.New("malformed log group creation event")

// The CreateLogGroup call as recorded by CloudTrail, relative to the event detail.
var logGroupNamePath = util.MustCompileStringPath("requestParameters.logGroupName")

// Subscriber subscribes a single log group.
type Subscriber interface {
	EnsureSubscribed(ctx context.Context, logGroupName string) error
}

// Handler reacts to "log group created" notifications.
type Handler struct {
	names      filter.NameFilter
	subscriber Subscriber
	log        *slog.Logger
}

func New(names filter.NameFilter, subscriber Subscriber, log *slog.Logger) *Handler {
	return &Handler{names: names, subscriber: subscriber, log: log}
}

// LogGroupName extracts detail.requestParameters.logGroupName.
func LogGroupName(ev events.CloudWatchEvent) (string, error) {
	name, ok, err := logGroupNamePath.Find(ev.Detail)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: detail.%s is missing", ErrMalformedEvent, logGroupNamePath)
	}
	return name, nil
}

// Handle subscribes the created log group unless the name filter rejects it.
// Subscription failures are returned so the platform's retry policy applies.
func (h *Handler) Handle(ctx context.Context, ev events.CloudWatchEvent) error {
	h.log.Info("received event",
		"id", ev.ID, "source", ev.Source, "detail_type", ev.DetailType, "detail", ev.Detail)

	name, err := LogGroupName(ev)
	if err != nil {
		h.log.Error("cannot read log group name", "error", err)
		return err
	}
	log := h.log.With("log_group", name)

	if reason := h.names.Reason(name); reason != "" {
		log.Info("ignored the log group", "reason", reason,
			"prefix", h.names.Include, "exclude_prefix", h.names.Exclude)
		return nil
	}
	if err := h.subscriber.EnsureSubscribed(ctx, name); err != nil {
		log.Error("subscribing new log group failed", "error", err)
		return err
	}
	return nil
}
