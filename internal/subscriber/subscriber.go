// Package subscriber attaches log groups to the configured destination.
package subscriber

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/moniecodes/SAR-Logging/internal/client"
	"github.com/moniecodes/SAR-Logging/internal/model"
)

const (
	// InvokeAction is the permission CloudWatch Logs needs on a function.
	InvokeAction = "lambda:InvokeFunction"
	// LogsPrincipal is the service principal granted the invoke permission.
	LogsPrincipal = "logs.amazonaws.com"
)

// FilterWriter creates or replaces subscription filters.
type FilterWriter interface {
	PutSubscriptionFilter(ctx context.Context, f model.SubscriptionFilter) error
}

// PermissionGranter adds invoke permissions to destination functions.
type PermissionGranter interface {
	GrantInvoke(ctx context.Context, p model.Permission) error
}

// Settings describes the subscription every managed log group should carry.
type Settings struct {
	Destination   model.Destination
	FilterName    string
	FilterPattern string
	RoleARN       string
}

// Subscriber ensures a log group is subscribed to the destination.
type Subscriber struct {
	filters     FilterWriter
	permissions PermissionGranter
	settings    Settings
	log         *slog.Logger
	statementID func() string
}

// Option customises a Subscriber.
type Option func(*Subscriber)

// WithStatementIDFunc replaces the statement identifier generator.
func WithStatementIDFunc(fn func() string) Option {
	return func(s *Subscriber) { s.statementID = fn }
}

func New(filters FilterWriter, permissions PermissionGranter, settings Settings, log *slog.Logger, opts ...Option) *Subscriber {
	s := &Subscriber{
		filters:     filters,
		permissions: permissions,
		settings:    settings,
		log:         log,
		statementID: NewStatementID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStatementID returns a fresh policy statement id such as "invoke-1a2b3c4d".
func NewStatementID() string {
	return "invoke-" + uuid.NewString()[:8]
}

// EnsureSubscribed creates or overwrites the subscription filter on
// logGroupName. When a function destination rejects the subscription for lack
// of invoke permission, the permission is granted and the subscription is
// retried once. Any other failure, including a second failure, is returned.
func (s *Subscriber) EnsureSubscribed(ctx context.Context, logGroupName string) error {
	err := s.put(ctx, logGroupName)
	if err == nil {
		return nil
	}
	if !s.settings.Destination.DirectInvoke() || !errors.Is(err, client.ErrPermissionMissing) {
		return err
	}

	perm := model.Permission{
		FunctionARN: s.settings.Destination.ARN,
		Action:      InvokeAction,
		Principal:   LogsPrincipal,
		StatementID: s.statementID(),
	}
	s.log.Info("adding invoke permission for CloudWatch Logs",
		"destination", perm.FunctionARN, "statement_id", perm.StatementID, "log_group", logGroupName)
	if gerr := s.permissions.GrantInvoke(ctx, perm); gerr != nil {
		return gerr
	}
	return s.put(ctx, logGroupName)
}

func (s *Subscriber) put(ctx context.Context, logGroupName string) error {
	f := s.filter(logGroupName)
	s.log.Debug("putting subscription filter",
		"log_group", f.LogGroupName, "filter_name", f.FilterName,
		"filter_pattern", f.FilterPattern, "destination", f.DestinationARN, "role", f.RoleARN)
	if err := s.filters.PutSubscriptionFilter(ctx, f); err != nil {
		s.log.Warn("subscription failed", "log_group", logGroupName, "error", err)
		return err
	}
	s.log.Info("subscribed log group", "log_group", logGroupName, "destination", f.DestinationARN)
	return nil
}

func (s *Subscriber) filter(logGroupName string) model.SubscriptionFilter {
	f := model.SubscriptionFilter{
		LogGroupName:   logGroupName,
		FilterName:     s.settings.FilterName,
		FilterPattern:  s.settings.FilterPattern,
		DestinationARN: s.settings.Destination.ARN,
	}
	if !s.settings.Destination.DirectInvoke() {
		f.RoleARN = s.settings.RoleARN
	}
	return f
}
