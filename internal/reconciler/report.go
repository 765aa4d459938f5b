package reconciler

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Action is what a reconciliation pass decided for one log group.
type Action string

const (
	// ActionDescribe marks a failure to read the group's filters.
	ActionDescribe Action = "describe"
	// ActionSubscribe attaches a filter to a group that has none.
	ActionSubscribe Action = "subscribe"
	// ActionUpdate overwrites a filter pointing at another destination.
	ActionUpdate Action = "update"
	// ActionNone leaves a correctly subscribed group alone.
	ActionNone Action = "none"
)

// Result is the outcome for a single log group.
type Result struct {
	LogGroup            string
	Action              Action
	PreviousDestination string
	Err                 error
}

// Failed reports whether the action could not be completed.
func (r Result) Failed() bool { return r.Err != nil }

// Report summarises a reconciliation pass. Only failures are kept in full so
// memory stays bounded for accounts with many log groups.
type Report struct {
	DryRun     bool
	Pages      int
	Skipped    int
	Subscribed int
	Updated    int
	Unchanged  int
	Failures   []Result
}

func (r *Report) record(res Result) {
	if res.Failed() {
		r.Failures = append(r.Failures, res)
		return
	}
	switch res.Action {
	case ActionSubscribe:
		r.Subscribed++
	case ActionUpdate:
		r.Updated++
	case ActionNone:
		r.Unchanged++
	}
}

// Processed is the number of log groups that passed the name filter.
func (r *Report) Processed() int {
	return r.Subscribed + r.Updated + r.Unchanged + len(r.Failures)
}

// Err aggregates every per-group failure, or returns nil.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, f := range r.Failures {
		result = multierror.Append(result, fmt.Errorf("%s %s: %w", f.Action, f.LogGroup, f.Err))
	}
	return result.ErrorOrNil()
}
