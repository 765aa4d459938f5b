package cmd

import (
	"encoding/json"
	"io"

	"github.com/moniecodes/SAR-Logging/internal/reconciler"
)

type failureView struct {
	LogGroup            string `json:"logGroup"`
	Action              string `json:"action"`
	PreviousDestination string `json:"previousDestination,omitempty"`
	Error               string `json:"error"`
}

type reportView struct {
	DryRun     bool          `json:"dryRun"`
	Pages      int           `json:"pages"`
	Processed  int           `json:"processed"`
	Skipped    int           `json:"skipped"`
	Subscribed int           `json:"subscribed"`
	Updated    int           `json:"updated"`
	Unchanged  int           `json:"unchanged"`
	Failures   []failureView `json:"failures"`
}

// WriteReport prints a reconciliation report as indented JSON.
func WriteReport(w io.Writer, r *reconciler.Report) error {
	v := reportView{
		DryRun:     r.DryRun,
		Pages:      r.Pages,
		Processed:  r.Processed(),
		Skipped:    r.Skipped,
		Subscribed: r.Subscribed,
		Updated:    r.Updated,
		Unchanged:  r.Unchanged,
		Failures:   make([]failureView, 0, len(r.Failures)),
	}
	for _, f := range r.Failures {
		v.Failures = append(v.Failures, failureView{
			LogGroup:            f.LogGroup,
			Action:              string(f.Action),
			PreviousDestination: f.PreviousDestination,
			Error:               f.Err.Error(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
