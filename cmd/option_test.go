package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/moniecodes/SAR-Logging/internal/reconciler"
)

// helper to temporarily set env var
func withEnv(key, val string, fn func()) {
	old, had := os.LookupEnv(key)
	_ = os.Setenv(key, val)
	defer func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}()
	fn()
}

// helper to temporarily unset env var
func withoutEnv(key string, fn func()) {
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	defer func() {
		if had {
			_ = os.Setenv(key, old)
		}
	}()
	fn()
}

func TestBindGlobalFlags(t *testing.T) {
	withEnv("AWS_REGION", "eu-west-1", func() {
		var o Options
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		o.BindGlobalFlags(fs)
		if err := fs.Parse([]string{"--profile", "ops", "--log-level", "debug"}); err != nil {
			t.Fatalf("parse: %v", err)
		}
		if o.Region != "eu-west-1" || o.Profile != "ops" || o.LogLevel != "debug" {
			t.Fatalf("unexpected options: %+v", o)
		}
	})
}

func TestResolveProfile(t *testing.T) {
	withEnv("AWS_PROFILE", "env-profile", func() {
		if got := ResolveProfile(""); got != "env-profile" {
			t.Fatalf("ResolveProfile(\"\")=%q, want env-profile", got)
		}
		if got := ResolveProfile("flag-profile"); got != "flag-profile" {
			t.Fatalf("ResolveProfile(flag)=%q, want flag-profile", got)
		}
	})
	withoutEnv("AWS_PROFILE", func() {
		if got := ResolveProfile(""); got != "" {
			t.Fatalf("ResolveProfile(\"\")=%q, want empty", got)
		}
	})
}

func TestAuthOptions(t *testing.T) {
	withoutEnv("AWS_PROFILE", func() {
		o := Options{Region: "us-east-2", Profile: "p"}
		got := o.AuthOptions()
		if got.Region != "us-east-2" || got.Profile != "p" {
			t.Fatalf("AuthOptions()=%+v", got)
		}
	})
}

func TestResolveLogLevel(t *testing.T) {
	if got := (&Options{}).ResolveLogLevel("warn"); got != "warn" {
		t.Fatalf("got %q, want warn", got)
	}
	if got := (&Options{LogLevel: "debug"}).ResolveLogLevel("warn"); got != "debug" {
		t.Fatalf("got %q, want debug", got)
	}
}

func TestReadEvent(t *testing.T) {
	raw := `{"id":"e1","detail-type":"AWS API Call via CloudTrail","source":"aws.logs","detail":{"requestParameters":{"logGroupName":"/aws/lambda/demo-api"}}}`

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "event.json")
		if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
			t.Fatal(err)
		}
		ev, err := ReadEvent(path, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.ID != "e1" || !strings.Contains(string(ev.Detail), "/aws/lambda/demo-api") {
			t.Fatalf("unexpected event: %+v", ev)
		}
	})
	t.Run("stdin", func(t *testing.T) {
		ev, err := ReadEvent("-", strings.NewReader(raw))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.Source != "aws.logs" {
			t.Fatalf("Source=%q, want aws.logs", ev.Source)
		}
	})
	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadEvent(filepath.Join(t.TempDir(), "nope.json"), nil); err == nil {
			t.Fatalf("expected error")
		}
	})
	t.Run("bad json", func(t *testing.T) {
		if _, err := ReadEvent("-", strings.NewReader("{")); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestWriteReport(t *testing.T) {
	r := &reconciler.Report{
		Pages:      2,
		Skipped:    1,
		Subscribed: 3,
		Unchanged:  4,
		Failures: []reconciler.Result{
			{LogGroup: "/aws/lambda/x", Action: reconciler.ActionUpdate, PreviousDestination: "arn:old", Err: errors.New("boom")},
		},
	}
	var buf bytes.Buffer
	if err := WriteReport(&buf, r); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got["processed"] != float64(8) || got["pages"] != float64(2) {
		t.Fatalf("unexpected counters: %v", got)
	}
	failures, _ := got["failures"].([]any)
	if len(failures) != 1 {
		t.Fatalf("failures=%v, want 1 entry", got["failures"])
	}
	f := failures[0].(map[string]any)
	if f["logGroup"] != "/aws/lambda/x" || f["action"] != "update" || f["error"] != "boom" || f["previousDestination"] != "arn:old" {
		t.Fatalf("unexpected failure entry: %v", f)
	}
}
