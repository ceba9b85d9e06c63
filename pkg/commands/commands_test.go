package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tableflip.dev/consistency/pkg/app"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("consistency %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestAddSetAndGet(t *testing.T) {
	dir := t.TempDir()

	run(t, "--path", dir, "add", "Run", "--type", "decimal", "--unit", "miles")
	out := run(t, "--path", dir, "set", "1", "1.25", "--on", "2025-02-08", "--json")

	var hv app.HabitView
	if err := json.Unmarshal([]byte(out), &hv); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if hv.Name != "Run" || len(hv.Entries) != 1 || hv.Entries[0].Display != "1.2" {
		t.Fatalf("unexpected habit %+v", hv)
	}

	out = run(t, "--path", dir, "get", "--list", "--json")
	var list []app.HabitView
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(list) != 1 || list[0].Unit != "miles" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestToggleAndClear(t *testing.T) {
	dir := t.TempDir()

	run(t, "--path", dir, "add", "Stretch")
	run(t, "--path", dir, "toggle", "1", "--on", "2025-02-08")

	out := run(t, "--path", dir, "get", "1", "--json")
	var hv app.HabitView
	if err := json.Unmarshal([]byte(out), &hv); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(hv.Entries) != 1 || hv.Entries[0].Completed == nil || !*hv.Entries[0].Completed {
		t.Fatalf("expected a completed entry, got %+v", hv.Entries)
	}

	run(t, "--path", dir, "clear", "1", "--on", "2025-02-08")
	out = run(t, "--path", dir, "get", "1", "--json")
	hv = app.HabitView{}
	if err := json.Unmarshal([]byte(out), &hv); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(hv.Entries) != 0 {
		t.Fatalf("expected no entries, got %+v", hv.Entries)
	}
}

func TestJSONErrors(t *testing.T) {
	var errOut bytes.Buffer
	old := color.Output
	color.Output = &errOut
	defer func() { color.Output = old }()

	dir := t.TempDir()
	run(t, "--path", dir, "toggle", "9", "--json")
	if !strings.Contains(errOut.String(), `"error"`) {
		t.Fatalf("expected a JSON error, got %q", errOut.String())
	}
}

func TestRenameAndRemove(t *testing.T) {
	dir := t.TempDir()
	run(t, "--path", dir, "demo")
	run(t, "--path", dir, "rename", "1", "Early", "rise")
	run(t, "--path", dir, "rm", "3")

	out := run(t, "--path", dir, "get", "--list", "--json")
	var list []app.HabitView
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(list) != 2 || list[0].Name != "Early rise" || list[1].Name != "Run" {
		t.Fatalf("unexpected list %+v", list)
	}
}

type syncCounter struct {
	bytes.Buffer
	syncs int
}

func (s *syncCounter) Sync() error {
	s.syncs++
	return nil
}

func TestRootSyncsLoggers(t *testing.T) {
	ws := &syncCounter{}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), ws, zapcore.DebugLevel)
	ro := &rootOptions{loggers: []*zap.Logger{zap.New(core)}}

	cmd := newRoot(ro)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if ws.syncs != 1 {
		t.Fatalf("logger synced %d times, want 1", ws.syncs)
	}
	if len(ro.loggers) != 0 {
		t.Fatalf("loggers not released after sync")
	}
}
