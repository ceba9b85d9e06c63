package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/tracker"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	a := &app.Service{Today: func() habit.DateKey { return "2025-02-08" }}
	if err := a.Import(context.Background(), tracker.Sample()...); err != nil {
		t.Fatalf("import: %v", err)
	}
	return NewService(a)
}

func TestServiceAddHabitDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.AddHabit(ctx, AddHabitOptions{Name: "Meditate"})
	if err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if dto.ID != "4" {
		t.Fatalf("expected id 4, got %s", dto.ID)
	}
	if dto.Type != string(habit.Boolean) {
		t.Fatalf("expected boolean type, got %s", dto.Type)
	}

	if _, err := svc.AddHabit(ctx, AddHabitOptions{Name: "x", Type: "colour"}); !errors.Is(err, habit.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestServiceEntryTools(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.ToggleEntry(ctx, "1", "")
	if err != nil {
		t.Fatalf("ToggleEntry failed: %v", err)
	}
	if dto.Entries[0].Date != "2025-02-08" || *dto.Entries[0].Completed {
		t.Fatalf("expected today toggled off, got %+v", dto.Entries[0])
	}

	dto, err = svc.SetEntry(ctx, "2", "yesterday", "2.57")
	if err != nil {
		t.Fatalf("SetEntry failed: %v", err)
	}
	if dto.Entries[1].Date != "2025-02-07" || dto.Entries[1].Value != "2.5" {
		t.Fatalf("expected 2.5 on 2025-02-07, got %+v", dto.Entries[1])
	}

	dto, err = svc.IncrementEntry(ctx, "2", "2025-02-07")
	if err != nil {
		t.Fatalf("IncrementEntry failed: %v", err)
	}
	if dto.Entries[1].Value != "2.6" {
		t.Fatalf("expected 2.6, got %s", dto.Entries[1].Value)
	}

	dto, err = svc.ClearEntry(ctx, "3", "2025-02-08")
	if err != nil {
		t.Fatalf("ClearEntry failed: %v", err)
	}
	if len(dto.Entries) != 2 {
		t.Fatalf("expected 2 entries after clear, got %d", len(dto.Entries))
	}

	if _, err := svc.SetEntry(ctx, "2", "", "-1"); !errors.Is(err, habit.ErrNegativeValue) {
		t.Fatalf("expected ErrNegativeValue, got %v", err)
	}
	if _, err := svc.DecrementEntry(ctx, "1", ""); !errors.Is(err, app.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if _, err := svc.ToggleEntry(ctx, "9", ""); !errors.Is(err, app.ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got %v", err)
	}
}

func TestServiceTimeline(t *testing.T) {
	svc := newTestService(t)
	grid, err := svc.Timeline(context.Background(), "2025-02-08", 3)
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	var texts []string
	for _, c := range grid.Rows[1].Cells {
		texts = append(texts, c.Text)
	}
	if diff := cmp.Diff([]string{"0.9", "1.2", "1.3"}, texts); diff != "" {
		t.Fatalf("run cells (-want +got):\n%s", diff)
	}
	if !grid.Columns[0].Today {
		t.Fatal("expected today marker on first column")
	}

	week, _ := svc.Timeline(context.Background(), "", 0)
	if len(week.Columns) != DefaultTimelineDays {
		t.Fatalf("expected %d default days, got %d", DefaultTimelineDays, len(week.Columns))
	}
}

func TestServiceRequiresApp(t *testing.T) {
	if _, err := (&Service{}).ListHabits(context.Background()); err == nil {
		t.Fatal("expected error without app service")
	}
}
