package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/timeline"
	"tableflip.dev/consistency/pkg/tracker"
)

func TestBuildMarksTodayAndEntries(t *testing.T) {
	w := timeline.New("2025-02-08", timeline.WithSpan(2))
	g := Build(tracker.Sample(), w.Dates(), w.Today())

	wantCols := []Column{
		{Key: "2025-02-10", Weekday: "MON", Day: 10},
		{Key: "2025-02-09", Weekday: "SUN", Day: 9},
		{Key: "2025-02-08", Weekday: "SAT", Day: 8, Today: true},
		{Key: "2025-02-07", Weekday: "FRI", Day: 7},
		{Key: "2025-02-06", Weekday: "THU", Day: 6},
	}
	if diff := cmp.Diff(wantCols, g.Columns); diff != "" {
		t.Fatalf("columns (-want +got):\n%s", diff)
	}
	if g.TodayIndex() != 2 {
		t.Fatalf("expected today at 2, got %d", g.TodayIndex())
	}

	texts := func(r Row) []string {
		var out []string
		for _, c := range r.Cells {
			out = append(out, c.Text)
		}
		return out
	}
	states := func(r Row) []State {
		var out []State
		for _, c := range r.Cells {
			out = append(out, c.State)
		}
		return out
	}

	wake, _ := g.Row("1")
	if diff := cmp.Diff([]State{Unset, Unset, Done, Done, NotDone}, states(wake)); diff != "" {
		t.Fatalf("boolean states (-want +got):\n%s", diff)
	}
	run, _ := g.Row("2")
	if diff := cmp.Diff([]string{"×", "×", "0.9", "1.2", "1.3"}, texts(run)); diff != "" {
		t.Fatalf("decimal texts (-want +got):\n%s", diff)
	}
	read, _ := g.Row("3")
	if diff := cmp.Diff([]string{"×", "×", "50", "38", "65"}, texts(read)); diff != "" {
		t.Fatalf("whole texts (-want +got):\n%s", diff)
	}
	if read.Unit != "pages" {
		t.Fatalf("unit lost: %q", read.Unit)
	}
}

func TestSliceClamps(t *testing.T) {
	dates := []habit.DateKey{"a", "b", "c"}
	for _, tc := range []struct {
		from, count int
		want        []habit.DateKey
	}{
		{0, 2, []habit.DateKey{"a", "b"}},
		{1, 10, []habit.DateKey{"b", "c"}},
		{-4, 1, []habit.DateKey{"a"}},
		{5, 1, []habit.DateKey{}},
		{1, -1, []habit.DateKey{"b", "c"}},
	} {
		got := Slice(dates, tc.from, tc.count)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Slice(%d, %d) (-want +got):\n%s", tc.from, tc.count, diff)
		}
	}
}
