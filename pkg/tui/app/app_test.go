package teaui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/timeline"
	"tableflip.dev/consistency/pkg/tracker"
)

// gridWidth fits exactly five date columns.
const gridWidth = nameWidth + 1 + 5*cellWidth

func newTestModel(t *testing.T) *Model {
	t.Helper()
	svc := &app.Service{
		Today: func() habit.DateKey { return "2025-02-08" },
		WindowOptions: []timeline.Option{
			timeline.WithSpan(15),
			timeline.WithChunk(5),
			timeline.WithThresholds(3, 3),
		},
	}
	if err := svc.Import(context.Background(), tracker.Sample()...); err != nil {
		t.Fatalf("import: %v", err)
	}
	m := New(svc)
	m = update(t, m, tea.WindowSizeMsg{Width: gridWidth, Height: 24})
	return m
}

func update(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(*Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm
}

func press(t *testing.T, m *Model, keys ...string) *Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

func typeText(t *testing.T, m *Model, s string) *Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return m
}

func TestStartsFocusedOnToday(t *testing.T) {
	m := newTestModel(t)
	if got := m.focusedDate(); got != "2025-02-08" {
		t.Fatalf("focused date = %s, want 2025-02-08", got)
	}
	if m.visibleColumns() != 5 {
		t.Fatalf("visible columns = %d, want 5", m.visibleColumns())
	}
	view := m.View()
	for _, want := range []string{"Wake up early", "Run", "Read books", "SAT", "February 2025"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestQuickCompleteTogglesBoolean(t *testing.T) {
	m := newTestModel(t)
	// first row is the yes/no habit, done on today
	m = press(t, m, "space")
	h, _ := m.svc.Habit("1")
	if h.Completed("2025-02-08").Completed {
		t.Fatalf("expected toggle to clear completion")
	}
	m = press(t, m, "enter")
	h, _ = m.svc.Habit("1")
	if !h.Completed("2025-02-08").Completed {
		t.Fatalf("expected enter to toggle back")
	}
}

func TestQuickCompleteSteps(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "j", "space")
	h, _ := m.svc.Habit("2")
	if got := h.Numeric("2025-02-08").Display(); got != "1.0" {
		t.Fatalf("run after increment = %s, want 1.0", got)
	}
	m = press(t, m, "-", "-")
	h, _ = m.svc.Habit("2")
	if got := h.Numeric("2025-02-08").Display(); got != "0.8" {
		t.Fatalf("run after two decrements = %s, want 0.8", got)
	}
	m = press(t, m, "x")
	h, _ = m.svc.Habit("2")
	if _, ok := h.Entry("2025-02-08"); ok {
		t.Fatalf("expected clear to unset the entry")
	}
}

func TestValueDialog(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "j", "l", "e")
	if m.mode != modeValue {
		t.Fatalf("mode = %v, want value dialog", m.mode)
	}
	if got := m.input.Value(); got != "1.2" {
		t.Fatalf("dialog prefilled with %q, want 1.2", got)
	}
	if !strings.Contains(m.View(), "Value (miles)") {
		t.Fatalf("dialog not rendered:\n%s", m.View())
	}

	m = press(t, m, "+", "+")
	if got := m.input.Value(); got != "1.4" {
		t.Fatalf("after stepping = %q, want 1.4", got)
	}

	m.input.SetValue("")
	m = typeText(t, m, "2.35")
	m = press(t, m, "enter")
	if m.mode != modeNormal {
		t.Fatalf("dialog still open")
	}
	h, _ := m.svc.Habit("2")
	if got := h.Numeric("2025-02-07").Display(); got != "2.3" {
		t.Fatalf("stored %s, want 2.3", got)
	}
}

func TestValueDialogRejectsBadInput(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "j", "e")
	m.input.SetValue("")
	m = typeText(t, m, "abc")
	m = press(t, m, "enter")
	if m.mode != modeValue {
		t.Fatalf("dialog closed on invalid input")
	}
	m = press(t, m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("esc did not close the dialog")
	}
	h, _ := m.svc.Habit("2")
	if got := h.Numeric("2025-02-08").Display(); got != "0.9" {
		t.Fatalf("entry changed to %s", got)
	}
}

func TestScrollTowardFutureKeepsFocus(t *testing.T) {
	m := newTestModel(t)
	before := len(m.dates)
	// today sits at index 15; the future edge grows once the first visible
	// index drops below 3
	for i := 0; i < 13; i++ {
		m = press(t, m, "h")
	}
	if got := len(m.dates); got != before+5 {
		t.Fatalf("dates = %d, want %d", got, before+5)
	}
	if got := m.focusedDate(); got != "2025-02-21" {
		t.Fatalf("focused date = %s, want 2025-02-21", got)
	}
	if m.col != 7 || m.offset != 7 {
		t.Fatalf("col/offset = %d/%d, want 7/7", m.col, m.offset)
	}

	m = press(t, m, "t")
	if got := m.focusedDate(); got != "2025-02-08" {
		t.Fatalf("after jump focused date = %s", got)
	}
}

func TestScrollTowardPastGrows(t *testing.T) {
	m := newTestModel(t)
	before := len(m.dates)
	for i := 0; i < 15; i++ {
		m = press(t, m, "l")
	}
	if got := len(m.dates); got <= before {
		t.Fatalf("expected past growth, dates = %d", got)
	}
	if got := m.focusedDate(); got != "2025-01-24" {
		t.Fatalf("focused date = %s, want 2025-01-24", got)
	}
	if m.dates[len(m.dates)-1] >= "2025-01-24" {
		t.Fatalf("window end %s not past the focus", m.dates[len(m.dates)-1])
	}
}

func TestAddHabitDialog(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a")
	m = typeText(t, m, "Water")
	m = press(t, m, "enter")
	if m.mode != modeAddType {
		t.Fatalf("mode = %v, want type chooser", m.mode)
	}
	// Yes/No, Count, Measurement
	m = press(t, m, "j", "enter")
	if m.mode != modeAddUnit {
		t.Fatalf("mode = %v, want unit input", m.mode)
	}
	m = typeText(t, m, "glasses")
	m = press(t, m, "enter")

	if m.mode != modeNormal {
		t.Fatalf("dialog still open")
	}
	h, err := m.svc.Habit("4")
	if err != nil {
		t.Fatalf("habit not added: %v", err)
	}
	if h.Name != "Water" || h.Type != habit.WholeNumber || h.Unit != "glasses" {
		t.Fatalf("added %+v", h)
	}
	if m.row != 3 {
		t.Fatalf("focus row = %d, want 3", m.row)
	}
}

func TestAddHabitRequiresName(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "enter")
	if m.mode != modeAddName {
		t.Fatalf("mode = %v, want name input", m.mode)
	}
	if !strings.Contains(m.View(), "name is required") {
		t.Fatalf("missing validation message:\n%s", m.View())
	}
}

func TestRenameHabit(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "r")
	m.input.SetValue("")
	m = typeText(t, m, "Early rise")
	m = press(t, m, "enter")
	h, _ := m.svc.Habit("1")
	if h.Name != "Early rise" {
		t.Fatalf("name = %q", h.Name)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "D", "n")
	if _, err := m.svc.Habit("1"); err != nil {
		t.Fatalf("habit deleted without confirmation")
	}
	m = press(t, m, "D", "y")
	if _, err := m.svc.Habit("1"); err == nil {
		t.Fatalf("habit not deleted")
	}
	if len(m.habits) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.habits))
	}
}

func TestHelpClosesOnAnyKey(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "?")
	if !strings.Contains(m.View(), "jump to today") {
		t.Fatalf("help not shown:\n%s", m.View())
	}
	m = press(t, m, "j")
	if m.mode != modeNormal || m.row != 0 {
		t.Fatalf("help key leaked into the grid: mode=%v row=%d", m.mode, m.row)
	}
}
