// Package teaui hosts the Bubble Tea program for the habit grid.
package teaui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/store"
	"tableflip.dev/consistency/pkg/tui/components/panel"
	"tableflip.dev/consistency/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeValue
	modeAddName
	modeAddType
	modeAddUnit
	modeRename
	modeConfirm
	modeHelp
)

const (
	nameWidth = 18
	cellWidth = 6
	// rows used by the header and footer around the habit rows
	chromeHeight = 5
)

// Model is the habit grid: one row per habit, one column per date, newest
// date on the left. It reports its scroll offset to the service's timeline
// so the date range grows as the user nears either edge.
type Model struct {
	ctx   context.Context
	svc   *app.Service
	theme theme.Theme

	width  int
	height int

	habits []habit.Habit
	dates  []habit.DateKey

	row    int // focused habit
	col    int // focused date, index into dates
	offset int // first visible date
	top    int // first visible habit

	mode   mode
	input  textinput.Model
	dialog panel.Model

	target    string // habit id the open dialog acts on
	targetKey habit.DateKey
	addName   string
	typeIdx   int

	status    string
	statusErr bool

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds the grid over svc, focused on today. The service should
// already be open.
func New(svc *app.Service) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64

	th := theme.Default()
	m := &Model{
		ctx:    context.Background(),
		svc:    svc,
		theme:  th,
		input:  ti,
		dialog: panel.New(th.Modal),
	}
	m.refresh()
	m.col = svc.Window().InitialFocusIndex()
	m.offset = m.col
	return m
}

// Init starts watching the store for outside edits.
func (m *Model) Init() tea.Cmd {
	return startWatchCmd(m.ctx, m.svc)
}

// Update routes messages by mode.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.follow()
	case watchStartedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, app.ErrNoPersistence) {
				m.setError("watch: " + msg.err.Error())
			}
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	case tea.KeyPressMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch m.mode {
	case modeNormal:
		return m.handleNormalKey(msg)
	case modeValue:
		return m.handleValueKey(msg)
	case modeAddName, modeAddUnit, modeRename:
		return m.handleInputKey(msg)
	case modeAddType:
		m.handleTypeKey(msg)
	case modeConfirm:
		m.handleConfirmKey(msg)
	case modeHelp:
		m.closeDialog()
	}
	return nil
}

// refresh takes a fresh snapshot of the habits and dates.
func (m *Model) refresh() {
	m.habits = m.svc.Habits()
	m.dates = m.svc.Dates()
	if m.row >= len(m.habits) {
		m.row = len(m.habits) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *Model) focusedHabit() (habit.Habit, bool) {
	if m.row < 0 || m.row >= len(m.habits) {
		return habit.Habit{}, false
	}
	return m.habits[m.row], true
}

func (m *Model) focusedDate() habit.DateKey {
	if m.col < 0 || m.col >= len(m.dates) {
		return ""
	}
	return m.dates[m.col]
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) handleWatchEvent(ev store.Event) {
	if err := m.svc.Reload(m.ctx); err != nil {
		m.setError("reload: " + err.Error())
		return
	}
	focused, _ := m.focusedHabit()
	m.refresh()
	// keep focus on the same habit when rows shift
	for i, h := range m.habits {
		if h.ID == focused.ID {
			m.row = i
			break
		}
	}
	m.follow()
	if ev.Type == store.EventHabitsInvalidated {
		m.setStatus("Reloaded")
	}
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Run starts the program in the alternate screen. It returns when the user
// quits or ctx is cancelled.
func Run(ctx context.Context, svc *app.Service) error {
	m := New(svc)
	m.ctx = ctx
	defer m.stopWatch()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
