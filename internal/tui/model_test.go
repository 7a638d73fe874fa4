package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/analogio/analog-cli/internal/models"
	"github.com/analogio/analog-cli/internal/schedule"
	"github.com/analogio/analog-cli/internal/testutil"
	"github.com/analogio/analog-cli/internal/widget"
)

type fakeStatus struct {
	open  bool
	err   error
	calls int
}

func (f *fakeStatus) FetchOpenStatus(context.Context) (bool, error) {
	f.calls++
	return f.open, f.err
}

type fakeWeekly struct {
	days  models.Schedule
	err   error
	calls int
}

func (f *fakeWeekly) FetchWeeklySchedule(context.Context) (models.Schedule, error) {
	f.calls++
	return f.days, f.err
}

type fakeSaver struct {
	saved []models.Schedule
}

func (f *fakeSaver) Save(s models.Schedule) error {
	f.saved = append(f.saved, s)
	return nil
}

type harness struct {
	status *fakeStatus
	weekly *fakeWeekly
	saver  *fakeSaver
	board  *Board
}

func newHarness(t *testing.T, surfaces int, initial models.Schedule, opts ...Option) (*harness, Model) {
	t.Helper()
	h := &harness{
		status: &fakeStatus{open: true},
		weekly: &fakeWeekly{days: testutil.SampleSchedule()},
		saver:  &fakeSaver{},
		board:  NewBoard(surfaces),
	}
	wc := widget.NewController(h.board, h.board, h.status, widget.WithDwell(0))
	sc := schedule.New(initial, h.weekly, schedule.WithSaver(h.saver))
	return h, New(h.board, wc, sc, opts...)
}

// run feeds cmd and everything it produces back into m until nothing is
// left. Spinner ticks and quit are dropped so the loop ends.
func run(m Model, cmd tea.Cmd) Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, tea.QuitMsg:
		default:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		}
	}
	return m
}

func press(m Model, keys string) Model {
	for _, r := range keys {
		var msg tea.KeyMsg
		switch r {
		case '\n':
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case '\t':
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		next, cmd := m.Update(msg)
		m = run(next.(Model), cmd)
	}
	return m
}

func stateOf(t *testing.T, b *Board, i int) widget.RefreshState {
	t.Helper()
	ids := b.Surfaces()
	if i >= len(ids) {
		t.Fatalf("surface %d missing, have %d", i, len(ids))
	}
	st, ok := b.State(ids[i])
	if !ok {
		t.Fatalf("surface %d never pushed", i)
	}
	return st.State
}

func TestNew(t *testing.T) {
	h, m := newHarness(t, 1, nil)

	testutil.AssertEqual(t, m.focus, focusSurfaces)
	testutil.AssertEqual(t, m.maxSurfaces, DefaultMaxSurfaces)
	testutil.AssertEqual(t, h.board.Len(), 1)
}

func TestModel_Init(t *testing.T) {
	h, m := newHarness(t, 2, nil)

	m = run(m, m.Init())

	testutil.AssertEqual(t, h.status.calls, 1)
	testutil.AssertEqual(t, stateOf(t, h.board, 0), widget.Open)
	testutil.AssertEqual(t, stateOf(t, h.board, 1), widget.Open)
	testutil.AssertEqual(t, h.weekly.calls, 0)
	testutil.AssertTrue(t, m.schedule.Visibility().Placeholder)
}

func TestModel_Init_PullOnStart(t *testing.T) {
	h, m := newHarness(t, 1, nil, WithPullOnStart(true))

	m = run(m, m.Init())

	testutil.AssertEqual(t, h.weekly.calls, 1)
	testutil.AssertTrue(t, m.schedule.Visibility().List)
	testutil.AssertEqual(t, len(h.saver.saved), 1)
}

func TestModel_TriggerMsg(t *testing.T) {
	h, m := newHarness(t, 1, nil)
	h.status.open = false

	next, cmd := m.Update(TriggerMsg{Reason: widget.SystemUpdate})
	testutil.AssertEqual(t, stateOf(t, h.board, 0), widget.Refreshing)

	run(next.(Model), cmd)
	testutil.AssertEqual(t, stateOf(t, h.board, 0), widget.Closed)
}

func TestModel_TapRetriesAfterError(t *testing.T) {
	h, m := newHarness(t, 1, nil)
	h.status.err = errors.New("offline")

	m = run(m, m.Init())
	testutil.AssertEqual(t, stateOf(t, h.board, 0), widget.Error)

	h.status.err = nil
	m = press(m, "\n")

	testutil.AssertEqual(t, h.status.calls, 2)
	testutil.AssertEqual(t, stateOf(t, h.board, 0), widget.Open)
}

func TestModel_TapWhileRefreshingIgnored(t *testing.T) {
	h, m := newHarness(t, 1, nil)

	m.Init() // leave the fetch unrun
	testutil.AssertEqual(t, stateOf(t, h.board, 0), widget.Refreshing)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertEqual(t, next.(Model).widget.Pending(), true)
	testutil.AssertEqual(t, h.status.calls, 0)
}

func TestModel_DigitTapsSurface(t *testing.T) {
	h, m := newHarness(t, 3, nil)
	m = run(m, m.Init())

	m = press(m, "2")
	testutil.AssertEqual(t, m.cursor, 1)
	testutil.AssertEqual(t, h.status.calls, 2)

	// no such surface
	m = press(m, "7")
	testutil.AssertEqual(t, m.cursor, 1)
	testutil.AssertEqual(t, h.status.calls, 2)
}

func TestModel_AddSurface(t *testing.T) {
	h, m := newHarness(t, 1, nil)
	m = run(m, m.Init())

	m = press(m, "+")

	testutil.AssertEqual(t, h.board.Len(), 2)
	testutil.AssertEqual(t, m.cursor, 1)
	testutil.AssertEqual(t, h.status.calls, 2)
	testutil.AssertEqual(t, stateOf(t, h.board, 1), widget.Open)
}

func TestModel_AddSurface_Max(t *testing.T) {
	h, m := newHarness(t, 2, nil, WithMaxSurfaces(2))

	m = press(m, "a")

	testutil.AssertEqual(t, h.board.Len(), 2)
	testutil.AssertEqual(t, h.status.calls, 0)
	testutil.AssertEqual(t, m.cursor, 0)
}

func TestModel_RemoveSurface(t *testing.T) {
	h, m := newHarness(t, 2, nil)
	m.cursor = 1

	m = press(m, "-")
	testutil.AssertEqual(t, h.board.Len(), 1)
	testutil.AssertEqual(t, m.cursor, 0)

	m = press(m, "x")
	testutil.AssertEqual(t, h.board.Len(), 0)
	testutil.AssertEqual(t, m.cursor, 0)

	// nothing left to remove or refresh
	m = press(m, "x\n")
	testutil.AssertEqual(t, h.board.Len(), 0)
	testutil.AssertTrue(t, m.widget.TriggerRefresh(widget.SystemUpdate) == nil)
}

func TestModel_MoveCursor(t *testing.T) {
	_, m := newHarness(t, 3, nil)

	m = press(m, "lll")
	testutil.AssertEqual(t, m.cursor, 2)
	m = press(m, "hhhh")
	testutil.AssertEqual(t, m.cursor, 0)
}

func TestModel_Pull(t *testing.T) {
	h, m := newHarness(t, 1, nil)

	m = press(m, "r")

	testutil.AssertEqual(t, h.weekly.calls, 1)
	testutil.AssertTrue(t, m.schedule.Snapshot().Equal(testutil.SampleSchedule()))
	testutil.AssertTrue(t, !m.schedule.Refreshing())
}

func TestModel_PullFailureKeepsHours(t *testing.T) {
	h, m := newHarness(t, 1, testutil.SampleSchedule())
	h.weekly.err = errors.New("offline")

	m = press(m, "r")

	testutil.AssertTrue(t, m.schedule.Snapshot().Equal(testutil.SampleSchedule()))
	testutil.AssertEqual(t, len(h.saver.saved), 0)
}

func TestModel_PullWhileRefreshingIgnored(t *testing.T) {
	h, m := newHarness(t, 1, nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	testutil.AssertTrue(t, cmd != nil)

	_, again := next.(Model).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	testutil.AssertTrue(t, again == nil)
	testutil.AssertEqual(t, h.weekly.calls, 0)
}

func TestModel_Focus(t *testing.T) {
	_, m := newHarness(t, 1, testutil.SampleSchedule())

	m = press(m, "\t")
	testutil.AssertEqual(t, m.focus, focusSchedule)

	m = press(m, "jjjjjjjj")
	testutil.AssertEqual(t, m.scroll, 2)
	m = press(m, "k")
	testutil.AssertEqual(t, m.scroll, 1)

	m = press(m, "\t")
	testutil.AssertEqual(t, m.focus, focusSurfaces)
}

func TestModel_QuitCheckpoints(t *testing.T) {
	h, m := newHarness(t, 1, testutil.SampleSchedule())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	testutil.AssertTrue(t, cmd != nil)
	_, isQuit := cmd().(tea.QuitMsg)
	testutil.AssertTrue(t, isQuit)
	testutil.AssertEqual(t, len(h.saver.saved), 1)
	testutil.AssertTrue(t, h.saver.saved[0].Equal(testutil.SampleSchedule()))
}

func TestModel_WindowSize(t *testing.T) {
	_, m := newHarness(t, 1, nil)

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	testutil.AssertTrue(t, cmd == nil)
	testutil.AssertEqual(t, next.(Model).width, 120)
	testutil.AssertEqual(t, next.(Model).help.Width, 120)
}
