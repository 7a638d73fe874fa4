package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/analogio/analog-cli/internal/schedule"
	"github.com/analogio/analog-cli/internal/widget"
)

type focusPanel int

const (
	focusSurfaces focusPanel = iota
	focusSchedule
)

// DefaultMaxSurfaces caps how many widgets can be added from the keyboard
const DefaultMaxSurfaces = 9

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	board    *Board
	widget   *widget.Controller
	schedule *schedule.Controller

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	log     *zap.Logger
	tz      *time.Location
	now     func() time.Time

	width  int
	height int
	focus  focusPanel

	cursor      int // selected surface
	scroll      int // first visible schedule row
	maxSurfaces int
	pullOnStart bool
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		m.log = l
	}
}

// WithTimezone sets the zone used for "today" and update times
func WithTimezone(tz *time.Location) Option {
	return func(m *Model) {
		if tz != nil {
			m.tz = tz
		}
	}
}

// WithMaxSurfaces caps the number of widgets
func WithMaxSurfaces(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.maxSurfaces = n
		}
	}
}

// WithPullOnStart refreshes the opening hours as soon as the TUI starts
func WithPullOnStart(pull bool) Option {
	return func(m *Model) {
		m.pullOnStart = pull
	}
}

// New creates a new TUI model. board must be the registry and host wc was
// created with.
func New(board *Board, wc *widget.Controller, sc *schedule.Controller, opts ...Option) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styleLoading))

	m := Model{
		board:       board,
		widget:      wc,
		schedule:    sc,
		keys:        defaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		log:         zap.NewNop(),
		tz:          time.Local,
		now:         time.Now,
		maxSurfaces: DefaultMaxSurfaces,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the spinner and the first system update.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.widget.TriggerRefresh(widget.SystemUpdate)}
	if m.pullOnStart {
		cmds = append(cmds, m.schedule.PullToRefresh())
	}
	return tea.Batch(cmds...)
}

// selectedSurface returns the surface under the cursor
func (m Model) selectedSurface() (widget.SurfaceID, bool) {
	ids := m.board.Surfaces()
	if m.cursor < 0 || m.cursor >= len(ids) {
		return 0, false
	}
	return ids[m.cursor], true
}
