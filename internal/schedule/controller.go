package schedule

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/analogio/analog-cli/internal/metrics"
	"github.com/analogio/analog-cli/internal/models"
)

const defaultTimeout = 10 * time.Second

// scheduleResultMsg carries a fetched week back to the update loop
type scheduleResultMsg struct {
	seq  uint64
	days models.Schedule
	err  error
}

// Controller owns the in-memory schedule. It must only be used from the
// Bubble Tea update loop.
type Controller struct {
	fetcher  Fetcher
	saver    Saver
	renderer DayRowRenderer
	timeout  time.Duration
	log      *zap.Logger
	metrics  *metrics.Recorder

	days       models.Schedule
	visibility Visibility
	refreshing bool
	seq        uint64
	updatedAt  time.Time
}

// Option configures a Controller
type Option func(*Controller)

// WithSaver checkpoints the schedule after each successful refresh
func WithSaver(s Saver) Option {
	return func(c *Controller) {
		c.saver = s
	}
}

// WithTimeout bounds a single schedule fetch
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithMetrics records refresh outcomes in r
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Controller) {
		c.metrics = r
	}
}

// New creates a controller seeded with initial, which is copied
func New(initial models.Schedule, fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher,
		timeout: defaultTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.replace(initial)
	return c
}

// PullToRefresh shows the refreshing indicator and returns the fetch
// command. A pull while a refresh is running returns nil.
func (c *Controller) PullToRefresh() tea.Cmd {
	if c.refreshing {
		c.log.Debug("pull ignored, refresh in flight")
		return nil
	}
	c.refreshing = true
	c.seq++

	seq, fetcher, timeout := c.seq, c.fetcher, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		days, err := fetcher.FetchWeeklySchedule(ctx)
		return scheduleResultMsg{seq: seq, days: days, err: err}
	}
}

// Update applies a fetch result. A failed refresh keeps the current week and
// is only logged.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	res, ok := msg.(scheduleResultMsg)
	if !ok {
		return nil
	}
	if res.seq != c.seq {
		c.log.Debug("stale schedule result dropped", zap.Uint64("seq", res.seq))
		return nil
	}
	c.refreshing = false

	err := res.err
	if err == nil {
		err = res.days.Validate()
	}
	if err != nil {
		c.log.Warn("schedule refresh failed, keeping previous week", zap.Error(err))
		c.metrics.ScheduleRefresh(metrics.OutcomeError)
		return nil
	}

	c.replace(res.days)
	c.updatedAt = time.Now()
	if len(c.days) == 0 {
		c.metrics.ScheduleRefresh(metrics.OutcomeEmpty)
	} else {
		c.metrics.ScheduleRefresh(metrics.OutcomeSuccess)
	}
	c.log.Info("schedule refreshed", zap.Int("days", len(c.days)))

	if err := c.Checkpoint(); err != nil {
		c.log.Warn("schedule checkpoint failed", zap.Error(err))
	}
	return nil
}

// Restore replaces the schedule with a saved one. A refresh still in
// flight is abandoned.
func (c *Controller) Restore(saved models.Schedule) {
	if c.refreshing {
		c.seq++
		c.refreshing = false
	}
	c.replace(saved)
}

// Snapshot returns a copy of the current schedule
func (c *Controller) Snapshot() models.Schedule {
	return c.days.Clone()
}

// Checkpoint saves the current schedule. Without a saver it does nothing.
func (c *Controller) Checkpoint() error {
	if c.saver == nil {
		return nil
	}
	return c.saver.Save(c.Snapshot())
}

// Rows renders the current schedule
func (c *Controller) Rows() []Row {
	return c.renderer.RenderAll(c.days)
}

func (c *Controller) Visibility() Visibility { return c.visibility }

func (c *Controller) Refreshing() bool { return c.refreshing }

// UpdatedAt is the time of the last successful refresh, zero if none
func (c *Controller) UpdatedAt() time.Time { return c.updatedAt }

func (c *Controller) replace(s models.Schedule) {
	c.days = s.Clone()
	c.visibility = visibilityFor(c.days)
}
