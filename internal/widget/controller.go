package widget

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/analogio/analog-cli/internal/metrics"
)

const (
	// DefaultDwell is the minimum time Refreshing stays on screen
	DefaultDwell   = 500 * time.Millisecond
	defaultTimeout = 10 * time.Second
)

// statusResultMsg carries a fetch result back to the update loop.
// token is used for stale-result detection.
type statusResultMsg struct {
	token uint64
	open  bool
	err   error
}

// dwellElapsedMsg releases a successful result once the dwell is over
type dwellElapsedMsg struct {
	token uint64
	state RefreshState
}

// Controller runs refresh cycles. Overlapping cycles are resolved in favour
// of the most recently triggered one; older results and timers are dropped.
type Controller struct {
	registry SurfaceRegistry
	host     Host
	fetcher  StatusFetcher

	dwell   time.Duration
	timeout time.Duration
	now     func() time.Time
	log     *zap.Logger
	metrics *metrics.Recorder

	token   uint64
	started time.Time
	reason  Reason
	pending bool
}

// Option configures a Controller
type Option func(*Controller)

// WithDwell sets the minimum Refreshing time
func WithDwell(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.dwell = d
		}
	}
}

// WithTimeout bounds a single status fetch
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

// WithMetrics records finished cycles in r
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Controller) {
		c.metrics = r
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a controller that pushes to the surfaces of registry
// through host.
func NewController(registry SurfaceRegistry, host Host, fetcher StatusFetcher, opts ...Option) *Controller {
	c := &Controller{
		registry: registry,
		host:     host,
		fetcher:  fetcher,
		dwell:    DefaultDwell,
		timeout:  defaultTimeout,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pending reports whether a cycle is waiting for its fetch or dwell
func (c *Controller) Pending() bool {
	return c.pending
}

// TriggerRefresh starts a cycle. Refreshing is pushed to every surface
// before it returns; the returned command performs the fetch. With no
// surfaces nothing happens and the command is nil.
func (c *Controller) TriggerRefresh(reason Reason) tea.Cmd {
	surfaces := c.registry.Surfaces()
	if len(surfaces) == 0 {
		c.log.Debug("refresh skipped, no surfaces", zap.Stringer("reason", reason))
		return nil
	}

	if c.pending {
		c.metrics.WidgetRefresh(c.reason.String(), metrics.OutcomeStale)
	}

	c.token++
	c.started = c.now()
	c.reason = reason
	c.pending = true

	c.log.Debug("refresh started",
		zap.Stringer("reason", reason),
		zap.Uint64("token", c.token),
		zap.Int("surfaces", len(surfaces)),
	)
	c.pushAll(surfaces, Refreshing)

	return c.fetch(c.token)
}

func (c *Controller) fetch(token uint64) tea.Cmd {
	fetcher, timeout := c.fetcher, c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		open, err := fetcher.FetchOpenStatus(ctx)
		return statusResultMsg{token: token, open: open, err: err}
	}
}

// Update handles the controller's own messages and ignores everything else
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statusResultMsg:
		if msg.token != c.token {
			c.log.Debug("stale status result dropped", zap.Uint64("token", msg.token))
			return nil
		}
		if msg.err != nil {
			c.log.Warn("status fetch failed", zap.Uint64("token", msg.token), zap.Error(msg.err))
			c.finish(Error)
			return nil
		}

		state := Closed
		if msg.open {
			state = Open
		}
		remaining := c.dwell - c.now().Sub(c.started)
		if remaining <= 0 {
			c.finish(state)
			return nil
		}
		token := msg.token
		return tea.Tick(remaining, func(time.Time) tea.Msg {
			return dwellElapsedMsg{token: token, state: state}
		})

	case dwellElapsedMsg:
		if msg.token != c.token {
			c.log.Debug("stale dwell timer dropped", zap.Uint64("token", msg.token))
			return nil
		}
		c.finish(msg.state)
	}
	return nil
}

// finish pushes the final state to the surfaces that exist now, which may
// differ from the ones that saw Refreshing.
func (c *Controller) finish(state RefreshState) {
	if !c.pending {
		return
	}
	c.pending = false

	surfaces := c.registry.Surfaces()
	c.pushAll(surfaces, state)

	c.metrics.WidgetRefresh(c.reason.String(), state.String())
	c.log.Info("refresh finished",
		zap.Stringer("reason", c.reason),
		zap.Uint64("token", c.token),
		zap.Stringer("outcome", state),
		zap.Int("surfaces", len(surfaces)),
		zap.Duration("elapsed", c.now().Sub(c.started)),
	)
}

func (c *Controller) pushAll(surfaces []SurfaceID, state RefreshState) {
	for _, id := range surfaces {
		c.host.Push(id, Render(state))
	}
}
