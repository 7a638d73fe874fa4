package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/analogio/analog-cli/internal/config"
	"github.com/analogio/analog-cli/internal/logging"
	"github.com/analogio/analog-cli/internal/metrics"
	"github.com/analogio/analog-cli/internal/schedule"
	"github.com/analogio/analog-cli/internal/store"
	"github.com/analogio/analog-cli/internal/tui"
	"github.com/analogio/analog-cli/internal/widget"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive terminal UI.

The top row holds the open/closed widgets. They refresh together on the
configured cron schedule (widget.refresh) and whenever a widget showing a
result is tapped. Below them is this week's opening hours.

Keys:
  enter, 1-9     tap the selected or numbered widget
  + / -          add or remove a widget
  r              refresh the opening hours
  tab            switch between widgets and hours
  ?              show all keys
  q              quit (the hours are saved for next time)`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so the log always goes to a file
	log, err := logging.New(cfg.Log.Level, cfg.LogFile())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	rec := metrics.New()

	// Pulls and taps must reach the service, never the cache
	client, err := createClient(cfg, log, rec, false)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	st, err := store.New(cfg.State.Dir)
	if err != nil {
		return err
	}
	saved, restored, err := st.Load()
	if err != nil {
		log.Warn("saved schedule ignored", zap.Error(err))
		restored = false
	}

	board := tui.NewBoard(cfg.Widget.Surfaces)
	wc := widget.NewController(board, board, client,
		widget.WithDwell(cfg.Widget.Dwell),
		widget.WithTimeout(requestBudget(cfg)),
		widget.WithLogger(log.Named("widget")),
		widget.WithMetrics(rec),
	)
	sc := schedule.New(nil, client,
		schedule.WithSaver(st),
		schedule.WithTimeout(requestBudget(cfg)),
		schedule.WithLogger(log.Named("schedule")),
		schedule.WithMetrics(rec),
	)
	if restored {
		sc.Restore(saved)
		log.Info("schedule restored", zap.Int("days", len(saved)))
	}

	model := tui.New(board, wc, sc,
		tui.WithLogger(log.Named("tui")),
		tui.WithTimezone(client.Timezone()),
		tui.WithMaxSurfaces(config.MaxSurfaces),
		tui.WithPullOnStart(!restored),
	)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if cfg.Widget.Refresh != "" {
		c := cron.New(cron.WithLocation(client.Timezone()))
		if _, err := tui.ScheduleRefresh(c, cfg.Widget.Refresh, p.Send); err != nil {
			return fmt.Errorf("widget.refresh: %w", err)
		}
		c.Start()
		defer c.Stop()
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		// Terminated by signal; q would have saved already
		if cerr := sc.Checkpoint(); cerr != nil {
			log.Warn("schedule checkpoint failed", zap.Error(cerr))
		}
		err = nil
	}

	if cfg.Metrics.Textfile != "" {
		if werr := rec.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			log.Warn("metrics textfile not written", zap.Error(werr))
		}
	}
	return err
}
