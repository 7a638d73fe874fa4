package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/analogio/analog-cli/internal/api"
	"github.com/analogio/analog-cli/internal/models"
	"github.com/analogio/analog-cli/internal/output"
)

var (
	flagWatch    bool
	flagInterval time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether café Analog is open",
	Long: `Show whether café Analog is open right now. When it is closed, the
next opening from this week's hours is shown as well.

Examples:
  analog status              # Open or closed
  analog status --watch      # Refresh every 30 seconds (full-screen mode)
  analog status --raw-json   # Raw service response`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Watch mode: refresh periodically")
	statusCmd.Flags().DurationVar(&flagInterval, "interval", 30*time.Second, "Refresh interval in watch mode")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, err := createClient(cfg, log, nil, true)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	// Raw JSON output
	if flagRawJSON {
		raw, err := client.FetchOpenStatusRaw(ctx)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	colors := output.NewColors(getColorMode())

	// Watch mode
	if flagWatch {
		return runWatch(ctx, flagInterval, func() error {
			st := fetchStatus(ctx, client, log)
			output.RenderStatus(os.Stdout, st, colors)
			return nil
		})
	}

	st := fetchStatus(ctx, client, log)
	if st.Err != nil {
		return st.Err
	}
	output.RenderStatus(os.Stdout, st, colors)
	return nil
}

// fetchStatus asks for the open flag and the week concurrently. The week is
// only used for the next opening, so failing to get it is not an error.
func fetchStatus(ctx context.Context, client *api.Client, log *zap.Logger) output.Status {
	var (
		open bool
		week models.Schedule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		open, err = client.FetchOpenStatus(gctx)
		return err
	})
	g.Go(func() error {
		w, err := client.FetchWeeklySchedule(gctx)
		if err != nil {
			log.Debug("weekly schedule unavailable", zap.Error(err))
			return nil
		}
		week = w
		return nil
	})
	err := g.Wait()

	now := time.Now().In(client.Timezone())
	st := output.Status{Open: open, Err: err, Now: now}
	if err == nil && !open {
		if next, ok := models.NextOpening(week, now); ok {
			st.Next = next
		}
	}
	return st
}

// runWatch runs a continuous refresh loop until ctx is cancelled
func runWatch(ctx context.Context, interval time.Duration, fetchAndRender func() error) error {
	if interval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Hide cursor during watch mode
	output.HideCursor(os.Stdout)
	defer output.ShowCursor(os.Stdout)

	for {
		output.ClearScreen(os.Stdout)

		now := time.Now()
		fmt.Printf("Last update: %s | Next refresh in %s | Press Ctrl+C to exit\n\n",
			now.Format("15:04:05"), interval)

		if err := fetchAndRender(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		select {
		case <-ticker.C:
			continue
		case <-ctx.Done():
			output.ClearScreen(os.Stdout)
			fmt.Println("Watch mode ended.")
			return nil
		}
	}
}
