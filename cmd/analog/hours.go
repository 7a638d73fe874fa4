package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/analogio/analog-cli/internal/models"
	"github.com/analogio/analog-cli/internal/output"
	"github.com/analogio/analog-cli/internal/schedule"
)

var (
	flagOutput string
	flagDay    string
)

var hoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Show this week's opening hours",
	Long: `Show this week's opening hours, one line per open day.

Output formats for --output:
  text   - one line per day (default)
  json   - the layout used for the saved schedule
  yaml   - days with readable hour ranges
  toml   - same as yaml, as TOML tables
  ics    - iCalendar feed with weekly recurring events

Examples:
  analog hours                   # The whole week
  analog hours --day fri         # Only Friday (prefixes and typos are fine)
  analog hours -o ics > cal.ics  # Import into a calendar
  analog hours --no-cache        # Skip the response cache`,
	Args: cobra.NoArgs,
	RunE: runHours,
}

func init() {
	hoursCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format: text, json, yaml, toml, ics")
	hoursCmd.Flags().StringVar(&flagDay, "day", "", "Only show one weekday (name, prefix or 0-6 with 0 = Sunday)")
}

func runHours(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return err
	}
	day := -1
	if flagDay != "" {
		if day, err = schedule.ParseDay(flagDay); err != nil {
			return err
		}
	}

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
		raw, err := client.FetchWeeklyScheduleRaw(ctx)
		if err != nil {
			return err
		}
		return printPrettyJSON(raw)
	}

	week, err := client.FetchWeeklySchedule(ctx)
	if err != nil {
		return err
	}

	colors := output.NewColors(getColorMode())
	if day >= 0 {
		week = filterDay(week, day)
		if len(week) == 0 && format == output.FormatText {
			// A day without hours still gets its line
			output.RenderSchedule(os.Stdout, []schedule.Row{{DayIndex: day, Label: schedule.DayLabel(day)}}, colors)
			return nil
		}
	}

	now := time.Now().In(client.Timezone())
	return output.Export(os.Stdout, format, week, output.ExportOptions{
		Colors:    colors,
		WeekStart: now,
		Now:       now,
	})
}

// filterDay keeps only the days with the given index
func filterDay(week models.Schedule, day int) models.Schedule {
	out := models.Schedule{}
	for _, d := range week {
		if d.DayIndex == day {
			out = append(out, d)
		}
	}
	return out
}
