package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	ics "github.com/arran4/golang-ical"
	"gopkg.in/yaml.v3"

	"github.com/analogio/analog-cli/internal/models"
	"github.com/analogio/analog-cli/internal/schedule"
)

// Format is an output format for `analog hours`
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatICS  Format = "ics"
)

// Formats lists the accepted formats
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatICS}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatText, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want one of text, json, yaml, toml, ics)", s)
}

// exportDay is the readable per-day layout used by the YAML and TOML exports
type exportDay struct {
	Day       string   `yaml:"day" toml:"day"`
	DayOfWeek int      `yaml:"dayOfWeek" toml:"dayOfWeek"`
	Openings  []int    `yaml:"openings" toml:"openings"`
	Closings  []int    `yaml:"closings" toml:"closings"`
	Hours     []string `yaml:"hours" toml:"hours"`
}

func exportDays(s models.Schedule) []exportDay {
	rows := schedule.DayRowRenderer{}.RenderAll(s)
	out := make([]exportDay, len(rows))
	for i, row := range rows {
		hours := make([]string, 0, len(row.Openings))
		for _, r := range row.Ranges() {
			hours = append(hours, r.String())
		}
		out[i] = exportDay{
			Day:       row.Label,
			DayOfWeek: row.DayIndex,
			Openings:  row.Openings,
			Closings:  row.Closings,
			Hours:     hours,
		}
	}
	return out
}

// ExportOptions configures Export
type ExportOptions struct {
	Colors *Colors
	// WeekStart anchors calendar events; the first event of each weekday is
	// placed on or after this date.
	WeekStart time.Time
	// Now stamps calendar events
	Now time.Time
}

// Export writes the schedule in the given format. JSON uses the same layout
// as the saved schedule, so an export can be restored.
func Export(w io.Writer, f Format, s models.Schedule, opts ExportOptions) error {
	switch f {
	case FormatText, "":
		RenderSchedule(w, schedule.DayRowRenderer{}.RenderAll(s), opts.Colors)
		return nil
	case FormatJSON:
		if s == nil {
			s = models.Schedule{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]exportDay{"days": exportDays(s)}); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		doc := struct {
			Days []exportDay `toml:"days"`
		}{Days: exportDays(s)}
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	case FormatICS:
		return writeCalendar(w, s, opts)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

var icsWeekdays = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

const icsLocalTime = "20060102T150405"

// writeCalendar emits one weekly recurring event per opening. Times are
// local wall-clock times with a TZID so recurrences follow daylight saving.
func writeCalendar(w io.Writer, s models.Schedule, opts ExportOptions) error {
	start := opts.WeekStart
	if start.IsZero() {
		start = time.Now()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	base := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//analog-cli//opening hours//EN")
	cal.SetXWRCalName("Café Analog opening hours")
	cal.SetXWRTimezone(start.Location().String())
	tzid := ics.WithTZID(start.Location().String())

	for _, day := range s {
		if day.DayIndex < models.Sunday || day.DayIndex > models.Saturday {
			continue
		}
		offset := (day.DayIndex - int(base.Weekday()) + 7) % 7
		date := base.AddDate(0, 0, offset)

		for i := range day.Pairs() {
			open := atHour(date, day.Openings[i])
			closing := atHour(date, day.Closings[i])

			event := cal.AddEvent(fmt.Sprintf("analog-%d-%d@cafeanalog.dk", day.DayIndex, i))
			event.SetDtStampTime(now)
			event.SetProperty(ics.ComponentPropertyDtStart, open.Format(icsLocalTime), tzid)
			event.SetProperty(ics.ComponentPropertyDtEnd, closing.Format(icsLocalTime), tzid)
			event.SetSummary("Café Analog open")
			event.AddRrule("FREQ=WEEKLY;BYDAY=" + icsWeekdays[day.DayIndex])
		}
	}

	return cal.SerializeTo(w)
}

// atHour returns the wall-clock hour counted from date's midnight; 24 is
// the next midnight and 26 is 02:00 the next day
func atHour(date time.Time, hour int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
}
