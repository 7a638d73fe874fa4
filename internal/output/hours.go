package output

import (
	"fmt"
	"io"

	"github.com/analogio/analog-cli/internal/schedule"
)

// RenderSchedule renders the week as one line per day
func RenderSchedule(w io.Writer, rows []schedule.Row, c *Colors) {
	if c == nil {
		c = NewColors(ColorNever)
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "No opening hours this week.")
		return
	}

	_, _ = fmt.Fprintln(w, c.Header("Opening hours"))
	for _, row := range rows {
		hours := row.Hours()
		if len(row.Ranges()) == 0 {
			hours = c.Muted("%s", hours)
		} else {
			hours = c.Hours("%s", hours)
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", c.Day("%-10s", row.Label), hours)
	}
}
