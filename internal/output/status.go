package output

import (
	"fmt"
	"io"
	"time"

	"github.com/analogio/analog-cli/internal/schedule"
)

// Status is what `analog status` reports
type Status struct {
	Open bool
	Err  error

	// Next is the next scheduled opening; zero when unknown
	Next time.Time
	Now  time.Time
}

// RenderStatus writes the open/closed line and, when known, the next opening
func RenderStatus(w io.Writer, s Status, c *Colors) {
	if c == nil {
		c = NewColors(ColorNever)
	}

	if s.Err != nil {
		_, _ = fmt.Fprintln(w, c.Error("Error: %v", s.Err))
		return
	}

	if s.Open {
		_, _ = fmt.Fprintln(w, c.Open("Analog is OPEN"))
	} else {
		_, _ = fmt.Fprintln(w, c.Closed("Analog is CLOSED"))
	}

	if !s.Open && !s.Next.IsZero() {
		_, _ = fmt.Fprintln(w, c.Muted("Next opening: %s %s (in %s)",
			schedule.DayLabel(int(s.Next.Weekday())),
			s.Next.Format("15:04"),
			FormatUntil(s.Next.Sub(s.Now)),
		))
	}
}

// FormatUntil renders a positive duration as "3h05m" or "45m"
func FormatUntil(d time.Duration) string {
	if d < time.Minute {
		return "<1m"
	}
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h >= 24 {
		return fmt.Sprintf("%dd%02dh", h/24, h%24)
	}
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
