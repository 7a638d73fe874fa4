package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/analogio/analog-cli/internal/models"
)

var dayLabels = [...]string{
	models.Sunday:    "Sunday",
	models.Monday:    "Monday",
	models.Tuesday:   "Tuesday",
	models.Wednesday: "Wednesday",
	models.Thursday:  "Thursday",
	models.Friday:    "Friday",
	models.Saturday:  "Saturday",
}

// DayLabel returns the weekday name for a day index. Indexes outside
// Sunday..Saturday get the Saturday label.
func DayLabel(dayIndex int) string {
	if dayIndex < models.Sunday || dayIndex > models.Saturday {
		return dayLabels[models.Saturday]
	}
	return dayLabels[dayIndex]
}

// HourRange is one opening-closing pair in whole hours
type HourRange struct {
	Open  int
	Close int
}

// String formats the range as a clock span. Closings past midnight of the
// next day wrap back onto the clock, so 26 reads as 02.
func (r HourRange) String() string {
	closing := r.Close
	if closing > 24 {
		closing -= 24
	}
	return fmt.Sprintf("%02d–%02d", r.Open, closing)
}

// Row is one rendered schedule line. Its slices belong to the row.
type Row struct {
	DayIndex int
	Label    string
	Openings []int
	Closings []int
}

// Ranges pairs the row's openings and closings in order
func (r Row) Ranges() []HourRange {
	n := min(len(r.Openings), len(r.Closings))
	out := make([]HourRange, n)
	for i := range n {
		out[i] = HourRange{Open: r.Openings[i], Close: r.Closings[i]}
	}
	return out
}

// Hours joins the ranges for display, "closed" when there are none
func (r Row) Hours() string {
	ranges := r.Ranges()
	if len(ranges) == 0 {
		return "closed"
	}
	parts := make([]string, len(ranges))
	for i, hr := range ranges {
		parts[i] = hr.String()
	}
	return strings.Join(parts, ", ")
}

// DayRowRenderer turns days into rows
type DayRowRenderer struct{}

// Render copies the day's hours into the row's own buffers, so callers can
// keep reading or rendering the same day while the row is modified.
func (DayRowRenderer) Render(day models.DayOfOpenings) Row {
	n := day.Pairs()
	openings := make([]int, n)
	closings := make([]int, n)
	copy(openings, day.Openings)
	copy(closings, day.Closings)

	return Row{
		DayIndex: day.DayIndex,
		Label:    DayLabel(day.DayIndex),
		Openings: openings,
		Closings: closings,
	}
}

// RenderAll renders every day in order
func (r DayRowRenderer) RenderAll(s models.Schedule) []Row {
	rows := make([]Row, len(s))
	for i, day := range s {
		rows[i] = r.Render(day)
	}
	return rows
}

// maxDayDistance is the largest edit distance ParseDay accepts
const maxDayDistance = 2

// ParseDay resolves a user supplied weekday: a day index, a unique prefix
// ("we", "thu") or a name with a small typo ("wendesday").
func ParseDay(query string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0, fmt.Errorf("empty day")
	}

	if n, err := strconv.Atoi(q); err == nil {
		if n < models.Sunday || n > models.Saturday {
			return 0, fmt.Errorf("day index %d out of range 0-6", n)
		}
		return n, nil
	}

	var prefixed []int
	for i, label := range dayLabels {
		if strings.HasPrefix(strings.ToLower(label), q) {
			prefixed = append(prefixed, i)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}
	if len(prefixed) > 1 {
		return 0, fmt.Errorf("ambiguous day %q", query)
	}

	best, bestDist, tie := -1, maxDayDistance+1, false
	for i, label := range dayLabels {
		d := levenshtein.ComputeDistance(q, strings.ToLower(label))
		switch {
		case d < bestDist:
			best, bestDist, tie = i, d, false
		case d == bestDist:
			tie = true
		}
	}
	if best < 0 || tie {
		return 0, fmt.Errorf("unknown day %q", query)
	}
	return best, nil
}
