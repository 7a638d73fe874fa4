package models

import (
	"fmt"
	"sort"
	"time"
)

// ShiftResponse represents one staffed opening interval as returned by the
// status service. Times come without a zone and are local café time.
type ShiftResponse struct {
	ID    int    `json:"id"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Shift is a parsed opening interval
type Shift struct {
	Open  time.Time
	Close time.Time
}

var shiftLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ToShift converts the raw response to a Shift in loc
func (r *ShiftResponse) ToShift(loc *time.Location) (Shift, error) {
	open, err := parseShiftTime(r.Open, loc)
	if err != nil {
		return Shift{}, fmt.Errorf("shift %d open: %w", r.ID, err)
	}
	closing, err := parseShiftTime(r.Close, loc)
	if err != nil {
		return Shift{}, fmt.Errorf("shift %d close: %w", r.ID, err)
	}
	if closing.Before(open) {
		return Shift{}, &ValidationError{Field: "close", Message: fmt.Sprintf("shift %d closes before it opens", r.ID)}
	}
	return Shift{Open: open, Close: closing}, nil
}

func parseShiftTime(s string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range shiftLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.In(loc), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// DaysFromShifts groups shifts by local calendar day. Back-to-back or
// overlapping shifts are merged into one opening, days are returned in
// date order and hours are whole local hours.
func DaysFromShifts(shifts []Shift, loc *time.Location) Schedule {
	if len(shifts) == 0 {
		return Schedule{}
	}

	sorted := make([]Shift, len(shifts))
	for i, s := range shifts {
		sorted[i] = Shift{Open: s.Open.In(loc), Close: s.Close.In(loc)}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Open.Before(sorted[j].Open)
	})

	var (
		days    Schedule
		current *DayOfOpenings
		curDate string
		lastEnd time.Time
	)
	for _, s := range sorted {
		date := s.Open.Format("2006-01-02")
		if current == nil || date != curDate {
			days = append(days, DayOfOpenings{DayIndex: int(s.Open.Weekday()), Openings: []int{}, Closings: []int{}})
			current = &days[len(days)-1]
			curDate = date
			lastEnd = time.Time{}
		}

		// Merge with the previous opening when the shifts touch
		if n := len(current.Closings); n > 0 && !s.Open.After(lastEnd) {
			if s.Close.After(lastEnd) {
				current.Closings[n-1] = closingHour(s.Open, s.Close)
				lastEnd = s.Close
			}
			continue
		}

		current.Openings = append(current.Openings, s.Open.Hour())
		current.Closings = append(current.Closings, closingHour(s.Open, s.Close))
		lastEnd = s.Close
	}

	return days
}

// closingHour rounds closing up to the next whole hour, counted from the
// midnight that starts open's day. A shift ending at the next midnight
// closes at 24 and one running until 02:00 the next day closes at 26.
func closingHour(open, closing time.Time) int {
	h := closing.Hour() + 24*daysBetween(open, closing)
	if closing.Minute() > 0 || closing.Second() > 0 {
		h++
	}
	return h
}

// daysBetween counts calendar days from a's date to b's date
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
