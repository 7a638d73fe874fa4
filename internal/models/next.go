package models

import (
	"time"

	"github.com/teambition/rrule-go"
)

var rruleWeekdays = [...]rrule.Weekday{
	Sunday:    rrule.SU,
	Monday:    rrule.MO,
	Tuesday:   rrule.TU,
	Wednesday: rrule.WE,
	Thursday:  rrule.TH,
	Friday:    rrule.FR,
	Saturday:  rrule.SA,
}

// NextOpening returns the first opening strictly after now, treating the
// schedule as a repeating week. Days with an index outside Sunday..Saturday
// are skipped. ok is false when the schedule has no openings.
func NextOpening(s Schedule, now time.Time) (next time.Time, ok bool) {
	dtstart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var set rrule.Set
	rules := 0
	for _, day := range s {
		if day.DayIndex < Sunday || day.DayIndex > Saturday {
			continue
		}
		for _, hour := range day.Openings[:day.Pairs()] {
			r, err := rrule.NewRRule(rrule.ROption{
				Freq:      rrule.WEEKLY,
				Dtstart:   dtstart,
				Byweekday: []rrule.Weekday{rruleWeekdays[day.DayIndex]},
				Byhour:    []int{hour},
				Byminute:  []int{0},
				Bysecond:  []int{0},
			})
			if err != nil {
				continue
			}
			set.RRule(r)
			rules++
		}
	}
	if rules == 0 {
		return time.Time{}, false
	}

	next = set.After(now, false)
	return next, !next.IsZero()
}
