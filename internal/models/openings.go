package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Day indexes used by DayOfOpenings. Values line up with time.Weekday.
const (
	Sunday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DayOfOpenings holds the opening hours of one day. Openings[i] and
// Closings[i] form one opening-closing pair; pairs are ordered by index.
type DayOfOpenings struct {
	DayIndex int   `json:"dayOfWeek"`
	Openings []int `json:"openings"`
	Closings []int `json:"closings"`
}

// ValidationError reports a DayOfOpenings that breaks its invariants
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// NewDayOfOpenings builds a day from parallel opening/closing hour
// sequences. The sequences are copied; their lengths must match.
func NewDayOfOpenings(dayIndex int, openings, closings []int) (DayOfOpenings, error) {
	if len(openings) != len(closings) {
		return DayOfOpenings{}, &ValidationError{
			Field:   "closings",
			Message: fmt.Sprintf("%d closings for %d openings", len(closings), len(openings)),
		}
	}

	return DayOfOpenings{
		DayIndex: dayIndex,
		Openings: append(make([]int, 0, len(openings)), openings...),
		Closings: append(make([]int, 0, len(closings)), closings...),
	}, nil
}

// MustDayOfOpenings is like NewDayOfOpenings but panics on a length mismatch.
// Intended for literals in tests and fixtures.
func MustDayOfOpenings(dayIndex int, openings, closings []int) DayOfOpenings {
	d, err := NewDayOfOpenings(dayIndex, openings, closings)
	if err != nil {
		panic(err)
	}
	return d
}

// Validate checks the matching-length invariant
func (d DayOfOpenings) Validate() error {
	_, err := NewDayOfOpenings(d.DayIndex, d.Openings, d.Closings)
	return err
}

// Pairs returns the number of opening-closing pairs
func (d DayOfOpenings) Pairs() int {
	return min(len(d.Openings), len(d.Closings))
}

// Clone returns a deep copy
func (d DayOfOpenings) Clone() DayOfOpenings {
	return DayOfOpenings{
		DayIndex: d.DayIndex,
		Openings: append(make([]int, 0, len(d.Openings)), d.Openings...),
		Closings: append(make([]int, 0, len(d.Closings)), d.Closings...),
	}
}

// Equal reports whether both days carry the same index and hour sequences
func (d DayOfOpenings) Equal(other DayOfOpenings) bool {
	return d.DayIndex == other.DayIndex &&
		slices.Equal(d.Openings, other.Openings) &&
		slices.Equal(d.Closings, other.Closings)
}

// UnmarshalJSON decodes a day and rejects mismatched sequences.
func (d *DayOfOpenings) UnmarshalJSON(data []byte) error {
	type rawDay DayOfOpenings
	var raw rawDay
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	day, err := NewDayOfOpenings(raw.DayIndex, raw.Openings, raw.Closings)
	if err != nil {
		return err
	}
	*d = day
	return nil
}

// Schedule is an ordered week of opening hours. An empty schedule means
// the café is closed all week.
type Schedule []DayOfOpenings

// Clone returns a deep copy that shares no slices with s
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for i, d := range s {
		out[i] = d.Clone()
	}
	return out
}

// Equal reports element-wise equality, order included
func (s Schedule) Equal(other Schedule) bool {
	return slices.EqualFunc(s, other, DayOfOpenings.Equal)
}

// Validate checks every day in the schedule
func (s Schedule) Validate() error {
	for i, d := range s {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("day %d: %w", i, err)
		}
	}
	return nil
}
