package testutil

import "github.com/analogio/analog-cli/internal/models"

// Sample JSON responses for API testing

// SampleOpenResponse reports the café as open
const SampleOpenResponse = `{"open": true}`

// SampleClosedResponse reports the café as closed
const SampleClosedResponse = `{"open": false}`

// SampleMalformedOpenResponse is valid JSON without a usable open flag
const SampleMalformedOpenResponse = `{"open": "maybe"}`

// SampleShiftsResponse covers one week starting Monday 2024-01-01 in café
// local time. The Monday morning shifts touch and fold into one opening.
const SampleShiftsResponse = `[
	{"id": 101, "open": "2024-01-01T09:00:00", "close": "2024-01-01T11:00:00"},
	{"id": 102, "open": "2024-01-01T11:00:00", "close": "2024-01-01T12:00:00"},
	{"id": 103, "open": "2024-01-01T13:00:00", "close": "2024-01-01T15:30:00"},
	{"id": 104, "open": "2024-01-02T10:00:00", "close": "2024-01-02T14:00:00"},
	{"id": 105, "open": "2024-01-05T08:00:00", "close": "2024-01-05T16:00:00"}
]`

// SampleEmptyShiftsResponse is a week without any staffed shifts
const SampleEmptyShiftsResponse = `[]`

// SampleInvalidShiftsResponse has a shift that closes before it opens
const SampleInvalidShiftsResponse = `[
	{"id": 7, "open": "2024-01-01T12:00:00", "close": "2024-01-01T09:00:00"}
]`

// SampleSchedule is the schedule SampleShiftsResponse folds into
func SampleSchedule() models.Schedule {
	return models.Schedule{
		models.MustDayOfOpenings(models.Monday, []int{9, 13}, []int{12, 16}),
		models.MustDayOfOpenings(models.Tuesday, []int{10}, []int{14}),
		models.MustDayOfOpenings(models.Friday, []int{8}, []int{16}),
	}
}

// SampleStoredSchedule is the schedule JSON written by the state store
const SampleStoredSchedule = `[
	{"dayOfWeek": 1, "openings": [9, 13], "closings": [12, 16]},
	{"dayOfWeek": 2, "openings": [10], "closings": [14]},
	{"dayOfWeek": 5, "openings": [8], "closings": [16]}
]`
