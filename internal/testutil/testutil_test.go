package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/analogio/analog-cli/internal/models"
)

func TestSampleSchedule_MatchesStoredJSON(t *testing.T) {
	var stored models.Schedule
	AssertNil(t, json.Unmarshal([]byte(SampleStoredSchedule), &stored))
	AssertTrue(t, stored.Equal(SampleSchedule()))
}

func TestSampleSchedule_IsValid(t *testing.T) {
	AssertNil(t, SampleSchedule().Validate())
}

func TestDate(t *testing.T) {
	d := Date(time.UTC, 2024, time.January, 1, 9, 30)
	AssertEqual(t, d.Weekday(), time.Monday)
	AssertEqual(t, d.Hour(), 9)
	AssertEqual(t, d.Minute(), 30)
}

func TestCopenhagen(t *testing.T) {
	loc := Copenhagen(t)
	AssertEqual(t, loc.String(), "Europe/Copenhagen")
}
