package output

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/analogio/analog-cli/internal/testutil"
)

func TestRenderStatus(t *testing.T) {
	now := time.Date(2024, 1, 1, 7, 30, 0, 0, time.UTC) // Monday

	tests := []struct {
		name    string
		status  Status
		want    []string
		notWant string
	}{
		{
			name:   "open",
			status: Status{Open: true, Now: now, Next: now.Add(time.Hour)},
			want:   []string{"Analog is OPEN"},
			// Next opening is irrelevant while open
			notWant: "Next opening",
		},
		{
			name:   "closed with next opening",
			status: Status{Now: now, Next: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
			want:   []string{"Analog is CLOSED", "Next opening: Monday 09:00 (in 1h30m)"},
		},
		{
			name:    "closed without schedule",
			status:  Status{Now: now},
			want:    []string{"Analog is CLOSED"},
			notWant: "Next opening",
		},
		{
			name:    "error",
			status:  Status{Err: errors.New("network failure")},
			want:    []string{"Error: network failure"},
			notWant: "Analog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderStatus(&buf, tt.status, nil)
			for _, w := range tt.want {
				testutil.AssertContains(t, buf.String(), w)
			}
			if tt.notWant != "" {
				testutil.AssertTrue(t, !bytes.Contains(buf.Bytes(), []byte(tt.notWant)))
			}
		})
	}
}

func TestFormatUntil(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "<1m"},
		{45 * time.Minute, "45m"},
		{90 * time.Minute, "1h30m"},
		{3*time.Hour + 5*time.Minute, "3h05m"},
		{50 * time.Hour, "2d02h"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, FormatUntil(tt.d), tt.want)
	}
}
