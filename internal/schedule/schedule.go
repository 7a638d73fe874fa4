// Package schedule keeps the week of opening hours shown in the list view
// and refreshes it on demand.
package schedule

import (
	"context"

	"github.com/analogio/analog-cli/internal/models"
)

//go:generate mockgen -destination=mocks/mock_schedule.go -package=mocks -source=schedule.go Fetcher,Saver

// Fetcher loads the current week's opening hours
type Fetcher interface {
	FetchWeeklySchedule(ctx context.Context) (models.Schedule, error)
}

// Saver persists a schedule at save checkpoints
type Saver interface {
	Save(s models.Schedule) error
}

// Visibility says which of the two list-view elements is shown
type Visibility struct {
	Placeholder bool
	List        bool
}

func visibilityFor(s models.Schedule) Visibility {
	if len(s) == 0 {
		return Visibility{Placeholder: true}
	}
	return Visibility{List: true}
}
