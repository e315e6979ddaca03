package users

import (
	"context"
	"time"
)

// Repository persists users. Implementations must enforce email uniqueness
// and apply ToggleAllStatuses as one update over the whole collection.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	ToggleAllStatuses(ctx context.Context) (int64, error)
	GroupByWeekday(ctx context.Context, days []time.Weekday, loc *time.Location) ([]WeekdayGroup, error)
}
