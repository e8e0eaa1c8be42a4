package server

import (
	"context"

	"github.com/gmontenegrodev/web-app/internal/poller"
	"github.com/gmontenegrodev/web-app/internal/store"
)

// Poller defines the poller behavior the server and admin routes rely on.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	RefreshNow(ctx context.Context, date string) (store.ScheduleDay, error)
}
