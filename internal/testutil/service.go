package testutil

import (
	"time"

	appgames "github.com/gmontenegrodev/web-app/internal/app/games"
	appplayers "github.com/gmontenegrodev/web-app/internal/app/players"
	appteams "github.com/gmontenegrodev/web-app/internal/app/teams"
	"github.com/gmontenegrodev/web-app/internal/live"
	"github.com/gmontenegrodev/web-app/internal/providers"
	"github.com/gmontenegrodev/web-app/internal/store"
)

// Services bundles the app services over one shared store.
type Services struct {
	Store   *store.Store
	Games   *appgames.Service
	Teams   *appteams.Service
	Players *appplayers.Service
}

// NewServices wires every app service to provider with default tuning and no logging.
func NewServices(provider providers.DataProvider) Services {
	st := store.New()
	loc, _ := time.LoadLocation("America/New_York")
	agg := live.NewAggregator(provider, 4, nil, nil)
	return Services{
		Store:   st,
		Games:   appgames.NewService(st, provider, agg, nil, loc, nil),
		Teams:   appteams.NewService(st, provider, nil, nil),
		Players: appplayers.NewService(st, provider, appplayers.Config{}, nil, nil),
	}
}
