package driven

import (
	"context"

	"github.com/skycast-labs/skycast-cli/internal/core/domain"
)

// ForecastSource fetches fresh forecast records from a remote weather
// service. The sync engine treats any returned error as a network
// failure; timeouts are the caller's responsibility via ctx.
type ForecastSource interface {
	// Fetch returns the forecast for a location key ("lat,lon").
	// An empty result is valid data, not an error.
	Fetch(ctx context.Context, locationKey string) ([]domain.ForecastRecord, error)

	// Name identifies the source in logs.
	Name() string
}
