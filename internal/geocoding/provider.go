package geocoding

import (
	"context"

	"github.com/UnknownOlympus/heatmap/internal/models"
)

// Provider resolves a free-form address to the point the map is centered on.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Point, error)
}
