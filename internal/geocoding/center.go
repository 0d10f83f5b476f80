package geocoding

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/heatmap/internal/models"
)

const (
	// DefaultZoom is the initial zoom level of the map widget.
	DefaultZoom = 4
	// DefaultMapType is the initial base layer of the map widget.
	DefaultMapType = "terrain"
)

// MapOptions resolves address to the map center. An empty address, a lookup
// failure or a nil provider all fall back to models.DefaultCenter.
func MapOptions(ctx context.Context, provider Provider, address string, log *slog.Logger) models.MapOptions {
	options := models.MapOptions{Zoom: DefaultZoom, Center: models.DefaultCenter, MapType: DefaultMapType}
	if provider == nil || address == "" {
		return options
	}

	center, err := provider.Geocode(ctx, address)
	if err != nil {
		log.WarnContext(ctx, "Failed to resolve map center, using default", "address", address, "error", err)
		return options
	}

	log.InfoContext(ctx, "Map center resolved", "address", address, "lat", center.Latitude, "lng", center.Longitude)
	options.Center = *center

	return options
}
