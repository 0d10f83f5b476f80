package geocoding

import (
	"context"

	"github.com/UnknownOlympus/heatmap/internal/models"
)

// StaticProvider answers every address with the same point.
type StaticProvider struct {
	point models.Point
}

// NewStaticProvider returns a provider that always resolves to point.
func NewStaticProvider(point models.Point) *StaticProvider {
	return &StaticProvider{point: point}
}

// Geocode ignores the address and returns the configured point.
func (sp *StaticProvider) Geocode(_ context.Context, _ string) (*models.Point, error) {
	point := sp.point
	return &point, nil
}
