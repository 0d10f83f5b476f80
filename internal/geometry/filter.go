package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/heatmap/internal/models"
)

// minVertices is the smallest vertex count that bounds an area.
const minVertices = 3

// ErrInvalidPolygon is returned when a polygon has fewer than three vertices
// or contains a non-finite coordinate.
var ErrInvalidPolygon = errors.New("invalid polygon")

// Normalize validates poly and returns a copy with any trailing vertices equal
// to the first one removed, so explicitly closed rings are accepted.
func Normalize(poly models.Polygon) (models.Polygon, error) {
	ring := poly.Clone()
	for len(ring) > 1 && ring[len(ring)-1] == ring[0] {
		ring = ring[:len(ring)-1]
	}

	if len(ring) < minVertices {
		return nil, fmt.Errorf("%w: need at least %d vertices, got %d", ErrInvalidPolygon, minVertices, len(ring))
	}

	for idx, v := range ring {
		if !isFinite(v.Latitude) || !isFinite(v.Longitude) {
			return nil, fmt.Errorf("%w: vertex %d has a non-finite coordinate", ErrInvalidPolygon, idx)
		}
	}

	return ring, nil
}

// Filter returns, in input order, the points for which pred reports containment
// in polygon. The input slice is never modified. A nil pred selects Planar.
// An empty point slice yields an empty, non-nil result.
func Filter(points []models.Point, polygon models.Polygon, pred Predicate) ([]models.Point, error) {
	ring, err := Normalize(polygon)
	if err != nil {
		return nil, err
	}

	if pred == nil {
		pred = Planar{}
	}

	out := make([]models.Point, 0, len(points))
	for _, pt := range points {
		if pred.Contains(pt, ring) {
			out = append(out, pt)
		}
	}

	return out, nil
}

// Round rounds both coordinates of p to the given number of decimal digits.
func Round(p models.Point, digits int) models.Point {
	scale := math.Pow(10, float64(digits))

	return models.Point{
		Latitude:  math.Round(p.Latitude*scale) / scale,
		Longitude: math.Round(p.Longitude*scale) / scale,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
