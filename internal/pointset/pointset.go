// Package pointset holds the read-only collection of heatmap points and the
// sources it can be loaded from.
package pointset

import (
	"slices"

	"github.com/UnknownOlympus/heatmap/internal/models"
)

// Set is an immutable collection of heatmap points.
type Set struct {
	points []models.Point
}

// New copies points into a new Set.
func New(points []models.Point) *Set {
	return &Set{points: slices.Clone(points)}
}

// Points returns a copy of the points in load order.
func (s *Set) Points() []models.Point {
	if s == nil {
		return []models.Point{}
	}
	out := make([]models.Point, len(s.points))
	copy(out, s.points)

	return out
}

// Len returns the number of points in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.points)
}
