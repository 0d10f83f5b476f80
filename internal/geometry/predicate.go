// Package geometry implements point-in-polygon classification and filtering
// over geographic coordinates.
//
// Boundary policy: a point lying on a polygon edge or exactly on a vertex is
// classified as inside by every Predicate in this package.
package geometry

import "github.com/UnknownOlympus/heatmap/internal/models"

// Predicate decides whether a point lies inside a polygon.
// Implementations may assume the polygon has already been validated by Normalize.
type Predicate interface {
	Contains(pt models.Point, poly models.Polygon) bool
}

// PredicateType names a Predicate implementation.
type PredicateType string

const (
	// PredicateTypePlanar treats (lat, lng) as planar coordinates.
	PredicateTypePlanar PredicateType = "planar"
	// PredicateTypeSpherical uses great-circle edges on the unit sphere.
	PredicateTypeSpherical PredicateType = "spherical"
)

// NewPredicate returns the predicate registered under the given type.
// An empty type selects the planar predicate.
func NewPredicate(kind PredicateType) (Predicate, error) {
	switch kind {
	case PredicateTypePlanar, "":
		return Planar{}, nil
	case PredicateTypeSpherical:
		return Spherical{}, nil
	default:
		return nil, &UnknownPredicateError{Type: kind}
	}
}

// UnknownPredicateError is returned by NewPredicate for an unsupported type.
type UnknownPredicateError struct {
	Type PredicateType
}

func (e *UnknownPredicateError) Error() string {
	return "unsupported predicate type: " + string(e.Type)
}
