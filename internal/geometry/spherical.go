package geometry

import (
	"github.com/UnknownOlympus/heatmap/internal/models"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// sphericalTolerance is the angular distance from an edge under which a point is on the boundary.
const sphericalTolerance = s1.Angle(1e-12)

// Spherical classifies points against a polygon whose edges are great-circle arcs.
// The polygon is always taken to be the smaller of the two regions its ring bounds,
// so vertex order (clockwise or counter-clockwise) does not matter.
type Spherical struct{}

// Contains reports whether pt is inside poly. Points on the boundary are inside.
func (Spherical) Contains(pt models.Point, poly models.Polygon) bool {
	vertices := toS2Ring(poly)
	if len(vertices) < minVertices {
		return false
	}

	target := toS2Point(pt)
	for i := range vertices {
		a, b := vertices[i], vertices[(i+1)%len(vertices)]
		if s2.DistanceFromSegment(target, a, b) <= sphericalTolerance {
			return true
		}
	}

	loop := s2.LoopFromPoints(vertices)
	loop.Normalize()

	return loop.ContainsPoint(target)
}

// toS2Ring converts poly to S2 points, skipping consecutive duplicates which S2 loops reject.
func toS2Ring(poly models.Polygon) []s2.Point {
	out := make([]s2.Point, 0, len(poly))
	for _, v := range poly {
		p := toS2Point(v)
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}

	return out
}

func toS2Point(p models.Point) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Latitude, p.Longitude))
}
