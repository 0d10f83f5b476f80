package geometry

import (
	"math"

	"github.com/UnknownOlympus/heatmap/internal/models"
)

// planarEpsilon bounds the cross product below which a point counts as collinear with an edge.
const planarEpsilon = 1e-12

// Planar is an even-odd ray casting predicate. Longitude is the x axis and
// latitude the y axis, which is accurate enough for regions of a few kilometres.
// Rings crossing the antimeridian are read as spanning the long way round the
// globe and give wrong answers; use Spherical for those.
type Planar struct{}

// Contains reports whether pt is inside poly. Points on the boundary are inside.
func (Planar) Contains(pt models.Point, poly models.Polygon) bool {
	n := len(poly)
	if n < minVertices {
		return false
	}

	if onBoundary(pt, poly) {
		return true
	}

	inside := false
	x, y := pt.Longitude, pt.Latitude
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i].Longitude, poly[i].Latitude
		xj, yj := poly[j].Longitude, poly[j].Latitude
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside
}

func onBoundary(pt models.Point, poly models.Polygon) bool {
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if onSegment(pt, poly[j], poly[i]) {
			return true
		}
	}

	return false
}

// onSegment reports whether p lies on the closed segment ab.
func onSegment(p, a, b models.Point) bool {
	cross := (b.Longitude-a.Longitude)*(p.Latitude-a.Latitude) - (b.Latitude-a.Latitude)*(p.Longitude-a.Longitude)
	if math.Abs(cross) > planarEpsilon {
		return false
	}

	return p.Longitude >= math.Min(a.Longitude, b.Longitude)-planarEpsilon &&
		p.Longitude <= math.Max(a.Longitude, b.Longitude)+planarEpsilon &&
		p.Latitude >= math.Min(a.Latitude, b.Latitude)-planarEpsilon &&
		p.Latitude <= math.Max(a.Latitude, b.Latitude)+planarEpsilon
}
