package models

// Point represents a geographical point defined by its latitude and longitude.
type Point struct {
	Latitude  float64 `json:"lat"` // Latitude of the geographical point.
	Longitude float64 `json:"lng"` // Longitude of the geographical point.
}

// DefaultCenter is the map center used when no other center can be resolved.
var DefaultCenter = Point{Latitude: 37.782551, Longitude: -122.445368}
