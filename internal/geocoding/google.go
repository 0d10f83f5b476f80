package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/UnknownOlympus/heatmap/internal/models"
	"googlemaps.github.io/maps"
)

// biasHalfSpan is the half width, in degrees, of the viewport that biases lookups towards the default center.
const biasHalfSpan = 0.5

var (
	// ErrEmptyResponse is returned when Google Maps finds nothing for the center address.
	ErrEmptyResponse = errors.New("no map center found for address")
	// ErrPartialMatch is returned when every result only matched part of the address.
	ErrPartialMatch = errors.New("map center address matched only partially")
	// ErrInvalidLocation is returned when no result carries usable coordinates.
	ErrInvalidLocation = errors.New("map center has invalid coordinates")
)

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GoogleProvider resolves the map center address with the Google Maps Geocoding API.
// Lookups are biased towards a region code and a viewport around a known point,
// and only full matches with valid coordinates are accepted.
type GoogleProvider struct {
	client GoogleAPIClient
	region string
	bounds *maps.LatLngBounds
	log    *slog.Logger
}

// NewGoogleProvider wraps a Google Maps client. region is a ccTLD code such as "us"
// and may be empty. A nil near disables the viewport bias.
func NewGoogleProvider(client GoogleAPIClient, region string, near *models.Point, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{
		client: client,
		region: region,
		bounds: biasBounds(near),
		log:    log,
	}
}

// Geocode returns the location of the first full match for address.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Point, error) {
	req := gp.request(address)
	gp.log.DebugContext(ctx, "Resolving map center with Google Maps", "address", address, "region", gp.region)

	results, err := gp.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	partial := 0
	for _, result := range results {
		if result.PartialMatch {
			partial++
			continue
		}

		location := result.Geometry.Location
		if !validLocation(location) {
			gp.log.WarnContext(ctx, "Skipping geocoding result with invalid location",
				"address", result.FormattedAddress, "lat", location.Lat, "lng", location.Lng)
			continue
		}

		gp.log.DebugContext(ctx, "Map center matched",
			"address", result.FormattedAddress,
			"location_type", result.Geometry.LocationType)

		return &models.Point{Latitude: location.Lat, Longitude: location.Lng}, nil
	}

	if partial == len(results) {
		return nil, fmt.Errorf("%w: %q", ErrPartialMatch, address)
	}

	return nil, ErrInvalidLocation
}

func (gp *GoogleProvider) request(address string) *maps.GeocodingRequest {
	req := &maps.GeocodingRequest{Address: address, Region: gp.region}
	if gp.bounds != nil {
		bounds := *gp.bounds
		req.Bounds = &bounds
	}

	return req
}

func biasBounds(near *models.Point) *maps.LatLngBounds {
	if near == nil {
		return nil
	}

	return &maps.LatLngBounds{
		NorthEast: maps.LatLng{
			Lat: math.Min(near.Latitude+biasHalfSpan, 90),
			Lng: math.Min(near.Longitude+biasHalfSpan, 180),
		},
		SouthWest: maps.LatLng{
			Lat: math.Max(near.Latitude-biasHalfSpan, -90),
			Lng: math.Max(near.Longitude-biasHalfSpan, -180),
		},
	}
}

func validLocation(location maps.LatLng) bool {
	if math.IsNaN(location.Lat) || math.IsNaN(location.Lng) ||
		math.IsInf(location.Lat, 0) || math.IsInf(location.Lng, 0) {
		return false
	}

	return math.Abs(location.Lat) <= 90 && math.Abs(location.Lng) <= 180
}
