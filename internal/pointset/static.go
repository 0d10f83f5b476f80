package pointset

import "github.com/UnknownOlympus/heatmap/internal/models"

// Default returns the built-in dataset: a walking trace across San Francisco.
func Default() *Set {
	raw := [][2]float64{
		{37.782551, -122.445368},
		{37.782745, -122.444586},
		{37.782842, -122.443688},
		{37.782919, -122.442815},
		{37.782992, -122.442112},
		{37.783100, -122.441461},
		{37.783206, -122.440829},
		{37.783273, -122.440324},
		{37.783316, -122.440023},
		{37.783357, -122.439794},
		{37.783371, -122.439687},
		{37.783368, -122.439666},
		{37.783383, -122.439594},
		{37.783508, -122.439525},
		{37.783842, -122.439591},
		{37.784147, -122.439668},
		{37.784206, -122.439686},
		{37.784386, -122.439790},
		{37.784701, -122.439902},
		{37.784965, -122.439938},
		{37.785010, -122.439947},
		{37.785360, -122.439952},
		{37.785715, -122.440030},
		{37.786117, -122.440119},
		{37.786564, -122.440209},
		{37.786905, -122.440270},
		{37.786956, -122.440279},
		{37.800224, -122.433520},
		{37.800155, -122.434101},
		{37.800160, -122.434430},
		{37.800378, -122.434527},
		{37.800738, -122.434598},
		{37.800938, -122.434650},
	}

	points := make([]models.Point, 0, len(raw))
	for _, coord := range raw {
		points = append(points, models.Point{Latitude: coord[0], Longitude: coord[1]})
	}

	return &Set{points: points}
}
