package geo

import (
	"github.com/golang/geo/s2"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

// PolylineLength length in meters of a waypoint sequence, measured along great circles on the
// same sphere as CalculateHaversineDistance.
func PolylineLength(coords []datastructure.Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}

	latLngs := make([]s2.LatLng, 0, len(coords))
	for _, c := range coords {
		latLngs = append(latLngs, s2.LatLngFromDegrees(c.Lat, c.Lon))
	}

	line := s2.PolylineFromLatLngs(latLngs)
	return line.Length().Radians() * earthRadiusM
}
