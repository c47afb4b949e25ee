package geo

import (
	"math"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

const (
	earthRadiusM = 6371000.0
)

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateHaversineDistance great-circle distance in meters between two lat/lon points.
// never overestimates the length of a road between the same two points, so it is an admissible
// (and consistent) a* heuristic.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	dLat := latTwo - latOne
	dLon := longTwo - longOne

	a := math.Pow(math.Sin(dLat/2), 2) + math.Cos(latOne)*math.Cos(latTwo)*math.Pow(math.Sin(dLon/2), 2)
	if a > 1 {
		a = 1 // rounding on antipodal points
	}
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusM * c
}

func NodeDistance(a, b datastructure.Node) float64 {
	return CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// BearingTo initial bearing in degrees from point one to point two, in (-180, 180], 0 is north,
// positive clockwise.
func BearingTo(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	latTwo = degreeToRadians(latTwo)
	dLon := degreeToRadians(longTwo - longOne)

	y := math.Sin(dLon) * math.Cos(latTwo)
	x := math.Cos(latOne)*math.Sin(latTwo) - math.Sin(latOne)*math.Cos(latTwo)*math.Cos(dLon)
	return math.Atan2(y, x) * (180.0 / math.Pi)
}
