package guidance

import (
	"math"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/geo"
)

const (
	DEGREE_TO_RADIANS = 0.017453292519943295
)

func toRadians(degrees float64) float64 {
	return degrees * DEGREE_TO_RADIANS
}

// alignOrientation shifts orientation by 2π so it is within π of baseOrientation.
func alignOrientation(baseOrientation, orientation float64) float64 {
	var resultOrientation float64
	if baseOrientation >= 0 {
		if orientation < -math.Pi+baseOrientation {
			resultOrientation = orientation + 2*math.Pi
		} else {
			resultOrientation = orientation
		}
	} else if orientation > math.Pi+baseOrientation {
		resultOrientation = orientation - 2*math.Pi
	} else {
		resultOrientation = orientation
	}
	return resultOrientation
}

func calcOrientation(lat1, lon1, lat2, lon2 float64) float64 {
	prevBearing := geo.BearingTo(lat1, lon1, lat2, lon2)
	prevBearing = toRadians(prevBearing)
	return prevBearing
}

func calculateOrientationDelta(prevLatitude, prevLongitude, latitude, longitude, prevOrientation float64) float64 {
	orientation := calcOrientation(prevLatitude, prevLongitude, latitude, longitude)
	orientation = alignOrientation(prevOrientation, orientation)
	return orientation - prevOrientation
}

/*
getTurnDirection turn sign at (prevLatitude, prevLongitude) when arriving with prevOrientation and
leaving toward (latitude, longitude). negative delta is a left turn.

	|delta| < 12°   continue
	|delta| < 40°   slight
	|delta| < 105°  turn
	|delta| < 170°  sharp
	otherwise       turn around
*/
func getTurnDirection(prevLatitude, prevLongitude, latitude, longitude, prevOrientation float64) int {
	delta := calculateOrientationDelta(prevLatitude, prevLongitude, latitude, longitude, prevOrientation)
	absDelta := math.Abs(delta)
	deltaDegree := absDelta * (180 / math.Pi)
	if deltaDegree < 12 {
		return CONTINUE_ON_STREET
	} else if deltaDegree < 40 {

		if delta < 0 {
			return (TURN_SLIGHT_LEFT)
		} else {
			return (TURN_SLIGHT_RIGHT)
		}
	} else if deltaDegree < 105 {

		if delta < 0 {
			return (TURN_LEFT)
		} else {
			return (TURN_RIGHT)
		}

	} else if deltaDegree >= 170 {
		return U_TURN_UNKNOWN
	} else if delta < 0 {
		return (TURN_SHARP_LEFT)

	} else {
		return (TURN_SHARP_RIGHT)

	}
}

// lastSegment last two distinct points of a polyline. false if every point is the same.
func lastSegment(points []datastructure.Coordinate) (datastructure.Coordinate, datastructure.Coordinate, bool) {
	if len(points) < 2 {
		return datastructure.Coordinate{}, datastructure.Coordinate{}, false
	}
	end := points[len(points)-1]
	for i := len(points) - 2; i >= 0; i-- {
		if points[i] != end {
			return points[i], end, true
		}
	}
	return datastructure.Coordinate{}, datastructure.Coordinate{}, false
}

// firstSegment first two distinct points of a polyline.
func firstSegment(points []datastructure.Coordinate) (datastructure.Coordinate, datastructure.Coordinate, bool) {
	if len(points) < 2 {
		return datastructure.Coordinate{}, datastructure.Coordinate{}, false
	}
	start := points[0]
	for i := 1; i < len(points); i++ {
		if points[i] != start {
			return start, points[i], true
		}
	}
	return datastructure.Coordinate{}, datastructure.Coordinate{}, false
}
