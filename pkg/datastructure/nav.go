package datastructure

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// ToLatLonPairs renders coordinates as [lat, lon] pairs, the order map front ends expect.
func ToLatLonPairs(coords []Coordinate) [][]float64 {
	pairs := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pairs = append(pairs, []float64{c.Lat, c.Lon})
	}
	return pairs
}

// ReverseCoordinates returns a reversed copy.
func ReverseCoordinates(coords []Coordinate) []Coordinate {
	rev := make([]Coordinate, len(coords))
	for i, c := range coords {
		rev[len(coords)-1-i] = c
	}
	return rev
}
