package datastructure

import (
	"github.com/twpayne/go-polyline"
)

// CreatePolyline google encoded polyline of the path (precision 5, lat/lon order).
func CreatePolyline(path []Coordinate) string {
	s := ""
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	s = string(polyline.EncodeCoords(coords))
	return s
}

func DecodePolyline(s string) ([]Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	path := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		path = append(path, NewCoordinate(c[0], c[1]))
	}
	return path, nil
}
