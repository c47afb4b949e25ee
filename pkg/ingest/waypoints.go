package ingest

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

/*
ParseWaypoints reads an edge waypoint field. two encodings are accepted, both lon first:

	[[102.8565,24.8262],[102.8571,24.8266]]   json, when the text starts with '['
	102.8565,24.8262;102.8571,24.8266         semicolon separated pairs, a single pair is fine

anything else (empty, "nan", a bad number, an out of range coordinate) gives (nil, false).
malformed geometry is never an error, the edge just falls back to a straight line.
*/
func ParseWaypoints(s string) ([]datastructure.Coordinate, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, false
	}

	if strings.HasPrefix(s, "[") {
		return parseJSONWaypoints(s)
	}
	return parseTextWaypoints(s)
}

func parseJSONWaypoints(s string) ([]datastructure.Coordinate, bool) {
	var pairs [][]float64
	if err := json.Unmarshal([]byte(s), &pairs); err != nil {
		return nil, false
	}
	if len(pairs) == 0 {
		return nil, false
	}

	coords := make([]datastructure.Coordinate, 0, len(pairs))
	for _, p := range pairs {
		if len(p) < 2 {
			return nil, false
		}
		c, ok := lonLat(p[0], p[1])
		if !ok {
			return nil, false
		}
		coords = append(coords, c)
	}
	return coords, true
}

func parseTextWaypoints(s string) ([]datastructure.Coordinate, bool) {
	coords := []datastructure.Coordinate{}
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		fields := strings.Split(pair, ",")
		if len(fields) != 2 {
			return nil, false
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, false
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, false
		}
		c, ok := lonLat(lon, lat)
		if !ok {
			return nil, false
		}
		coords = append(coords, c)
	}
	if len(coords) == 0 {
		return nil, false
	}
	return coords, true
}

func lonLat(lon, lat float64) (datastructure.Coordinate, bool) {
	if math.IsNaN(lon) || math.IsNaN(lat) || lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return datastructure.Coordinate{}, false
	}
	return datastructure.NewCoordinate(lat, lon), true
}
