package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

var (
	ErrMissingHeader = errors.New("csv header row is missing")
	ErrMissingColumn = errors.New("required csv column is missing")
	ErrBadValue      = errors.New("bad csv value")
)

const utf8BOM = "\ufeff"

type NodeRecord struct {
	ID      datastructure.NodeID
	Name    string
	Address string
	Lon     float64
	Lat     float64
}

type EdgeRecord struct {
	Row  int // 1-based data row, for error messages
	From datastructure.NodeID
	To   datastructure.NodeID
	// Weight meters, 0 when the row had no distance
	Weight    float64
	Waypoints []datastructure.Coordinate
	// MalformedWaypoints the row had waypoint text that could not be parsed
	MalformedWaypoints bool
}

type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	cols, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	h := make(header, len(cols))
	for i, c := range cols {
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		name := strings.ToLower(strings.TrimSpace(c))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	return h, nil
}

// index first present column among names, -1 if none.
func (h header) index(names ...string) int {
	for _, n := range names {
		if i, ok := h[n]; ok {
			return i
		}
	}
	return -1
}

// pair both columns of the first name pair present in the header.
func (h header) pair(pairs ...[2]string) (int, int, bool) {
	for _, p := range pairs {
		a, okA := h[p[0]]
		b, okB := h[p[1]]
		if okA && okB {
			return a, b, true
		}
	}
	return -1, -1, false
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(s string) bool {
	return s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null")
}

// parseID accepts "3" and the "3.0" spreadsheets like to write.
func parseID(s string) (datastructure.NodeID, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return datastructure.NodeID(id), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("node id %q: %w", s, ErrBadValue)
	}
	return datastructure.NodeID(f), nil
}

func parseFloat(s, what string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s %q: %w", what, s, ErrBadValue)
	}
	return f, nil
}

/*
ReadNodesCSV reads node_id, name, longitude, latitude (+ optional address) columns.
lon/lng and lat are accepted as column names too. without a node_id column nodes are numbered
0, 1, 2... in file order. rows without coordinates are skipped and take no number.
*/
func ReadNodesCSV(r io.Reader) ([]NodeRecord, error) {
	cr := newCSVReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	idCol := h.index("node_id", "id")
	nameCol := h.index("name")
	lonCol := h.index("longitude", "lon", "lng")
	latCol := h.index("latitude", "lat")
	addrCol := h.index("address")
	if lonCol < 0 || latCol < 0 {
		return nil, fmt.Errorf("nodes csv needs longitude and latitude: %w", ErrMissingColumn)
	}

	nodes := make([]NodeRecord, 0)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("nodes csv row %d: %w", row, err)
		}

		lonStr, latStr := field(record, lonCol), field(record, latCol)
		if isBlank(lonStr) || isBlank(latStr) {
			log.Printf("nodes csv row %d has no coordinates, skipped", row)
			continue
		}

		n := NodeRecord{
			ID:      datastructure.NodeID(len(nodes)),
			Name:    field(record, nameCol),
			Address: field(record, addrCol),
		}
		if idCol >= 0 {
			if n.ID, err = parseID(field(record, idCol)); err != nil {
				return nil, fmt.Errorf("nodes csv row %d: %w", row, err)
			}
		}
		if n.Lon, err = parseFloat(lonStr, "longitude"); err != nil {
			return nil, fmt.Errorf("nodes csv row %d: %w", row, err)
		}
		if n.Lat, err = parseFloat(latStr, "latitude"); err != nil {
			return nil, fmt.Errorf("nodes csv row %d: %w", row, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

/*
ReadEdgesCSV endpoint columns are looked up as node1/node2, from/to, start/end, falling back to
the first two columns. the weight column is distance, length or weight, else the third column.
an optional waypoints column holds the road shape, see ParseWaypoints.
*/
func ReadEdgesCSV(r io.Reader) ([]EdgeRecord, error) {
	cr := newCSVReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	fromCol, toCol, ok := h.pair(
		[2]string{"node1", "node2"},
		[2]string{"from", "to"},
		[2]string{"start", "end"},
	)
	if !ok {
		fromCol, toCol = 0, 1
	}
	weightCol := h.index("distance", "length", "weight")
	if weightCol < 0 {
		weightCol = 2
	}
	waypointsCol := h.index("waypoints")

	edges := make([]EdgeRecord, 0)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("edges csv row %d: %w", row, err)
		}

		e := EdgeRecord{Row: row}
		if e.From, err = parseID(field(record, fromCol)); err != nil {
			return nil, fmt.Errorf("edges csv row %d: %w", row, err)
		}
		if e.To, err = parseID(field(record, toCol)); err != nil {
			return nil, fmt.Errorf("edges csv row %d: %w", row, err)
		}

		if w := field(record, weightCol); !isBlank(w) {
			if e.Weight, err = parseFloat(w, "distance"); err != nil {
				return nil, fmt.Errorf("edges csv row %d: %w", row, err)
			}
			if e.Weight <= 0 {
				return nil, fmt.Errorf("edges csv row %d distance %v: %w", row, e.Weight, datastructure.ErrInvalidWeight)
			}
		}

		if raw := field(record, waypointsCol); !isBlank(raw) {
			if e.Waypoints, ok = ParseWaypoints(raw); !ok {
				e.MalformedWaypoints = true
				log.Printf("edges csv row %d: malformed waypoints, using a straight line", row)
			}
		}
		edges = append(edges, e)
	}
	return edges, nil
}
