package geo

import (
	"testing"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	cases := []struct {
		latOne, longOne, latTwo, longTwo float64
		expectedDist                     float64
	}{
		{
			latOne:       -7.557155997491524,
			longOne:      110.77170252731288,
			latTwo:       -7.550209300671982,
			longTwo:      110.78942094938256,
			expectedDist: 2100,
		},
		{
			latOne:  -7.546196863318374,
			longOne: 110.7775170972345,

			latTwo:       -7.550209300671982,
			longTwo:      110.78942094938256,
			expectedDist: 1380,
		},
		{
			latOne:       -7.759889166547908,
			longOne:      110.36689459108496,
			latTwo:       -7.760335932763678,
			longTwo:      110.37671195413539,
			expectedDist: 1080,
		},
		{
			latOne:       -7.700002453207869,
			longOne:      110.37712514761436,
			latTwo:       -7.760335932763678,
			longTwo:      110.37671195413539,
			expectedDist: 6700,
		},
	}

	t.Run("success haversine distance", func(t *testing.T) {
		for _, c := range cases {
			dist := CalculateHaversineDistance(c.latOne, c.longOne, c.latTwo, c.longTwo)
			assert.InDelta(t, c.expectedDist, dist, 100)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		for _, c := range cases {
			ab := CalculateHaversineDistance(c.latOne, c.longOne, c.latTwo, c.longTwo)
			ba := CalculateHaversineDistance(c.latTwo, c.longTwo, c.latOne, c.longOne)
			assert.InDelta(t, ab, ba, 1e-9)
		}
	})

	t.Run("zero on the same point", func(t *testing.T) {
		assert.Equal(t, 0.0, CalculateHaversineDistance(24.8265, 102.8561, 24.8265, 102.8561))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		// 2*pi*R/360
		assert.InDelta(t, 111194.93, CalculateHaversineDistance(0, 0, 1, 0), 0.01)
	})
}

func TestNodeDistance(t *testing.T) {
	a := datastructure.NewNode(1, "library", 102.8561, 24.8265)
	b := datastructure.NewNode(2, "north gate", 102.8602, 24.8330)

	assert.InDelta(t, NodeDistance(a, b), NodeDistance(b, a), 1e-9)
	assert.Greater(t, NodeDistance(a, b), 0.0)
}

func TestPolylineLength(t *testing.T) {
	a := datastructure.NewCoordinate(24.8265, 102.8561)
	b := datastructure.NewCoordinate(24.8290, 102.8575)
	c := datastructure.NewCoordinate(24.8330, 102.8602)

	t.Run("two points equal haversine", func(t *testing.T) {
		assert.InDelta(t, CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon), PolylineLength([]datastructure.Coordinate{a, b}), 0.01)
	})

	t.Run("sum of segments", func(t *testing.T) {
		want := CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) + CalculateHaversineDistance(b.Lat, b.Lon, c.Lat, c.Lon)
		assert.InDelta(t, want, PolylineLength([]datastructure.Coordinate{a, b, c}), 0.01)
	})

	t.Run("degenerate", func(t *testing.T) {
		assert.Equal(t, 0.0, PolylineLength(nil))
		assert.Equal(t, 0.0, PolylineLength([]datastructure.Coordinate{a}))
	})
}

func TestBearingTo(t *testing.T) {
	cases := []struct {
		name                             string
		latOne, longOne, latTwo, longTwo float64
		expected                         float64
	}{
		{"north", 0, 0, 1, 0, 0},
		{"east", 0, 0, 0, 1, 90},
		{"south", 1, 0, 0, 0, 180},
		{"west", 0, 1, 0, 0, -90},
		{"north east", 0, 0, 0.001, 0.001, 45},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, BearingTo(tc.latOne, tc.longOne, tc.latTwo, tc.longTwo), 0.01)
		})
	}
}
