package routingalgorithm

import "github.com/lintang-b-s/campusnav/pkg/datastructure"

const curveOffset = 0.00005 // degrees

/*
CurvePath bends a straight polyline for display. every segment is replaced by its midpoint pushed
by curveOffset, on latitude for even segments and on longitude for odd ones. only the two ends
survive:

	p0, mid(p0,p1)+off, mid(p1,p2)+off ... mid(pn-1,pn)+off, pn

less than 3 points are returned as a copy. the result is never used for distances.
*/
func CurvePath(points []datastructure.Coordinate) []datastructure.Coordinate {
	if len(points) < 3 {
		curved := make([]datastructure.Coordinate, len(points))
		copy(curved, points)
		return curved
	}

	curved := make([]datastructure.Coordinate, 0, len(points)+1)
	curved = append(curved, points[0])
	for i := 0; i+1 < len(points); i++ {
		p1, p2 := points[i], points[i+1]
		mid := datastructure.NewCoordinate((p1.Lat+p2.Lat)/2, (p1.Lon+p2.Lon)/2)
		if i%2 == 0 {
			mid.Lat += curveOffset
		} else {
			mid.Lon += curveOffset
		}
		curved = append(curved, mid)
	}
	curved = append(curved, points[len(points)-1])
	return curved
}
