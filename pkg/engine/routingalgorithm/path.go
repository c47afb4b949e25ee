package routingalgorithm

import "github.com/lintang-b-s/campusnav/pkg/datastructure"

/*
ExpandPath stitch the directed edge polylines along path into one coordinate sequence.

the first edge contributes its whole polyline, every later edge skips its first point because it
is the previous edge's last point. a point equal to the last appended point is never appended
again, so the result has no consecutive duplicates. a path with less than two nodes gives an empty slice.
*/
func ExpandPath(g GeometryProvider, path []datastructure.NodeID) []datastructure.Coordinate {
	coords := []datastructure.Coordinate{}
	if len(path) < 2 {
		return coords
	}

	for i := 0; i+1 < len(path); i++ {
		points, ok := g.EdgeGeometry(path[i], path[i+1])
		if !ok {
			continue
		}
		if i > 0 && len(points) > 0 {
			points = points[1:]
		}
		for _, p := range points {
			if len(coords) > 0 && coords[len(coords)-1] == p {
				continue
			}
			coords = append(coords, p)
		}
	}
	return coords
}
