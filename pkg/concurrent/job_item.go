package concurrent

import (
	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

// RouteQuery one start/end pair of a batch route request. Index is the position in the request
// so results can be put back in order.
type RouteQuery struct {
	Index int
	Start datastructure.NodeID
	End   datastructure.NodeID
}

func NewRouteQuery(index int, start, end datastructure.NodeID) RouteQuery {
	return RouteQuery{
		Index: index,
		Start: start,
		End:   end,
	}
}

// NodeBucket nodes of one h3 cell waiting to be encoded and saved.
type NodeBucket struct {
	Key   string
	Nodes []datastructure.Node
}

type JobI interface {
	RouteQuery | NodeBucket
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}
type JobFunc[T JobI, G any] func(job T) G
