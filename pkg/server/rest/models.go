package rest

import (
	"errors"
	"net/http"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/campusnav/pkg/geo"
	"github.com/lintang-b-s/campusnav/pkg/server/rest/service"
	"github.com/lintang-b-s/campusnav/pkg/snap"
	"github.com/lintang-b-s/campusnav/pkg/util"
)

// NodeResponse model info
//
//	@Description	campus graph node
type NodeResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Degree    int     `json:"degree"`
	Component int     `json:"component"`
}

func RenderNodesResponse(infos []service.NodeInfo) []NodeResponse {
	resp := make([]NodeResponse, 0, len(infos))
	for _, info := range infos {
		resp = append(resp, NodeResponse{
			ID:        int64(info.Node.ID),
			Name:      info.Node.Name,
			Lat:       info.Node.Lat,
			Lon:       info.Node.Lon,
			Degree:    info.Degree,
			Component: info.Component,
		})
	}
	return resp
}

// RouteRequest model info
//
//	@Description	request body shortest path between two campus nodes. ids may be 0 so they are pointers
type RouteRequest struct {
	Start *int64 `json:"start" validate:"required"`
	End   *int64 `json:"end" validate:"required"`
	Algo  string `json:"algo" validate:"omitempty,max=16"`

	algorithm routingalgorithm.Algorithm
}

func (s *RouteRequest) Bind(r *http.Request) error {
	alg, err := routingalgorithm.ParseAlgorithm(s.Algo)
	if err != nil {
		return err
	}
	s.algorithm = alg
	return nil
}

// Coord model info
//
//	@Description	coordinate in degrees
type Coord struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// CoordRouteRequest model info
//
//	@Description	request body shortest path between two coordinates
type CoordRouteRequest struct {
	From *Coord `json:"from" validate:"required"`
	To   *Coord `json:"to" validate:"required"`
	Algo string `json:"algo" validate:"omitempty,max=16"`

	algorithm routingalgorithm.Algorithm
}

func (s *CoordRouteRequest) Bind(r *http.Request) error {
	alg, err := routingalgorithm.ParseAlgorithm(s.Algo)
	if err != nil {
		return err
	}
	s.algorithm = alg
	return nil
}

// RoutePair model info
//
//	@Description	one start/end pair of a batch request
type RoutePair struct {
	Start *int64 `json:"start" validate:"required"`
	End   *int64 `json:"end" validate:"required"`
}

// RoutesRequest model info
//
//	@Description	request body batch shortest paths
type RoutesRequest struct {
	Pairs []RoutePair `json:"pairs" validate:"required,min=1,dive"`
	Algo  string      `json:"algo" validate:"omitempty,max=16"`

	algorithm routingalgorithm.Algorithm
}

func (s *RoutesRequest) Bind(r *http.Request) error {
	if len(s.Pairs) == 0 {
		return errors.New("invalid request: pairs is empty")
	}
	alg, err := routingalgorithm.ParseAlgorithm(s.Algo)
	if err != nil {
		return err
	}
	s.algorithm = alg
	return nil
}

func (s *RoutesRequest) nodePairs() [][2]datastructure.NodeID {
	pairs := make([][2]datastructure.NodeID, 0, len(s.Pairs))
	for _, p := range s.Pairs {
		pairs = append(pairs, [2]datastructure.NodeID{datastructure.NodeID(*p.Start), datastructure.NodeID(*p.End)})
	}
	return pairs
}

// RouteResponse model info
//
//	@Description	shortest path response. coordinates are [lat, lon] pairs, dist in meters, time in milliseconds
type RouteResponse struct {
	Ok            bool        `json:"ok"`
	Algo          string      `json:"algo"`
	StartID       int64       `json:"start_id"`
	EndID         int64       `json:"end_id"`
	StartName     string      `json:"start_name"`
	EndName       string      `json:"end_name"`
	Path          []int64     `json:"path"`
	PathNames     []string    `json:"path_names"`
	Dist          float64     `json:"dist"`
	Time          float64     `json:"time"`
	Visited       int         `json:"visited"`
	Coords        [][]float64 `json:"coords"`
	CurvedCoords  [][]float64 `json:"curved_coords,omitempty"`
	Polyline      string      `json:"polyline"`
	NodeCount     int         `json:"node_count"`
	WaypointCount int         `json:"waypoint_count"`

	Instructions []InstructionResponse `json:"instructions"`
}

// InstructionResponse model info
//
//	@Description	walking instruction, distance in meters from the start
type InstructionResponse struct {
	Instruction string  `json:"instruction"`
	TurnType    string  `json:"turn_type"`
	NodeID      int64   `json:"node_id"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Distance    float64 `json:"distance"`
}

func RenderRouteResponse(route service.RouteResult) *RouteResponse {
	res := route.Result
	path := make([]int64, 0, len(res.NodePath))
	for _, id := range res.NodePath {
		path = append(path, int64(id))
	}

	resp := &RouteResponse{
		Ok:            true,
		Algo:          res.Algorithm,
		StartID:       int64(route.Start.ID),
		EndID:         int64(route.End.ID),
		StartName:     route.Start.Name,
		EndName:       route.End.Name,
		Path:          path,
		PathNames:     route.Names,
		Dist:          util.RoundFloat(res.TotalDistance, 2),
		Time:          util.Milliseconds(route.Elapsed.Nanoseconds()),
		Visited:       res.VisitedCount,
		Coords:        datastructure.ToLatLonPairs(res.DetailedCoords),
		Polyline:      datastructure.CreatePolyline(res.DetailedCoords),
		NodeCount:     len(res.NodePath),
		WaypointCount: len(res.DetailedCoords),
	}
	if len(res.CurvedCoords) > 0 {
		resp.CurvedCoords = datastructure.ToLatLonPairs(res.CurvedCoords)
	}

	resp.Instructions = make([]InstructionResponse, 0, len(route.Instructions))
	for _, ins := range route.Instructions {
		resp.Instructions = append(resp.Instructions, InstructionResponse{
			Instruction: ins.Instruction,
			TurnType:    ins.TurnType,
			NodeID:      int64(ins.NodeID),
			Lat:         ins.Point.Lat,
			Lon:         ins.Point.Lon,
			Distance:    ins.Distance,
		})
	}
	return resp
}

// RoutesItem model info
//
//	@Description	one result of a batch request, either route or error is set
type RoutesItem struct {
	Index int            `json:"index"`
	Route *RouteResponse `json:"route,omitempty"`
	Error string         `json:"error,omitempty"`
}

// RoutesResponse model info
//
//	@Description	batch shortest paths response, results keep the request order
type RoutesResponse struct {
	Algo    string       `json:"algo"`
	Results []RoutesItem `json:"results"`
}

func RenderRoutesResponse(alg routingalgorithm.Algorithm, results []service.PairResult) *RoutesResponse {
	items := make([]RoutesItem, 0, len(results))
	for _, pr := range results {
		item := RoutesItem{Index: pr.Index}
		if pr.Err != nil {
			item.Error = userMessage(pr.Err)
		} else {
			item.Route = RenderRouteResponse(pr.Route)
		}
		items = append(items, item)
	}
	return &RoutesResponse{Algo: string(alg), Results: items}
}

// SnapRequest model info
//
//	@Description	query params snapping a coordinate to the nearest campus nodes
type SnapRequest struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
	K   int     `validate:"gte=1,lte=50"`
}

// SnappedNodeResponse model info
//
//	@Description	node near the query coordinate, distance in meters
type SnappedNodeResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance float64 `json:"distance"`
}

// SnapResponse model info
//
//	@Description	nearest node first
type SnapResponse struct {
	Node  SnappedNodeResponse   `json:"node"`
	Nodes []SnappedNodeResponse `json:"nodes"`
}

func RenderSnapResponse(snapped []snap.SnappedNode) *SnapResponse {
	nodes := make([]SnappedNodeResponse, 0, len(snapped))
	for _, s := range snapped {
		nodes = append(nodes, SnappedNodeResponse{
			ID:       int64(s.Node.ID),
			Name:     s.Node.Name,
			Lat:      s.Node.Lat,
			Lon:      s.Node.Lon,
			Distance: util.RoundFloat(s.Distance, 2),
		})
	}
	return &SnapResponse{Node: nodes[0], Nodes: nodes}
}

// NearbyRequest model info
//
//	@Description	query params nearby nodes from the h3 index. radius in km, 0 means nearest non-empty ring
type NearbyRequest struct {
	Lat    float64 `validate:"gte=-90,lte=90"`
	Lon    float64 `validate:"gte=-180,lte=180"`
	Radius float64 `validate:"gte=0,lte=10"`
}

// NearbyResponse model info
//
//	@Description	nearby nodes sorted by distance
type NearbyResponse struct {
	Nodes []SnappedNodeResponse `json:"nodes"`
}

func RenderNearbyResponse(lat, lon float64, nodes []datastructure.Node) *NearbyResponse {
	resp := make([]SnappedNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		resp = append(resp, SnappedNodeResponse{
			ID:       int64(n.ID),
			Name:     n.Name,
			Lat:      n.Lat,
			Lon:      n.Lon,
			Distance: util.RoundFloat(geo.CalculateHaversineDistance(lat, lon, n.Lat, n.Lon), 2),
		})
	}
	return &NearbyResponse{Nodes: resp}
}
