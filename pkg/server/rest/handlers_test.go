package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/campusnav/pkg/server/rest/service"
	"github.com/lintang-b-s/campusnav/pkg/snap"
)

type stubKV struct {
	nodes []datastructure.Node
}

func (s *stubKV) GetNearbyNodes(lat, lon float64) ([]datastructure.Node, error) {
	return s.nodes, nil
}

func (s *stubKV) GetNodesWithinRadius(lat, lon, radiusKm float64) ([]datastructure.Node, error) {
	return s.nodes[:1], nil
}

// 0 gate -- 1 library -- 2 canteen, 3 dorm is isolated
func newTestRouter(t *testing.T, withKV bool, defaultAlg ...routingalgorithm.Algorithm) (*chi.Mux, *Metrics) {
	t.Helper()
	g := datastructure.NewGraph()
	g.AddNode(0, "gate", 102.8561, 24.8251)
	g.AddNode(1, "library", 102.8565, 24.8262)
	g.AddNode(2, "canteen", 102.8580, 24.8270)
	g.AddNode(3, "dorm", 102.8620, 24.8300)
	require.NoError(t, g.AddEdge(0, 1, 130, nil))
	require.NoError(t, g.AddEdge(1, 2, 190, []datastructure.Coordinate{
		datastructure.NewCoordinate(24.8262, 102.8565),
		datastructure.NewCoordinate(24.8266, 102.8572),
		datastructure.NewCoordinate(24.8270, 102.8580),
	}))

	m := NewMetrics(prometheus.NewRegistry())
	var kvDB service.KVDB
	if withKV {
		kvDB = &stubKV{nodes: g.Nodes()}
	}
	svc := service.NewNavigationService(g, kvDB, snap.NewNodeSnapper(g.Nodes()), m, service.Options{
		BatchWorkers:  2,
		SearchTimeout: time.Second,
	})

	r := chi.NewRouter()
	r.Use(PromeHttpMiddleware(m))
	opts := HandlerOptions{MaxBatchPairs: 3}
	if len(defaultAlg) > 0 {
		opts.DefaultAlgorithm = defaultAlg[0]
	}
	NavigatorRouter(r, svc, opts)
	return r, m
}

func doJSON(t *testing.T, r http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestNodes(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(t, r, http.MethodGet, "/api/campus/nodes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var nodes []NodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nodes))
	require.Len(t, nodes, 4)
	assert.Equal(t, int64(0), nodes[0].ID)
	assert.Equal(t, "gate", nodes[0].Name)
	assert.Equal(t, 2, nodes[1].Degree)
	assert.Equal(t, 0, nodes[3].Degree)
	assert.Equal(t, 0, nodes[2].Component)
	assert.Equal(t, 1, nodes[3].Component)
}

func TestShortestPathHandler(t *testing.T) {
	r, m := newTestRouter(t, true)

	rec := doJSON(t, r, http.MethodPost, "/api/campus/route", `{"start":0,"end":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.Equal(t, "astar", resp.Algo)
	assert.Equal(t, int64(0), resp.StartID)
	assert.Equal(t, "canteen", resp.EndName)
	assert.Equal(t, []int64{0, 1, 2}, resp.Path)
	assert.Equal(t, []string{"gate", "library", "canteen"}, resp.PathNames)
	assert.Equal(t, 320.0, resp.Dist)
	assert.Equal(t, 3, resp.NodeCount)
	// straight edge 2 points + polyline 3 points, shared vertex dropped
	assert.Equal(t, 4, resp.WaypointCount)
	require.Len(t, resp.Coords, 4)
	assert.Equal(t, []float64{24.8251, 102.8561}, resp.Coords[0])
	assert.Equal(t, []float64{24.8270, 102.8580}, resp.Coords[3])
	assert.Empty(t, resp.CurvedCoords)
	assert.NotEmpty(t, resp.Polyline)
	require.NotEmpty(t, resp.Instructions)
	assert.Equal(t, "START", resp.Instructions[0].TurnType)
	assert.Equal(t, "Arrive at canteen", resp.Instructions[len(resp.Instructions)-1].Instruction)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.searches.WithLabelValues("astar", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/campus/route", http.MethodPost, "200")))
}

func TestShortestPathHandlerDijkstraCurve(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(t, r, http.MethodPost, "/api/campus/route", RouteRequest{Start: ptr(0), End: ptr(1), Algo: "Dijkstra"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dijkstra", resp.Algo)
	assert.Equal(t, 130.0, resp.Dist)
	// a single segment has nothing to bend
	assert.Len(t, resp.CurvedCoords, 2)
	assert.Equal(t, resp.Coords, resp.CurvedCoords)
}

func TestShortestPathHandlerDefaultAlgorithm(t *testing.T) {
	r, _ := newTestRouter(t, true, routingalgorithm.AlgorithmDijkstra)

	rec := doJSON(t, r, http.MethodPost, "/api/campus/route", `{"start":2,"end":0}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dijkstra", resp.Algo)
	assert.Equal(t, []int64{2, 1, 0}, resp.Path)
	// 2-1 has real geometry so no curve
	assert.Empty(t, resp.CurvedCoords)
}

func TestShortestPathByCoordsHandler(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(t, r, http.MethodPost, "/api/campus/route/coords",
		`{"from":{"lat":24.8252,"lon":102.8561},"to":{"lat":24.8270,"lon":102.8579}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []int64{0, 1, 2}, resp.Path)

	rec = doJSON(t, r, http.MethodPost, "/api/campus/route/coords", `{"from":{"lat":24.8252,"lon":102.8561}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/campus/route/coords",
		`{"from":{"lat":124.8252,"lon":102.8561},"to":{"lat":24.8270,"lon":102.8579}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShortestPathHandlerErrors(t *testing.T) {
	r, _ := newTestRouter(t, true)

	cases := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"unreachable", `{"start":0,"end":3}`, http.StatusNotFound, "no path from gate (0) to dorm (3)"},
		{"unknown start", `{"start":42,"end":3}`, http.StatusNotFound, "start node 42 not found"},
		{"missing end", `{"start":0}`, http.StatusBadRequest, ""},
		{"unknown algorithm", `{"start":0,"end":1,"algo":"bfs"}`, http.StatusBadRequest, ""},
		{"malformed body", `{"start":`, http.StatusBadRequest, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, r, http.MethodPost, "/api/campus/route", tc.body)
			require.Equal(t, tc.wantCode, rec.Code, rec.Body.String())

			var resp ErrResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.StatusText)
			if tc.wantErr != "" {
				assert.Equal(t, tc.wantErr, resp.ErrorText)
			}
		})
	}
}

func TestShortestPathHandlerValidationMessages(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(t, r, http.MethodPost, "/api/campus/route", `{"end":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ErrValidation, 1)
	assert.Contains(t, resp.ErrValidation[0], "Start")
}

func TestShortestPathsHandler(t *testing.T) {
	r, _ := newTestRouter(t, true)

	body := RoutesRequest{
		Pairs: []RoutePair{
			{Start: ptr(0), End: ptr(2)},
			{Start: ptr(0), End: ptr(3)},
			{Start: ptr(2), End: ptr(1)},
		},
	}
	rec := doJSON(t, r, http.MethodPost, "/api/campus/routes", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RoutesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "astar", resp.Algo)
	require.Len(t, resp.Results, 3)

	for i, item := range resp.Results {
		assert.Equal(t, i, item.Index)
	}
	require.NotNil(t, resp.Results[0].Route)
	assert.Equal(t, 320.0, resp.Results[0].Route.Dist)
	assert.Nil(t, resp.Results[1].Route)
	assert.Equal(t, "no path from gate (0) to dorm (3)", resp.Results[1].Error)
	require.NotNil(t, resp.Results[2].Route)
	assert.Equal(t, []int64{2, 1}, resp.Results[2].Route.Path)
}

func TestShortestPathsHandlerLimits(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(t, r, http.MethodPost, "/api/campus/routes", `{"pairs":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	pairs := make([]RoutePair, 4)
	for i := range pairs {
		pairs[i] = RoutePair{Start: ptr(0), End: ptr(1)}
	}
	rec = doJSON(t, r, http.MethodPost, "/api/campus/routes", RoutesRequest{Pairs: pairs})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too many pairs")
}

func TestSnapHandler(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(t, r, http.MethodGet, "/api/campus/snap?lat=24.82621&lon=102.85651&k=2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SnapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Node.ID)
	assert.Less(t, resp.Node.Distance, 5.0)
	require.Len(t, resp.Nodes, 2)
	assert.Equal(t, int64(0), resp.Nodes[1].ID)
}

func TestSnapHandlerBadInput(t *testing.T) {
	r, _ := newTestRouter(t, true)

	for _, target := range []string{
		"/api/campus/snap?lat=24.8",
		"/api/campus/snap?lat=abc&lon=102.8",
		"/api/campus/snap?lat=95&lon=102.8",
		"/api/campus/snap?lat=24.8&lon=102.8&k=0",
	} {
		rec := doJSON(t, r, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestNearbyHandler(t *testing.T) {
	r, _ := newTestRouter(t, true)

	rec := doJSON(t, r, http.MethodGet, "/api/campus/nearby?lat=24.8251&lon=102.8561", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp NearbyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Nodes, 4)
	assert.Equal(t, 0.0, resp.Nodes[0].Distance)

	rec = doJSON(t, r, http.MethodGet, "/api/campus/nearby?lat=24.8251&lon=102.8561&radius=0.5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Nodes, 1)
}

func TestNearbyHandlerWithoutIndex(t *testing.T) {
	r, _ := newTestRouter(t, false)

	rec := doJSON(t, r, http.MethodGet, "/api/campus/nearby?lat=24.8251&lon=102.8561", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "nearby index not loaded"))
}

func ptr(v int64) *int64 {
	return &v
}
