package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/campusnav/pkg/server/rest/service"
	"github.com/lintang-b-s/campusnav/pkg/snap"
)

type NavigationService interface {
	ListNodes(ctx context.Context) []service.NodeInfo
	ShortestPath(ctx context.Context, start, end datastructure.NodeID, alg routingalgorithm.Algorithm) (service.RouteResult, error)
	ShortestPathByCoords(ctx context.Context, from, to datastructure.Coordinate, alg routingalgorithm.Algorithm) (service.RouteResult, error)
	ShortestPathMany(ctx context.Context, pairs [][2]datastructure.NodeID, alg routingalgorithm.Algorithm) ([]service.PairResult, error)
	Snap(ctx context.Context, lat, lon float64, k int) ([]snap.SnappedNode, error)
	Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]datastructure.Node, error)
}

const defaultSnapK = 1

type HandlerOptions struct {
	// DefaultAlgorithm used when a request leaves algo empty
	DefaultAlgorithm routingalgorithm.Algorithm
	MaxBatchPairs    int
}

type NavigationHandler struct {
	svc      NavigationService
	opts     HandlerOptions
	validate *validator.Validate
	trans    ut.Translator
}

func NewNavigationHandler(svc NavigationService, opts HandlerOptions) *NavigationHandler {
	if opts.DefaultAlgorithm == "" {
		opts.DefaultAlgorithm = routingalgorithm.AlgorithmAStar
	}
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &NavigationHandler{svc: svc, opts: opts, validate: validate, trans: trans}
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, opts HandlerOptions) {
	handler := NewNavigationHandler(svc, opts)

	r.Group(func(r chi.Router) {
		r.Route("/api/campus", func(r chi.Router) {
			r.Get("/nodes", handler.Nodes)
			r.Post("/route", handler.ShortestPath)
			r.Post("/route/coords", handler.ShortestPathByCoords)
			r.Post("/routes", handler.ShortestPaths)
			r.Get("/snap", handler.Snap)
			r.Get("/nearby", handler.Nearby)
		})
	})
}

// validateStruct renders the validation error and returns false if data is invalid.
func (h *NavigationHandler) validateStruct(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	if err := h.validate.Struct(data); err != nil {
		vv := translateError(err, h.trans)
		render.Render(w, r, ErrValidation(err, vv))
		return false
	}
	return true
}

// Nodes
//
//	@Summary		list all campus graph nodes
//	@Description	list all campus graph nodes sorted by id, with their degree
//	@Tags			navigations
//	@Produce		application/json
//	@Router			/campus/nodes [get]
//	@Success		200	{array}	NodeResponse
func (h *NavigationHandler) Nodes(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderNodesResponse(h.svc.ListNodes(r.Context())))
}

// ShortestPath
//
//	@Summary		shortest path between two campus nodes
//	@Description	shortest path between two campus nodes using a* (default) or dijkstra. dijkstra also returns curved_coords when the route has no real road geometry
//	@Tags			navigations
//	@Param			body	body	RouteRequest	true	"request body shortest path"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/campus/route [post]
//	@Success		200	{object}	RouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateStruct(w, r, *data) {
		return
	}
	if data.Algo == "" {
		data.algorithm = h.opts.DefaultAlgorithm
	}

	route, err := h.svc.ShortestPath(r.Context(), datastructure.NodeID(*data.Start), datastructure.NodeID(*data.End), data.algorithm)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(route))
}

// ShortestPathByCoords
//
//	@Summary		shortest path between two coordinates
//	@Description	snaps both coordinates to the nearest campus nodes that can reach each other, then routes between them
//	@Tags			navigations
//	@Param			body	body	CoordRouteRequest	true	"request body shortest path between coordinates"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/campus/route/coords [post]
//	@Success		200	{object}	RouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) ShortestPathByCoords(w http.ResponseWriter, r *http.Request) {
	data := &CoordRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateStruct(w, r, *data) {
		return
	}
	if data.Algo == "" {
		data.algorithm = h.opts.DefaultAlgorithm
	}

	from := datastructure.NewCoordinate(data.From.Lat, data.From.Lon)
	to := datastructure.NewCoordinate(data.To.Lat, data.To.Lon)
	route, err := h.svc.ShortestPathByCoords(r.Context(), from, to, data.algorithm)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(route))
}

// ShortestPaths
//
//	@Summary		batch shortest paths
//	@Description	independent shortest path searches computed concurrently. a failed pair carries its error and does not fail the batch
//	@Tags			navigations
//	@Param			body	body	RoutesRequest	true	"request body batch shortest paths"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/campus/routes [post]
//	@Success		200	{object}	RoutesResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) ShortestPaths(w http.ResponseWriter, r *http.Request) {
	data := &RoutesRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateStruct(w, r, *data) {
		return
	}
	if h.opts.MaxBatchPairs > 0 && len(data.Pairs) > h.opts.MaxBatchPairs {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("too many pairs: %d, max %d", len(data.Pairs), h.opts.MaxBatchPairs)))
		return
	}
	if data.Algo == "" {
		data.algorithm = h.opts.DefaultAlgorithm
	}

	results, err := h.svc.ShortestPathMany(r.Context(), data.nodePairs(), data.algorithm)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRoutesResponse(data.algorithm, results))
}

// Snap
//
//	@Summary		snap a coordinate to the nearest campus node
//	@Description	nearest campus node (and up to k candidates) to a coordinate, distance in meters
//	@Tags			navigations
//	@Param			lat	query	number	true	"latitude"
//	@Param			lon	query	number	true	"longitude"
//	@Param			k	query	integer	false	"number of candidates, default 1"
//	@Produce		application/json
//	@Router			/campus/snap [get]
//	@Success		200	{object}	SnapResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) Snap(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseLatLon(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	k := defaultSnapK
	if ks := r.URL.Query().Get("k"); ks != "" {
		k, err = strconv.Atoi(ks)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid k %q", ks)))
			return
		}
	}

	data := SnapRequest{Lat: lat, Lon: lon, K: k}
	if !h.validateStruct(w, r, data) {
		return
	}

	snapped, err := h.svc.Snap(r.Context(), data.Lat, data.Lon, data.K)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderSnapResponse(snapped))
}

// Nearby
//
//	@Summary		campus nodes near a coordinate
//	@Description	nodes from the nearest non-empty h3 cell ring, or every node within radius km when radius is set
//	@Tags			navigations
//	@Param			lat		query	number	true	"latitude"
//	@Param			lon		query	number	true	"longitude"
//	@Param			radius	query	number	false	"radius in km"
//	@Produce		application/json
//	@Router			/campus/nearby [get]
//	@Success		200	{object}	NearbyResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseLatLon(r)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	radius := 0.0
	if rs := r.URL.Query().Get("radius"); rs != "" {
		radius, err = strconv.ParseFloat(rs, 64)
		if err != nil {
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid radius %q", rs)))
			return
		}
	}

	data := NearbyRequest{Lat: lat, Lon: lon, Radius: radius}
	if !h.validateStruct(w, r, data) {
		return
	}

	nodes, err := h.svc.Nearby(r.Context(), data.Lat, data.Lon, data.Radius)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderNearbyResponse(data.Lat, data.Lon, nodes))
}

func parseLatLon(r *http.Request) (float64, float64, error) {
	q := r.URL.Query()
	if q.Get("lat") == "" || q.Get("lon") == "" {
		return 0, 0, errors.New("lat and lon are required")
	}
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lat %q", q.Get("lat"))
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid lon %q", q.Get("lon"))
	}
	return lat, lon, nil
}
