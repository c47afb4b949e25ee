package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	searches       *prometheus.CounterVec
	searchVisited  *prometheus.HistogramVec
	searchDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campusnav",
			Name:      "http_requests_total",
			Help:      "Number of http requests by route, method and status code.",
		}, []string{"path", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campusnav",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of http requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campusnav",
			Name:      "route_searches_total",
			Help:      "Number of shortest path searches by algorithm and outcome.",
		}, []string{"algorithm", "outcome"}),
		searchVisited: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campusnav",
			Name:      "route_search_visited_nodes",
			Help:      "Nodes settled per shortest path search.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1 to ~8k nodes
		}, []string{"algorithm"}),
		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "campusnav",
			Name:      "route_search_duration_seconds",
			Help:      "Duration of shortest path searches.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 14), // 10us to ~160ms
		}, []string{"algorithm"}),
	}
	reg.MustRegister(m.httpRequests, m.httpDuration, m.searches, m.searchVisited, m.searchDuration)
	return m
}

func (m *Metrics) ObserveSearch(alg string, found bool, visited int, elapsed time.Duration) {
	outcome := "found"
	if !found {
		outcome = "no_path"
	}
	m.searches.WithLabelValues(alg, outcome).Inc()
	m.searchVisited.WithLabelValues(alg).Observe(float64(visited))
	m.searchDuration.WithLabelValues(alg).Observe(elapsed.Seconds())
}

// PromeHttpMiddleware counts requests by chi route pattern, so path params do not blow up cardinality.
func PromeHttpMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.httpRequests.WithLabelValues(path, r.Method, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
