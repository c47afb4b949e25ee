package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/pprof"
	"strings"

	_ "github.com/lintang-b-s/campusnav/docs"
	"github.com/lintang-b-s/campusnav/pkg/config"
	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine/connectivity"
	"github.com/lintang-b-s/campusnav/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/campusnav/pkg/ingest"
	"github.com/lintang-b-s/campusnav/pkg/kv"
	"github.com/lintang-b-s/campusnav/pkg/server/rest"
	"github.com/lintang-b-s/campusnav/pkg/server/rest/service"
	"github.com/lintang-b-s/campusnav/pkg/snap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mymiddleware "github.com/lintang-b-s/campusnav/pkg/server/middleware"
)

var (
	configFile   = flag.String("config", "", "yaml config file, flags below override it")
	listenAddr   = flag.String("listenaddr", "", "server listen address")
	nodesFile    = flag.String("nodes", "", "nodes csv (id,name,lon,lat)")
	edgesFile    = flag.String("edges", "", "edges csv (from,to,weight,waypoints)")
	fromCSV      = flag.Bool("csv", false, "always build the graph from csv, skip the key-value snapshot")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")
	useRateLimit = flag.Bool("ratelimit", false, "use rate limit")
)

// bound padding in degrees (~1km) for snapping requests just outside the campus.
const boundPadding = 0.01

//	@title			campusnav API
//	@version		1.0
//	@description	campus navigation engine in go

//	@contact.name	lintang birda saputra
//	@description 	campus navigation engine in go. A* and Dijkstra shortest paths over a hand-authored campus graph

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	applyFlags(cfg)

	defaultAlg, err := routingalgorithm.ParseAlgorithm(cfg.Routing.DefaultAlgorithm)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := kv.OpenStore(cfg.KV.Backend, cfg.KV.Dir, cfg.KV.InMemory)
	if err != nil {
		log.Fatal(err)
	}
	kvDB := kv.NewKVDB(store)
	defer kvDB.Close()

	g, err := loadGraph(ctx, cfg, kvDB)
	if err != nil {
		log.Fatal(err)
	}
	recordMemProfile(memprofile, "load_graph")

	nodes := g.Nodes()
	snapper := snap.NewNodeSnapper(nodes)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Server.RateLimit {
		r.Use(mymiddleware.NewIPRateLimiter(cfg.Server.RatePerSecond, cfg.Server.RateBurst).Handler)
	}

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(cfg.Server.SwaggerURL), //The url pointing to API definition
	))

	navigatorSvc := service.NewNavigationService(g, kvDB, snapper, m, service.Options{
		BatchWorkers:  cfg.Routing.BatchWorkers,
		SearchTimeout: cfg.Routing.SearchTimeout,
		Bound:         ingest.NodesBound(nodes),
		BoundPadding:  boundPadding,
	})
	recordMemProfile(memprofile, "service_init")

	rest.NavigatorRouter(r, navigatorSvc, rest.HandlerOptions{
		DefaultAlgorithm: defaultAlg,
		MaxBatchPairs:    cfg.Routing.MaxBatchPairs,
	})

	fmt.Printf("\n campus graph ready: %d nodes, %d edges, default algorithm %s", g.NumNodes(), g.NumEdges(), defaultAlg)
	fmt.Printf("\nserver started at %s\n", cfg.Server.ListenAddr)

	log.Fatal(http.ListenAndServe(cfg.Server.ListenAddr, r))
}

func applyFlags(cfg *config.Config) {
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *nodesFile != "" {
		cfg.Data.NodesCSV = *nodesFile
	}
	if *edgesFile != "" {
		cfg.Data.EdgesCSV = *edgesFile
	}
	if *useRateLimit {
		cfg.Server.RateLimit = true
	}
}

/*
loadGraph prefers the snapshot written by cmd/preprocessing. without one (or with -csv) the graph
is built from the csv files and the h3 node index is rebuilt so /nearby keeps working.
*/
func loadGraph(ctx context.Context, cfg *config.Config, kvDB *kv.KVDB) (*datastructure.Graph, error) {
	if !*fromCSV {
		g, err := kvDB.LoadGraph()
		if err == nil {
			log.Printf("loaded graph snapshot from key-value db: %d nodes, %d edges", g.NumNodes(), g.NumEdges())
			warnDisconnected(connectivity.ConnectedComponents(g))
			return g, nil
		}
		if !errors.Is(err, kv.ErrKeyNotFound) {
			return nil, err
		}
		log.Printf("no graph snapshot in key-value db, building from csv")
	}

	g, _, _, err := ingest.LoadGraphFromFiles(ctx, cfg.Data.NodesCSV, cfg.Data.EdgesCSV, cfg.Data.OSMFile)
	if err != nil {
		return nil, err
	}
	warnDisconnected(connectivity.ConnectedComponents(g))

	if err := kvDB.BuildH3IndexedNodes(ctx, g.Nodes()); err != nil {
		return nil, err
	}
	return g, nil
}

func warnDisconnected(c *connectivity.Components) {
	if msg, ok := disconnectedWarning(c); ok {
		log.Print(msg)
	}
}

func disconnectedWarning(c *connectivity.Components) (string, bool) {
	if c.Count() <= 1 {
		return "", false
	}
	largest := c.Largest()
	return fmt.Sprintf("warning: campus graph has %d disconnected components, largest has %d nodes (root node %d), some routes will not exist",
		c.Count(), c.Size(largest), c.Root(largest)), true
}

// memProfileName inserts name before the .mprof suffix of base.
func memProfileName(base, name string) string {
	return strings.Replace(base, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
}

func recordMemProfile(memprofile *string, name string) {
	if *memprofile != "" {
		f, err := os.Create(memProfileName(*memprofile, name))
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

}
