package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"sync"

	"github.com/lintang-b-s/campusnav/pkg/config"
	"github.com/lintang-b-s/campusnav/pkg/ingest"
	"github.com/lintang-b-s/campusnav/pkg/kv"
)

var (
	configFile = flag.String("config", "", "yaml config file, flags below override it")
	nodesFile  = flag.String("nodes", "", "nodes csv (id,name,lon,lat)")
	edgesFile  = flag.String("edges", "", "edges csv (from,to,weight,waypoints)")
	osmFile    = flag.String("osm", "", "openstreetmap xml/pbf with named campus nodes, used when there is no nodes csv")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		// ./bin/campusnav-preprocessing -cpuprofile=campusnavcpu.prof -memprofile=campusnavmem.mprof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *nodesFile != "" {
		cfg.Data.NodesCSV = *nodesFile
	}
	if *edgesFile != "" {
		cfg.Data.EdgesCSV = *edgesFile
	}
	if *osmFile != "" {
		cfg.Data.OSMFile = *osmFile
		if *nodesFile == "" {
			cfg.Data.NodesCSV = ""
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, _, stats, err := ingest.LoadGraphFromFiles(ctx, cfg.Data.NodesCSV, cfg.Data.EdgesCSV, cfg.Data.OSMFile)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("campus bound: %v", stats.Bound)
	recordMemProfile(memprofile, "building_graph")

	store, err := kv.OpenStore(cfg.KV.Backend, cfg.KV.Dir, cfg.KV.InMemory)
	if err != nil {
		log.Fatal(err)
	}
	kvDB := kv.NewKVDB(store)
	defer kvDB.Close()

	var (
		wg       sync.WaitGroup
		indexErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		indexErr = kvDB.BuildH3IndexedNodes(ctx, g.Nodes())
	}()

	log.Printf("Saving graph snapshot to key-value db...")
	if err := kvDB.SaveGraph(ctx, g.Snapshot()); err != nil {
		cancel()
		wg.Wait()
		log.Fatal(err)
	}

	wg.Wait()
	if indexErr != nil {
		log.Fatalf("error building h3 index: %v", indexErr)
	}
	recordMemProfile(memprofile, "finish_preprocessing")

	fmt.Printf("\n campus graph saved to %s (%s)\n", cfg.KV.Dir, cfg.KV.Backend)
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
