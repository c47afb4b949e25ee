package osmparser

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

// POI named openstreetmap node.
type POI struct {
	ID      int64
	Name    string
	Address string
	Lat     float64
	Lon     float64
}

var (
	// nodes carrying only these keys are street furniture, not places
	skipNodeKeys = map[string]struct{}{
		"barrier":         {},
		"ford":            {},
		"crossing":        {},
		"traffic_signals": {},
		"street_lamp":     {},
		"highway":         {},
	}
)

type OsmParser struct {
	pbf   bool
	procs int
}

// NewOSMPOIParser pbf selects the protobuf reader, otherwise the input is osm xml.
func NewOSMPOIParser(pbf bool) *OsmParser {
	return &OsmParser{pbf: pbf}
}

type scanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

func (p *OsmParser) newScanner(ctx context.Context, r io.Reader) scanner {
	if p.pbf {
		return osmpbf.New(ctx, r, p.procs)
	}
	return osmxml.New(ctx, r)
}

// Parse every node with a name tag, in file order. ways and relations are skipped.
func (p *OsmParser) Parse(ctx context.Context, r io.Reader) ([]POI, error) {
	s := p.newScanner(ctx, r)
	defer s.Close()

	pois := make([]POI, 0)
	countNodes := 0
	for s.Scan() {
		o := s.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}

		if (countNodes+1)%50000 == 0 {
			log.Printf("processing openstreetmap nodes: %d...", countNodes+1)
		}
		countNodes++

		node := o.(*osm.Node)
		if !acceptOsmNode(node) {
			continue
		}
		pois = append(pois, POI{
			ID:      int64(node.ID),
			Name:    strings.TrimSpace(node.Tags.Find("name")),
			Address: address(node.Tags),
			Lat:     node.Lat,
			Lon:     node.Lon,
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan osm: %w", err)
	}

	log.Printf("total osm nodes: %d, named places: %d", countNodes, len(pois))
	return pois, nil
}

// acceptOsmNode named nodes, except the ones whose other keys are all street furniture.
func acceptOsmNode(node *osm.Node) bool {
	if strings.TrimSpace(node.Tags.Find("name")) == "" {
		return false
	}
	furniture := false
	for _, tag := range node.Tags {
		if tag.Key == "name" || strings.HasPrefix(tag.Key, "name:") {
			continue
		}
		if _, ok := skipNodeKeys[tag.Key]; !ok {
			return true
		}
		furniture = true
	}
	return !furniture
}

func address(tags osm.Tags) string {
	if full := tags.Find("addr:full"); full != "" {
		return full
	}
	parts := []string{}
	for _, key := range []string{"addr:street", "addr:housenumber", "addr:city"} {
		if v := tags.Find(key); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
