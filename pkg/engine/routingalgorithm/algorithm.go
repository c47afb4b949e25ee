package routingalgorithm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/campusnav/pkg/datastructure"
)

var ErrUnknownAlgorithm = errors.New("unknown routing algorithm")

type Algorithm string

const (
	AlgorithmAStar    Algorithm = "astar"
	AlgorithmDijkstra Algorithm = "dijkstra"
)

type Searcher interface {
	Search(ctx context.Context, start, end datastructure.NodeID) (SearchResult, error)
	Name() string
}

// ParseAlgorithm case insensitive, empty means astar. "a*" and "a_star" are accepted too.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "astar", "a*", "a_star":
		return AlgorithmAStar, nil
	case "dijkstra":
		return AlgorithmDijkstra, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownAlgorithm)
	}
}

func NewSearcher(alg Algorithm, g Graph) (Searcher, error) {
	switch alg {
	case AlgorithmAStar:
		return NewAStar(g), nil
	case AlgorithmDijkstra:
		return NewDijkstra(g), nil
	default:
		return nil, fmt.Errorf("%q: %w", alg, ErrUnknownAlgorithm)
	}
}
