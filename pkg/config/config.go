package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	KV      KVConfig      `yaml:"kv"`
	Routing RoutingConfig `yaml:"routing"`
}

type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	SwaggerURL string `yaml:"swagger_url"`
	RateLimit  bool   `yaml:"rate_limit"`
	// requests per second per client ip
	RatePerSecond float64 `yaml:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst"`
}

type DataConfig struct {
	NodesCSV string `yaml:"nodes_csv"`
	EdgesCSV string `yaml:"edges_csv"`
	// optional osm xml/pbf file with named nodes, used when NodesCSV is empty
	OSMFile string `yaml:"osm_file"`
}

type KVConfig struct {
	Backend  string `yaml:"backend"` // badger | pebble
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
}

type RoutingConfig struct {
	DefaultAlgorithm string        `yaml:"default_algorithm"`
	BatchWorkers     int           `yaml:"batch_workers"`
	SearchTimeout    time.Duration `yaml:"search_timeout"`
	MaxBatchPairs    int           `yaml:"max_batch_pairs"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:    ":5000",
			SwaggerURL:    "http://localhost:5000/swagger/doc.json",
			RatePerSecond: 10,
			RateBurst:     20,
		},
		Data: DataConfig{
			NodesCSV: "data/nodes.csv",
			EdgesCSV: "data/edges.csv",
		},
		KV: KVConfig{
			Backend: "badger",
			Dir:     "./campusnav_db",
		},
		Routing: RoutingConfig{
			DefaultAlgorithm: "astar",
			BatchWorkers:     8,
			SearchTimeout:    5 * time.Second,
			MaxBatchPairs:    100,
		},
	}
}

// Load reads a yaml config on top of Default. an empty path gives the defaults.
// ${ENV_VAR} in path fields is expanded.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) expandEnvVars() {
	c.Data.NodesCSV = os.ExpandEnv(c.Data.NodesCSV)
	c.Data.EdgesCSV = os.ExpandEnv(c.Data.EdgesCSV)
	c.Data.OSMFile = os.ExpandEnv(c.Data.OSMFile)
	c.KV.Dir = os.ExpandEnv(c.KV.Dir)
}

func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return errors.New("server.listen_addr is required")
	}
	switch c.KV.Backend {
	case "badger", "pebble":
	default:
		return fmt.Errorf("kv.backend must be badger or pebble, got %q", c.KV.Backend)
	}
	if !c.KV.InMemory && c.KV.Dir == "" {
		return errors.New("kv.dir is required unless kv.in_memory is set")
	}
	if c.Routing.BatchWorkers < 1 {
		return fmt.Errorf("routing.batch_workers must be positive, got %d", c.Routing.BatchWorkers)
	}
	if c.Routing.MaxBatchPairs < 1 {
		return fmt.Errorf("routing.max_batch_pairs must be positive, got %d", c.Routing.MaxBatchPairs)
	}
	if c.Server.RateLimit && (c.Server.RatePerSecond <= 0 || c.Server.RateBurst < 1) {
		return errors.New("server.rate_per_second and server.rate_burst must be positive when rate_limit is on")
	}
	return nil
}
