package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and are replaced by component defaults.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`

	// Memory manager.
	MaxMemoryBytes          int64   `json:"max_memory_bytes" yaml:"max_memory_bytes" toml:"max_memory_bytes"`
	MaxMemoryFraction       float64 `json:"max_memory_fraction" yaml:"max_memory_fraction" toml:"max_memory_fraction"`
	GCThreshold             float64 `json:"gc_threshold" yaml:"gc_threshold" toml:"gc_threshold"`
	PoolSize                int     `json:"pool_size" yaml:"pool_size" toml:"pool_size"`
	PoolBufferBytes         int     `json:"pool_buffer_bytes" yaml:"pool_buffer_bytes" toml:"pool_buffer_bytes"`
	SwapDir                 string  `json:"swap_dir" yaml:"swap_dir" toml:"swap_dir"`
	OptimizeIntervalSeconds int     `json:"optimize_interval_seconds" yaml:"optimize_interval_seconds" toml:"optimize_interval_seconds"`

	// Cache manager. An empty cache_l2_path disables the durable tier.
	CacheL1MaxEntries int    `json:"cache_l1_max_entries" yaml:"cache_l1_max_entries" toml:"cache_l1_max_entries"`
	CacheL1MaxBytes   int64  `json:"cache_l1_max_bytes" yaml:"cache_l1_max_bytes" toml:"cache_l1_max_bytes"`
	CacheL2Path       string `json:"cache_l2_path" yaml:"cache_l2_path" toml:"cache_l2_path"`
	CacheTTLSeconds   int    `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds" toml:"cache_ttl_seconds"`

	// Stream processor session defaults.
	StreamChunkSize      int  `json:"stream_chunk_size" yaml:"stream_chunk_size" toml:"stream_chunk_size"`
	StreamBufferCapacity int  `json:"stream_buffer_capacity" yaml:"stream_buffer_capacity" toml:"stream_buffer_capacity"`
	StreamBatching       bool `json:"stream_batching" yaml:"stream_batching" toml:"stream_batching"`
	StreamMaxBatchSize   int  `json:"stream_max_batch_size" yaml:"stream_max_batch_size" toml:"stream_max_batch_size"`
	StreamBatchTimeoutMS int  `json:"stream_batch_timeout_ms" yaml:"stream_batch_timeout_ms" toml:"stream_batch_timeout_ms"`

	// Operational surface.
	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
