package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nmax_memory_bytes: 1073741824\ngc_threshold: 0.6\nswap_dir: /tmp/swap\ncache_l2_path: /tmp/cache.db\nstream_batching: true\nlog_level: debug\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.MaxMemoryBytes != 1073741824 || cfg.GCThreshold != 0.6 || cfg.SwapDir != "/tmp/swap" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.CacheL2Path != "/tmp/cache.db" || !cfg.StreamBatching || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","pool_size":4,"pool_buffer_bytes":65536,"cache_l1_max_entries":50,"cache_ttl_seconds":300,"stream_chunk_size":2,"cors_enabled":true,"cors_origins":["https://a.example","https://b.example"]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.PoolSize != 4 || cfg.PoolBufferBytes != 65536 || cfg.CacheL1MaxEntries != 50 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.CacheTTLSeconds != 300 || cfg.StreamChunkSize != 2 || !cfg.CORSEnabled || len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nmax_memory_fraction=0.5\noptimize_interval_seconds=30\ncache_l1_max_bytes=1048576\nstream_max_batch_size=16\nstream_batch_timeout_ms=25\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.MaxMemoryFraction != 0.5 || cfg.OptimizeIntervalSeconds != 30 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.CacheL1MaxBytes != 1048576 || cfg.StreamMaxBatchSize != 16 || cfg.StreamBatchTimeoutMS != 25 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}
