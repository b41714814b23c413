package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := rootCmd()
	serve, _, err := root.Find([]string{"serve"})
	if err != nil || serve.Name() != "serve" {
		t.Fatalf("serve subcommand not registered: %v", err)
	}
	for _, name := range []string{"config", "addr", "log-level", "swap-dir", "cache-db", "cors-origins"} {
		if serve.Flags().Lookup(name) == nil {
			t.Fatalf("serve is missing the --%s flag", name)
		}
	}
	ver, _, err := root.Find([]string{"version"})
	if err != nil || ver.Name() != "version" {
		t.Fatalf("version subcommand not registered: %v", err)
	}
}

func TestLoadConfigFlagOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := "addr: \":7000\"\nlog_level: debug\nswap_dir: /tmp/swap-a\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(&serveOptions{configPath: path, addr: ":7001"})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr != ":7001" {
		t.Fatalf("flag must override file, got addr %q", cfg.Addr)
	}
	if cfg.LogLevel != "debug" || cfg.SwapDir != "/tmp/swap-a" {
		t.Fatalf("file values lost: %+v", cfg)
	}
}

func TestLoadConfigCORSFromFlag(t *testing.T) {
	cfg, err := loadConfig(&serveOptions{corsOrigins: "http://a.example, http://b.example"})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.CORSEnabled || len(cfg.CORSOrigins) != 2 {
		t.Fatalf("cors flag not applied: %+v", cfg)
	}
	if cfg.CORSOrigins[0] != "http://a.example" {
		t.Fatalf("unexpected origin %q", cfg.CORSOrigins[0])
	}
}

func TestLoadConfigBadPath(t *testing.T) {
	if _, err := loadConfig(&serveOptions{configPath: "/does/not/exist.yaml"}); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestLoadConfigDiscoversLocalFile(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })

	if err := os.WriteFile(filepath.Join(dir, "runnerd.yaml"), []byte("addr: \":7100\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadConfig(&serveOptions{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Addr != ":7100" {
		t.Fatalf("local config not discovered: %+v", cfg)
	}
}

func TestLoadConfigExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	cfg, err := loadConfig(&serveOptions{swapDir: "~/runnerd-swap"})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwapDir != filepath.Join(home, "runnerd-swap") {
		t.Fatalf("home not expanded: %q", cfg.SwapDir)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := newLogger(c.in).GetLevel(); got != c.want {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
	}
}
