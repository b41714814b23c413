package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"runnerd/internal/common/fsutil"
	"runnerd/internal/config"
	"runnerd/internal/httpapi"
	"runnerd/internal/runtime"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

const defaultAddr = ":8090"

type serveOptions struct {
	configPath  string
	addr        string
	logLevel    string
	swapDir     string
	cacheDB     string
	corsOrigins string
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "runnerd",
		Short:         "Resource and cache daemon for local model runners",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts := &serveOptions{}
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	// Flags with environment variable defaults
	f := serve.Flags()
	f.StringVar(&opts.configPath, "config", envStr("RUNNERD_CONFIG", ""), "Path to a .yaml, .json or .toml config file")
	f.StringVar(&opts.addr, "addr", envStr("RUNNERD_ADDR", ""), "HTTP listen address, e.g. :8090")
	f.StringVar(&opts.logLevel, "log-level", envStr("RUNNERD_LOG_LEVEL", ""), "Log level: debug|info|warn|error|off")
	f.StringVar(&opts.swapDir, "swap-dir", envStr("RUNNERD_SWAP_DIR", ""), "Directory for swapped model payloads")
	f.StringVar(&opts.cacheDB, "cache-db", envStr("RUNNERD_CACHE_DB", ""), "Sqlite file backing the durable cache tier (empty disables it)")
	f.StringVar(&opts.corsOrigins, "cors-origins", envStr("RUNNERD_CORS_ORIGINS", ""), "Comma-separated allowed CORS origins (empty disables CORS)")

	root.AddCommand(serve)
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the runnerd version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})
	return root
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	rt, err := runtime.New(cfg, logger)
	if err != nil {
		return err
	}
	prometheus.MustRegister(runtime.NewCollector(rt))

	// Canceled on shutdown so in-flight admin work and the optimizer loop
	// stop with the server.
	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpapi.SetLogger(logger.With().Str("component", "http").Logger())
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins,
		[]string{"GET", "DELETE", "OPTIONS"},
		[]string{"Accept", "Content-Type", "X-Log-Level"})

	go rt.Run(baseCtx)

	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	srv := &http.Server{Addr: addr, Handler: httpapi.NewMux(rt)}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("version", version).Msg("runnerd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		cancel()
		_ = rt.Close()
		return err
	case <-stop:
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	return rt.Close()
}

// loadConfig reads the config file, then lets flags override it. Without an
// explicit --config, a runnerd.{toml,yaml,json} in the working directory is
// picked up when present.
func loadConfig(opts *serveOptions) (config.Config, error) {
	var cfg config.Config
	path := opts.configPath
	if path == "" {
		for _, cand := range []string{"runnerd.toml", "runnerd.yaml", "runnerd.json"} {
			if fsutil.PathExists(cand) {
				path = cand
				break
			}
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.swapDir != "" {
		cfg.SwapDir = opts.swapDir
	}
	if opts.cacheDB != "" {
		cfg.CacheL2Path = opts.cacheDB
	}
	if origins := splitCSV(opts.corsOrigins); len(origins) > 0 {
		cfg.CORSEnabled = true
		cfg.CORSOrigins = origins
	}

	var err error
	if cfg.SwapDir, err = fsutil.ExpandHome(cfg.SwapDir); err != nil {
		return cfg, fmt.Errorf("swap dir: %w", err)
	}
	if cfg.CacheL2Path, err = fsutil.ExpandHome(cfg.CacheL2Path); err != nil {
		return cfg, fmt.Errorf("cache db: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch s := strings.ToLower(level); s {
	case "", "info":
	case "off", "disabled":
		lvl = zerolog.Disabled
	default:
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// splitCSV splits a comma-separated list, trimming whitespace and dropping
// empty items.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
