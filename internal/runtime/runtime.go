// Package runtime composes the model memory manager, the tiered result cache
// and the stream processor into one unit the daemon and the HTTP layer talk
// to. Each component stays independently constructible; this package only
// owns wiring, lifecycle and aggregate status.
package runtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"runnerd/internal/cache"
	"runnerd/internal/config"
	"runnerd/internal/memory"
	"runnerd/internal/stream"
	"runnerd/pkg/types"
)

// State represents the lifecycle state of the runtime.
type State string

const (
	StateReady  State = "ready"
	StateClosed State = "closed"
)

// Runtime owns one instance of each core component.
type Runtime struct {
	log     zerolog.Logger
	mem     *memory.Manager
	cache   *cache.Manager
	streams *stream.Processor

	mu        sync.RWMutex
	state     State
	startTime time.Time
}

// New builds the three components from the daemon configuration. Zero config
// fields fall through to each component's package defaults.
func New(cfg config.Config, logger zerolog.Logger) (*Runtime, error) {
	mem := memory.New(memory.Config{
		MaxBytes:         cfg.MaxMemoryBytes,
		MaxFraction:      cfg.MaxMemoryFraction,
		GCThreshold:      cfg.GCThreshold,
		PoolSize:         cfg.PoolSize,
		PoolBufferBytes:  cfg.PoolBufferBytes,
		SwapDir:          cfg.SwapDir,
		OptimizeInterval: time.Duration(cfg.OptimizeIntervalSeconds) * time.Second,
		Logger:           logger.With().Str("component", "memory").Logger(),
	})

	cacheMgr, err := cache.New(cache.Config{
		L1MaxEntries: cfg.CacheL1MaxEntries,
		L1MaxBytes:   cfg.CacheL1MaxBytes,
		L2Enabled:    cfg.CacheL2Path != "",
		L2Path:       cfg.CacheL2Path,
		DefaultTTL:   time.Duration(cfg.CacheTTLSeconds) * time.Second,
		Logger:       logger.With().Str("component", "cache").Logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("build cache: %w", err)
	}

	streams := stream.New(stream.Config{
		Defaults: stream.SessionConfig{
			ChunkSize:      cfg.StreamChunkSize,
			BufferCapacity: cfg.StreamBufferCapacity,
			Batching:       cfg.StreamBatching,
			MaxBatchSize:   cfg.StreamMaxBatchSize,
			BatchTimeout:   time.Duration(cfg.StreamBatchTimeoutMS) * time.Millisecond,
		},
		Logger: logger.With().Str("component", "stream").Logger(),
	})

	return &Runtime{
		log:       logger,
		mem:       mem,
		cache:     cacheMgr,
		streams:   streams,
		state:     StateReady,
		startTime: time.Now(),
	}, nil
}

// Memory returns the model memory manager.
func (r *Runtime) Memory() *memory.Manager { return r.mem }

// Cache returns the tiered result cache.
func (r *Runtime) Cache() *cache.Manager { return r.cache }

// Streams returns the stream processor.
func (r *Runtime) Streams() *stream.Processor { return r.streams }

// Run drives the periodic memory optimization pass until ctx is done. It
// blocks; the daemon starts it on its own goroutine.
func (r *Runtime) Run(ctx context.Context) {
	r.mem.Run(ctx)
}

// Ready reports whether the runtime is serving.
func (r *Runtime) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state == StateReady
}

// Status assembles the aggregate snapshot for /status.
func (r *Runtime) Status() types.StatusResponse {
	r.mu.RLock()
	state := r.state
	start := r.startTime
	r.mu.RUnlock()

	// Bound the durable-tier size queries so a slow disk cannot hang a
	// status probe.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	now := time.Now()
	return types.StatusResponse{
		State:          string(state),
		UptimeSeconds:  int64(now.Sub(start).Seconds()),
		ServerTimeUnix: now.Unix(),
		Memory:         r.mem.Stats(),
		Cache:          r.cache.Stats(ctx),
		Streams:        r.streams.Stats(),
	}
}

// CacheDelete removes one entry from every cache tier.
func (r *Runtime) CacheDelete(ctx context.Context, key string) error {
	return r.cache.Delete(ctx, key)
}

// CacheClear empties every cache tier.
func (r *Runtime) CacheClear(ctx context.Context) error {
	return r.cache.Clear(ctx)
}

// Close stops serving: live stream sessions are aborted and drained, and the
// cache tiers are closed. The swap store is left durable so a restart can
// restore swapped payloads. Repeat calls are no-ops.
func (r *Runtime) Close() error {
	r.mu.Lock()
	if r.state == StateClosed {
		r.mu.Unlock()
		return nil
	}
	r.state = StateClosed
	r.mu.Unlock()

	r.streams.Close()
	if err := r.cache.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	r.log.Info().Msg("runtime closed")
	return nil
}
