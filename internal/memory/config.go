package memory

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"runnerd/internal/system"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxFraction      = 0.8
	defaultGCThreshold      = 0.75
	defaultPoolSize         = 10
	defaultPoolBufferBytes  = 1 << 20
	defaultOptimizeInterval = time.Minute

	// Ceiling used when the host memory total cannot be determined.
	fallbackMaxBytes = 4 << 30
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// MaxBytes is the absolute memory ceiling. When zero it is derived as
	// MaxFraction of the host's total RAM.
	MaxBytes int64
	// MaxFraction of host RAM used when MaxBytes is zero.
	MaxFraction float64
	// GCThreshold is the fraction of MaxBytes at which the optimization
	// pass starts reshaping payloads.
	GCThreshold float64
	// PoolSize is the buffer pool slot count.
	PoolSize int
	// PoolBufferBytes is the capacity of each pool slot.
	PoolBufferBytes int
	// SwapDir backs the default file swap store when Swap is nil.
	SwapDir string
	// OptimizeInterval is the period of the Run loop.
	OptimizeInterval time.Duration
	// Compressor reshapes payloads; defaults to zstd.
	Compressor Compressor
	// Swap persists payloads; defaults to a file store under SwapDir.
	Swap SwapStore
	// Logger for reshaping events; defaults to a no-op logger.
	Logger zerolog.Logger
}

// New constructs a Manager from Config, applying package defaults.
func New(cfg Config) *Manager {
	if cfg.MaxFraction <= 0 || cfg.MaxFraction > 1 {
		cfg.MaxFraction = defaultMaxFraction
	}
	if cfg.GCThreshold <= 0 || cfg.GCThreshold > 1 {
		cfg.GCThreshold = defaultGCThreshold
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = defaultPoolSize
	}
	if cfg.PoolBufferBytes <= 0 {
		cfg.PoolBufferBytes = defaultPoolBufferBytes
	}
	if cfg.OptimizeInterval <= 0 {
		cfg.OptimizeInterval = defaultOptimizeInterval
	}
	if cfg.Compressor == nil {
		cfg.Compressor = ZstdCompressor{}
	}
	if cfg.Swap == nil {
		dir := cfg.SwapDir
		if dir == "" {
			dir = filepath.Join(os.TempDir(), "runnerd-swap")
		}
		cfg.Swap = NewFileSwapStore(dir)
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		total, err := system.TotalRAM()
		if err != nil {
			cfg.Logger.Warn().Err(err).Int64("fallback_bytes", fallbackMaxBytes).
				Msg("host memory total unavailable, using fallback ceiling")
			maxBytes = fallbackMaxBytes
		} else {
			maxBytes = int64(float64(total) * cfg.MaxFraction)
		}
	}

	m := &Manager{
		records:     make(map[string]*record),
		maxBytes:    maxBytes,
		gcThreshold: cfg.GCThreshold,
		interval:    cfg.OptimizeInterval,
		compressor:  cfg.Compressor,
		swap:        cfg.Swap,
		log:         cfg.Logger,
		startTime:   time.Now(),
	}
	m.pool = newBufferPool(cfg.PoolSize, cfg.PoolBufferBytes)
	return m
}
