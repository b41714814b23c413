package stream

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding SessionConfig fields are unset.
const (
	defaultChunkSize      = 1
	defaultBufferCapacity = 64
	defaultMaxBatchSize   = 8
	defaultBatchTimeout   = 50 * time.Millisecond
)

// Config configures a Processor.
type Config struct {
	// Defaults apply to sessions created without their own config.
	Defaults SessionConfig
	// Logger for session lifecycle events.
	Logger zerolog.Logger
}

// SessionConfig tunes one stream session.
type SessionConfig struct {
	// ChunkSize groups units into fixed-size chunks when batching is off.
	// One or less emits every unit as it is written.
	ChunkSize int
	// BufferCapacity bounds the session queue; writers block once a
	// consumer falls this far behind.
	BufferCapacity int
	// Batching aggregates units into size- and time-bounded batches.
	Batching bool
	// MaxBatchSize flushes a batch once it holds this many units.
	MaxBatchSize int
	// BatchTimeout flushes a partial batch this long after its first unit.
	BatchTimeout time.Duration
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	if c.BufferCapacity <= 0 {
		c.BufferCapacity = defaultBufferCapacity
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = defaultMaxBatchSize
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = defaultBatchTimeout
	}
	return c
}

// mergedWith fills c's unset fields from the processor defaults. Batching is
// taken as given: a session config always decides it for itself.
func (c SessionConfig) mergedWith(def SessionConfig) SessionConfig {
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.BufferCapacity <= 0 {
		c.BufferCapacity = def.BufferCapacity
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = def.MaxBatchSize
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = def.BatchTimeout
	}
	return c
}
