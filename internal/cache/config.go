package cache

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultL1MaxEntries = 1000
	defaultL1MaxBytes   = 64 << 20
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// L1MaxEntries bounds the in-process tier by entry count.
	L1MaxEntries int
	// L1MaxBytes bounds the in-process tier by aggregate payload bytes.
	L1MaxBytes int64
	// L2Enabled turns on the durable sqlite tier at L2Path.
	L2Enabled bool
	// L2Path is the sqlite file backing the durable tier.
	L2Path string
	// L3 plugs in an extended tier. Nil disables it; every L3 lookup is
	// then a guaranteed miss.
	L3 Tier
	// DefaultTTL applies to Set calls that do not choose their own TTL.
	// Zero means entries never expire.
	DefaultTTL time.Duration
	// Codec serializes values; defaults to JSON.
	Codec Codec
	// Logger for downgrade and tier-failure events.
	Logger zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.L1MaxEntries <= 0 {
		c.L1MaxEntries = defaultL1MaxEntries
	}
	if c.L1MaxBytes <= 0 {
		c.L1MaxBytes = defaultL1MaxBytes
	}
	if c.Codec == nil {
		c.Codec = JSONCodec{}
	}
	return c
}
