package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SetOptions controls one Set call.
type SetOptions struct {
	// TTL for the written entry. Zero adopts the manager's DefaultTTL; a
	// negative value disables expiry even when a default is configured.
	TTL time.Duration
	// Levels selects the tiers to write. Empty means every enabled tier.
	Levels []Level
}

type tierRef struct {
	level Level
	tier  Tier
}

type tierCounters struct {
	hits        uint64
	misses      uint64
	expirations uint64
}

// Manager owns the tier chain and the lookup/promotion policy on top of it.
// L1 is always present; L2 and L3 join the chain when configured. All methods
// are safe for concurrent use.
type Manager struct {
	codec      Codec
	defaultTTL time.Duration
	log        zerolog.Logger
	l1         *memoryTier
	tiers      []tierRef

	mu           sync.Mutex
	counters     map[Level]*tierCounters
	lookupHits   uint64
	lookupMisses uint64
	sets         uint64
	deletes      uint64
	promotions   uint64
}

// New builds the tier chain from cfg.
func New(cfg Config) (*Manager, error) {
	cfg = cfg.withDefaults()
	m := &Manager{
		codec:      cfg.Codec,
		defaultTTL: cfg.DefaultTTL,
		log:        cfg.Logger,
		l1:         newMemoryTier(cfg.L1MaxEntries, cfg.L1MaxBytes),
		counters:   make(map[Level]*tierCounters),
	}
	m.tiers = append(m.tiers, tierRef{level: L1, tier: m.l1})
	if cfg.L2Enabled {
		if cfg.L2Path == "" {
			return nil, errors.New("cache: L2 enabled without a backing path")
		}
		l2, err := openSQLiteTier(cfg.L2Path)
		if err != nil {
			return nil, fmt.Errorf("open %s tier: %w", L2, err)
		}
		m.tiers = append(m.tiers, tierRef{level: L2, tier: l2})
	}
	if cfg.L3 != nil {
		m.tiers = append(m.tiers, tierRef{level: L3, tier: cfg.L3})
	}
	for _, t := range m.tiers {
		m.counters[t.level] = &tierCounters{}
	}
	return m, nil
}

// Get walks the tiers in order and returns the first live value. A hit below
// L1 is promoted into every tier above it before returning. Expired and
// undecodable entries count as misses for their tier and are removed in
// place. Tier read failures are logged and treated as misses so one broken
// tier cannot take lookups down; the recompute-then-Set path surfaces them.
// Absent everywhere returns (nil, false, nil).
func (m *Manager) Get(ctx context.Context, key string) (any, bool, error) {
	now := time.Now()
	for i, t := range m.tiers {
		ent, err := t.tier.Get(ctx, key)
		if err != nil {
			m.log.Warn().Err(err).Str("tier", t.level.String()).Str("key", key).Msg("tier read failed")
			m.countMiss(t.level)
			continue
		}
		if ent == nil {
			m.countMiss(t.level)
			continue
		}
		if ent.expired(now) {
			if err := t.tier.Delete(ctx, key); err != nil {
				m.log.Warn().Err(err).Str("tier", t.level.String()).Str("key", key).Msg("expired entry not removed")
			}
			m.countExpired(t.level)
			continue
		}
		val, decErr := m.decode(ent)
		if decErr != nil {
			// undecodable for this codec; drop it so the caller recomputes
			if err := t.tier.Delete(ctx, key); err != nil {
				m.log.Warn().Err(err).Str("tier", t.level.String()).Str("key", key).Msg("corrupt entry not removed")
			}
			m.log.Debug().Err(decErr).Str("tier", t.level.String()).Str("key", key).Msg("entry downgraded to miss")
			m.countMiss(t.level)
			continue
		}
		ent.LastAccessedAt = now
		ent.AccessCount++
		m.promote(ctx, ent, i)
		m.countHit(t.level)
		return val, true, nil
	}
	m.mu.Lock()
	m.lookupMisses++
	m.mu.Unlock()
	return nil, false, nil
}

// Set encodes value once and writes the envelope to each requested tier.
// Failed tiers do not stop the others; their errors are joined and returned.
func (m *Manager) Set(ctx context.Context, key string, value any, opts SetOptions) error {
	payload, err := m.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	now := time.Now()
	ent := &Entry{
		Key:            key,
		Payload:        payload,
		Codec:          m.codec.Name(),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	ttl := opts.TTL
	if ttl == 0 {
		ttl = m.defaultTTL
	}
	if ttl > 0 {
		ent.ExpiresAt = now.Add(ttl)
	}

	var errs []error
	for _, t := range m.tiers {
		if !levelSelected(opts.Levels, t.level) {
			continue
		}
		if err := t.tier.Set(ctx, ent.clone()); err != nil {
			errs = append(errs, fmt.Errorf("%s set: %w", t.level, err))
		}
	}
	m.mu.Lock()
	m.sets++
	m.mu.Unlock()
	return errors.Join(errs...)
}

// Delete removes key from every tier. Absent keys are not an error.
func (m *Manager) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, t := range m.tiers {
		if err := t.tier.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("%s delete: %w", t.level, err))
		}
	}
	m.mu.Lock()
	m.deletes++
	m.mu.Unlock()
	return errors.Join(errs...)
}

// Clear empties every tier. Counters are cumulative and keep their values.
func (m *Manager) Clear(ctx context.Context) error {
	var errs []error
	for _, t := range m.tiers {
		if err := t.tier.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s clear: %w", t.level, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every tier's resources.
func (m *Manager) Close() error {
	var errs []error
	for _, t := range m.tiers {
		if err := t.tier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s close: %w", t.level, err))
		}
	}
	return errors.Join(errs...)
}

// promote copies a hit found at tier index idx into every tier above it. The
// found entry keeps its creation time and expiry in all copies.
func (m *Manager) promote(ctx context.Context, ent *Entry, idx int) {
	for j := idx - 1; j >= 0; j-- {
		if err := m.tiers[j].tier.Set(ctx, ent.clone()); err != nil {
			m.log.Warn().Err(err).Str("tier", m.tiers[j].level.String()).Str("key", ent.Key).Msg("promotion failed")
			continue
		}
		m.mu.Lock()
		m.promotions++
		m.mu.Unlock()
	}
}

func (m *Manager) decode(e *Entry) (any, error) {
	if e.Codec != m.codec.Name() {
		return nil, fmt.Errorf("codec mismatch: entry %q, configured %q", e.Codec, m.codec.Name())
	}
	return m.codec.Unmarshal(e.Payload)
}

func (m *Manager) countMiss(l Level) {
	m.mu.Lock()
	m.counters[l].misses++
	m.mu.Unlock()
}

func (m *Manager) countExpired(l Level) {
	m.mu.Lock()
	m.counters[l].misses++
	m.counters[l].expirations++
	m.mu.Unlock()
}

func (m *Manager) countHit(l Level) {
	m.mu.Lock()
	m.counters[l].hits++
	m.lookupHits++
	m.mu.Unlock()
}

func levelSelected(sel []Level, l Level) bool {
	if len(sel) == 0 {
		return true
	}
	for _, s := range sel {
		if s == l {
			return true
		}
	}
	return false
}
