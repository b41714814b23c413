package runtime

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes the component stats as Prometheus metrics. The components
// keep their own counters; Collect snapshots them on scrape instead of
// double-counting through live instruments. The daemon registers one Collector
// on the default registry; tests use their own registry.
type Collector struct {
	rt *Runtime

	memUsedBytes      *prometheus.Desc
	memMaxBytes       *prometheus.Desc
	memPeakBytes      *prometheus.Desc
	memModels         *prometheus.Desc
	memCompressions   *prometheus.Desc
	memSwaps          *prometheus.Desc
	memRestores       *prometheus.Desc
	memOptimizePasses *prometheus.Desc
	memPoolAvailable  *prometheus.Desc
	memPoolHits       *prometheus.Desc
	memPoolMisses     *prometheus.Desc

	cacheHits        *prometheus.Desc
	cacheMisses      *prometheus.Desc
	cacheEvictions   *prometheus.Desc
	cacheExpirations *prometheus.Desc
	cacheEntries     *prometheus.Desc
	cacheSizeBytes   *prometheus.Desc
	cacheSets        *prometheus.Desc
	cacheDeletes     *prometheus.Desc
	cachePromotions  *prometheus.Desc

	streamActive  *prometheus.Desc
	streamCreated *prometheus.Desc
	streamUnits   *prometheus.Desc
	streamChunks  *prometheus.Desc
	streamBatches *prometheus.Desc
}

// NewCollector builds a Collector over rt. It does not register it.
func NewCollector(rt *Runtime) *Collector {
	return &Collector{
		rt: rt,

		memUsedBytes: prometheus.NewDesc("runnerd_memory_used_bytes",
			"Bytes currently tracked across resident model payloads.", nil, nil),
		memMaxBytes: prometheus.NewDesc("runnerd_memory_max_bytes",
			"Configured memory ceiling in bytes.", nil, nil),
		memPeakBytes: prometheus.NewDesc("runnerd_memory_peak_bytes",
			"Highest tracked usage observed since start.", nil, nil),
		memModels: prometheus.NewDesc("runnerd_memory_models",
			"Model payloads currently tracked.", nil, nil),
		memCompressions: prometheus.NewDesc("runnerd_memory_compressions_total",
			"Payloads compressed since start.", nil, nil),
		memSwaps: prometheus.NewDesc("runnerd_memory_swaps_total",
			"Payloads swapped to disk since start.", nil, nil),
		memRestores: prometheus.NewDesc("runnerd_memory_restores_total",
			"Payloads restored from the swap store since start.", nil, nil),
		memOptimizePasses: prometheus.NewDesc("runnerd_memory_optimize_passes_total",
			"Optimization passes run since start.", nil, nil),
		memPoolAvailable: prometheus.NewDesc("runnerd_memory_pool_available",
			"Buffer pool slots currently available.", nil, nil),
		memPoolHits: prometheus.NewDesc("runnerd_memory_pool_hits_total",
			"Buffer acquisitions served from the pool.", nil, nil),
		memPoolMisses: prometheus.NewDesc("runnerd_memory_pool_misses_total",
			"Buffer acquisitions allocated outside the pool.", nil, nil),

		cacheHits: prometheus.NewDesc("runnerd_cache_hits_total",
			"Lookups answered per tier.", []string{"level"}, nil),
		cacheMisses: prometheus.NewDesc("runnerd_cache_misses_total",
			"Lookups that passed through per tier.", []string{"level"}, nil),
		cacheEvictions: prometheus.NewDesc("runnerd_cache_evictions_total",
			"Entries evicted by capacity pressure per tier.", []string{"level"}, nil),
		cacheExpirations: prometheus.NewDesc("runnerd_cache_expirations_total",
			"Entries dropped past their TTL per tier.", []string{"level"}, nil),
		cacheEntries: prometheus.NewDesc("runnerd_cache_entries",
			"Entries currently stored per tier.", []string{"level"}, nil),
		cacheSizeBytes: prometheus.NewDesc("runnerd_cache_size_bytes",
			"Payload bytes currently stored per tier.", []string{"level"}, nil),
		cacheSets: prometheus.NewDesc("runnerd_cache_sets_total",
			"Set operations since start.", nil, nil),
		cacheDeletes: prometheus.NewDesc("runnerd_cache_deletes_total",
			"Delete operations since start.", nil, nil),
		cachePromotions: prometheus.NewDesc("runnerd_cache_promotions_total",
			"Entries promoted into a higher tier after a lower-tier hit.", nil, nil),

		streamActive: prometheus.NewDesc("runnerd_stream_sessions_active",
			"Stream sessions currently open or draining.", nil, nil),
		streamCreated: prometheus.NewDesc("runnerd_stream_sessions_created_total",
			"Stream sessions created since start.", nil, nil),
		streamUnits: prometheus.NewDesc("runnerd_stream_units_emitted_total",
			"Output units written across all sessions.", nil, nil),
		streamChunks: prometheus.NewDesc("runnerd_stream_chunks_emitted_total",
			"Chunks delivered to consumers.", nil, nil),
		streamBatches: prometheus.NewDesc("runnerd_stream_batches_flushed_total",
			"Batches flushed by size, timeout, or end-of-stream.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.memUsedBytes
	ch <- c.memMaxBytes
	ch <- c.memPeakBytes
	ch <- c.memModels
	ch <- c.memCompressions
	ch <- c.memSwaps
	ch <- c.memRestores
	ch <- c.memOptimizePasses
	ch <- c.memPoolAvailable
	ch <- c.memPoolHits
	ch <- c.memPoolMisses
	ch <- c.cacheHits
	ch <- c.cacheMisses
	ch <- c.cacheEvictions
	ch <- c.cacheExpirations
	ch <- c.cacheEntries
	ch <- c.cacheSizeBytes
	ch <- c.cacheSets
	ch <- c.cacheDeletes
	ch <- c.cachePromotions
	ch <- c.streamActive
	ch <- c.streamCreated
	ch <- c.streamUnits
	ch <- c.streamChunks
	ch <- c.streamBatches
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	// Bound the durable-tier size queries so a scrape cannot hang on disk.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	mem := c.rt.mem.Stats()
	ch <- prometheus.MustNewConstMetric(c.memUsedBytes, prometheus.GaugeValue, float64(mem.UsedBytes))
	ch <- prometheus.MustNewConstMetric(c.memMaxBytes, prometheus.GaugeValue, float64(mem.MaxBytes))
	ch <- prometheus.MustNewConstMetric(c.memPeakBytes, prometheus.GaugeValue, float64(mem.PeakBytes))
	ch <- prometheus.MustNewConstMetric(c.memModels, prometheus.GaugeValue, float64(len(mem.Models)))
	ch <- prometheus.MustNewConstMetric(c.memCompressions, prometheus.CounterValue, float64(mem.CompressionsTotal))
	ch <- prometheus.MustNewConstMetric(c.memSwaps, prometheus.CounterValue, float64(mem.SwapsTotal))
	ch <- prometheus.MustNewConstMetric(c.memRestores, prometheus.CounterValue, float64(mem.RestoresTotal))
	ch <- prometheus.MustNewConstMetric(c.memOptimizePasses, prometheus.CounterValue, float64(mem.OptimizePasses))
	ch <- prometheus.MustNewConstMetric(c.memPoolAvailable, prometheus.GaugeValue, float64(mem.PoolAvailable))
	ch <- prometheus.MustNewConstMetric(c.memPoolHits, prometheus.CounterValue, float64(mem.PoolHits))
	ch <- prometheus.MustNewConstMetric(c.memPoolMisses, prometheus.CounterValue, float64(mem.PoolMisses))

	cs := c.rt.cache.Stats(ctx)
	for _, tier := range cs.Tiers {
		ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(tier.Hits), tier.Level)
		ch <- prometheus.MustNewConstMetric(c.cacheMisses, prometheus.CounterValue, float64(tier.Misses), tier.Level)
		ch <- prometheus.MustNewConstMetric(c.cacheEvictions, prometheus.CounterValue, float64(tier.Evictions), tier.Level)
		ch <- prometheus.MustNewConstMetric(c.cacheExpirations, prometheus.CounterValue, float64(tier.Expirations), tier.Level)
		ch <- prometheus.MustNewConstMetric(c.cacheEntries, prometheus.GaugeValue, float64(tier.Entries), tier.Level)
		ch <- prometheus.MustNewConstMetric(c.cacheSizeBytes, prometheus.GaugeValue, float64(tier.SizeBytes), tier.Level)
	}
	ch <- prometheus.MustNewConstMetric(c.cacheSets, prometheus.CounterValue, float64(cs.Sets))
	ch <- prometheus.MustNewConstMetric(c.cacheDeletes, prometheus.CounterValue, float64(cs.Deletes))
	ch <- prometheus.MustNewConstMetric(c.cachePromotions, prometheus.CounterValue, float64(cs.Promotions))

	ss := c.rt.streams.Stats()
	ch <- prometheus.MustNewConstMetric(c.streamActive, prometheus.GaugeValue, float64(ss.StreamsActive))
	ch <- prometheus.MustNewConstMetric(c.streamCreated, prometheus.CounterValue, float64(ss.StreamsCreated))
	ch <- prometheus.MustNewConstMetric(c.streamUnits, prometheus.CounterValue, float64(ss.UnitsEmitted))
	ch <- prometheus.MustNewConstMetric(c.streamChunks, prometheus.CounterValue, float64(ss.ChunksEmitted))
	ch <- prometheus.MustNewConstMetric(c.streamBatches, prometheus.CounterValue, float64(ss.BatchesFlushed))
}
