package memory

import (
	"math"
	"time"
)

// Half-life, in minutes, of the recency weight used by the optimization pass.
const scoreDecayMinutes = 30

// record is the internal state for one tracked model artifact.
type record struct {
	id            string
	data          []byte // nil while swapped, or always for external records
	sizeBytes     int64
	originalBytes int64
	allocatedAt   time.Time
	lastAccessed  time.Time
	accessCount   uint64
	compressed    bool
	swapped       bool
	// external records were registered size-only; their payload lives with
	// an outside loader and cannot be compressed or swapped here.
	external bool
	// gen increments on every Touch; the optimization pass skips records
	// whose gen moved since it scanned them.
	gen uint64
}

// score ranks a record for reclamation: frequently and recently used records
// score high and are reshaped last.
func (r *record) score(now time.Time) float64 {
	age := now.Sub(r.lastAccessed).Minutes()
	return float64(r.accessCount) * math.Exp(-age/scoreDecayMinutes)
}

// Record is a read-only snapshot of a tracked model artifact.
type Record struct {
	ID            string
	SizeBytes     int64
	OriginalBytes int64
	AllocatedAt   time.Time
	LastAccessed  time.Time
	AccessCount   uint64
	Compressed    bool
	Swapped       bool
}

func (r *record) snapshot() Record {
	return Record{
		ID:            r.id,
		SizeBytes:     r.sizeBytes,
		OriginalBytes: r.originalBytes,
		AllocatedAt:   r.allocatedAt,
		LastAccessed:  r.lastAccessed,
		AccessCount:   r.accessCount,
		Compressed:    r.compressed,
		Swapped:       r.swapped,
	}
}
