package stream

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"runnerd/pkg/types"
)

// Processor owns the live stream sessions. Sessions are independent of each
// other; the processor only tracks them for lookup and statistics.
type Processor struct {
	defaults SessionConfig
	log      zerolog.Logger

	mu             sync.Mutex
	sessions       map[string]*Session
	created        uint64
	unitsEmitted   uint64
	chunksEmitted  uint64
	batchesFlushed uint64
}

// New constructs a Processor from Config, applying package defaults.
func New(cfg Config) *Processor {
	return &Processor{
		defaults: cfg.Defaults.withDefaults(),
		log:      cfg.Logger,
		sessions: make(map[string]*Session),
	}
}

// Create opens a session and starts its dispatcher. An empty id gets a
// generated one. An id colliding with a live session is rejected; ids become
// reusable once their session has completed and drained.
func (p *Processor) Create(id string, cfg *SessionConfig) (*Session, error) {
	sc := p.defaults
	if cfg != nil {
		sc = cfg.mergedWith(p.defaults)
	}
	if id == "" {
		id = uuid.NewString()
	}
	s := &Session{
		id:    id,
		cfg:   sc,
		proc:  p,
		log:   p.log.With().Str("stream", id).Logger(),
		queue: make(chan Chunk, sc.BufferCapacity),
		done:  make(chan struct{}),
	}

	p.mu.Lock()
	if _, ok := p.sessions[id]; ok {
		p.mu.Unlock()
		return nil, ErrStreamExists(id)
	}
	p.sessions[id] = s
	p.created++
	p.mu.Unlock()

	go s.dispatch()
	s.log.Debug().Msg("stream session opened")
	return s, nil
}

// Get returns the live session with id.
func (p *Processor) Get(id string) (*Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sessions[id]
	return s, ok
}

// ApplyTransformation installs fn as the per-unit transform on a live
// session. At most one transform is active; reapplying replaces it, and a
// nil fn removes it.
func (p *Processor) ApplyTransformation(id string, fn func(string) string) error {
	s, ok := p.Get(id)
	if !ok {
		return ErrStreamNotFound(id)
	}
	s.mu.Lock()
	s.transform = fn
	s.mu.Unlock()
	return nil
}

// Stats reports cumulative counters plus the contribution of still-live
// sessions.
func (p *Processor) Stats() types.StreamStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := types.StreamStats{
		StreamsCreated: p.created,
		StreamsActive:  len(p.sessions),
		UnitsEmitted:   p.unitsEmitted,
		ChunksEmitted:  p.chunksEmitted,
		BatchesFlushed: p.batchesFlushed,
	}
	for _, s := range p.sessions {
		s.mu.Lock()
		st.UnitsEmitted += s.units
		st.ChunksEmitted += s.chunks
		st.BatchesFlushed += s.batches
		s.mu.Unlock()
	}
	return st
}

// Close aborts every live session and waits for each to drain.
func (p *Processor) Close() {
	p.mu.Lock()
	live := make([]*Session, 0, len(p.sessions))
	for _, s := range p.sessions {
		live = append(live, s)
	}
	p.mu.Unlock()

	for _, s := range live {
		s.Abort()
		<-s.Done()
	}
}

// retire folds a completed session's counters into the processor totals and
// frees its id. Called by the session dispatcher after completion.
func (p *Processor) retire(s *Session) {
	s.mu.Lock()
	units, chunks, batches := s.units, s.chunks, s.batches
	s.mu.Unlock()

	p.mu.Lock()
	delete(p.sessions, s.id)
	p.unitsEmitted += units
	p.chunksEmitted += chunks
	p.batchesFlushed += batches
	p.mu.Unlock()
}
