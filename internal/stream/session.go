package stream

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Chunk is one emission from a session: a single unit, a fixed-size group,
// or a flushed batch. Seq increases by one per chunk within a session.
type Chunk struct {
	StreamID string
	Seq      uint64
	Units    []string
	Batched  bool
}

// Session is one in-flight output stream. Units written to it come out, in
// write order, on every surface a consumer attached: callbacks registered
// with OnData/OnEnd and the channel returned by Out. A session emits through
// a single dispatcher goroutine, so all surfaces observe the same order.
//
// Lock order: emitMu, then mu. emitMu serializes emission decisions (write
// flushes, the batch timer, End/Abort); mu guards the mutable state and is
// never held across a queue send.
type Session struct {
	id   string
	cfg  SessionConfig
	proc *Processor
	log  zerolog.Logger

	queue chan Chunk    // bounded; drained by dispatch
	done  chan struct{} // closed once completion callbacks have run

	emitMu sync.Mutex

	mu         sync.Mutex
	closed     bool
	pending    []string
	batchTimer *time.Timer
	batchGen   uint64
	transform  func(string) string
	seq        uint64
	units      uint64
	chunks     uint64
	batches    uint64

	cbMu     sync.Mutex
	onData   []func(Chunk)
	onEnd    []func()
	endFired bool

	outMu    sync.Mutex
	out      chan Chunk
	finished bool
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Write appends one output unit to the stream. With batching enabled, units
// accumulate until MaxBatchSize of them arrived or BatchTimeout passed since
// the batch began, whichever is first. With a chunk size above one they
// accumulate into fixed-size groups. Otherwise each unit is emitted on its
// own. Write blocks while the session's bounded queue is full and fails with
// a closed-stream error after End or Abort.
func (s *Session) Write(unit string) error {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStreamClosed(s.id)
	}
	tf := s.transform
	s.mu.Unlock()
	if tf != nil {
		unit = tf(unit)
	}

	switch {
	case s.cfg.Batching:
		s.appendBatch(unit)
	case s.cfg.ChunkSize > 1:
		s.appendChunk(unit)
	default:
		s.send([]string{unit}, false)
	}
	return nil
}

// End flushes any partial batch, closes the session and signals completion
// on both surfaces once the queue drains. Safe to call more than once.
func (s *Session) End() error {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	units := s.pending
	s.pending = nil
	s.stopBatchTimer()
	s.mu.Unlock()

	if len(units) > 0 {
		s.send(units, s.cfg.Batching)
	}
	close(s.queue)
	s.log.Debug().Msg("stream session ended")
	return nil
}

// Abort closes the session and discards any pending units. Completion is
// still signaled to both surfaces.
func (s *Session) Abort() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	dropped := len(s.pending)
	s.pending = nil
	s.stopBatchTimer()
	s.mu.Unlock()

	close(s.queue)
	s.log.Debug().Int("dropped_units", dropped).Msg("stream session aborted")
}

// OnData registers a callback invoked for every chunk emitted after the
// registration. Callbacks run on the session dispatcher; a slow callback
// delays delivery the same way a slow channel consumer does.
func (s *Session) OnData(fn func(Chunk)) {
	s.cbMu.Lock()
	s.onData = append(s.onData, fn)
	s.cbMu.Unlock()
}

// OnEnd registers a callback invoked once after the final chunk. Registering
// on an already-completed session invokes fn immediately.
func (s *Session) OnEnd(fn func()) {
	s.cbMu.Lock()
	if s.endFired {
		s.cbMu.Unlock()
		fn()
		return
	}
	s.onEnd = append(s.onEnd, fn)
	s.cbMu.Unlock()
}

// Out returns the pull surface: a bounded channel carrying every chunk
// emitted after the first Out call, closed once the session completes. All
// calls return the same channel. The sequence is finite after End and is not
// restartable; retries need a new session.
func (s *Session) Out() <-chan Chunk {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	if s.out == nil {
		s.out = make(chan Chunk, s.cfg.BufferCapacity)
		if s.finished {
			close(s.out)
		}
	}
	return s.out
}

// Done is closed once the session has completed, both surfaces have been
// signaled and the processor has released its id.
func (s *Session) Done() <-chan struct{} { return s.done }

// appendBatch adds a unit to the open batch, flushing on size and arming the
// timeout on a batch's first unit. Caller holds emitMu.
func (s *Session) appendBatch(unit string) {
	s.mu.Lock()
	s.pending = append(s.pending, unit)
	if len(s.pending) >= s.cfg.MaxBatchSize {
		units := s.pending
		s.pending = nil
		s.stopBatchTimer()
		s.mu.Unlock()
		s.send(units, true)
		return
	}
	if len(s.pending) == 1 {
		s.batchGen++
		gen := s.batchGen
		s.batchTimer = time.AfterFunc(s.cfg.BatchTimeout, func() { s.flushExpired(gen) })
	}
	s.mu.Unlock()
}

// appendChunk groups units into fixed-size chunks. Caller holds emitMu.
func (s *Session) appendChunk(unit string) {
	s.mu.Lock()
	s.pending = append(s.pending, unit)
	if len(s.pending) < s.cfg.ChunkSize {
		s.mu.Unlock()
		return
	}
	units := s.pending
	s.pending = nil
	s.mu.Unlock()
	s.send(units, false)
}

// flushExpired flushes the batch whose timeout fired. A generation check
// keeps a stale timer from flushing a newer batch early.
func (s *Session) flushExpired(gen uint64) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.closed || len(s.pending) == 0 || s.batchGen != gen {
		s.mu.Unlock()
		return
	}
	units := s.pending
	s.pending = nil
	s.batchTimer = nil
	s.mu.Unlock()
	s.send(units, true)
}

// stopBatchTimer stops a pending timeout. Caller holds mu.
func (s *Session) stopBatchTimer() {
	if s.batchTimer != nil {
		s.batchTimer.Stop()
		s.batchTimer = nil
	}
}

// send hands one chunk to the dispatcher. Callers hold emitMu, which fixes
// the chunk order; the bounded queue provides the backpressure.
func (s *Session) send(units []string, batched bool) {
	s.mu.Lock()
	s.seq++
	ch := Chunk{StreamID: s.id, Seq: s.seq, Units: units, Batched: batched}
	s.units += uint64(len(units))
	s.chunks++
	if batched {
		s.batches++
	}
	s.mu.Unlock()
	s.queue <- ch
}

// dispatch is the session's delivery loop: it fans each queued chunk out to
// the registered callbacks and the pull channel, then signals completion and
// retires the session.
func (s *Session) dispatch() {
	for ch := range s.queue {
		s.cbMu.Lock()
		handlers := append(([]func(Chunk))(nil), s.onData...)
		s.cbMu.Unlock()
		for _, h := range handlers {
			h(ch)
		}
		s.outMu.Lock()
		out := s.out
		s.outMu.Unlock()
		if out != nil {
			out <- ch
		}
	}

	s.outMu.Lock()
	s.finished = true
	if s.out != nil {
		close(s.out)
	}
	s.outMu.Unlock()

	s.cbMu.Lock()
	ends := append(([]func())(nil), s.onEnd...)
	s.endFired = true
	s.cbMu.Unlock()
	for _, fn := range ends {
		fn()
	}
	s.proc.retire(s)
	close(s.done)
}
