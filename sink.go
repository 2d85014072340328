package optlog

import "sync"

// OverflowStrategy governs what a push does when the sink's buffer is
// full. It is fixed at construction time.
type OverflowStrategy int

const (
	// OverflowBlock suspends the caller until buffer space is available.
	// No record is ever lost, but a stalled backend stalls the producer.
	OverflowBlock OverflowStrategy = iota

	// OverflowDrop discards the record immediately and returns without
	// suspending. Dropping is not an error.
	OverflowDrop
)

// defaultBufferSize is the sink's queue capacity unless overridden with
// WithBufferSize.
const defaultBufferSize = 128

// asyncSink decouples observation calls from backend I/O. Records are
// admitted to a bounded channel and drained by a single worker
// goroutine, so admitted records reach the backend in strict FIFO order
// and the backend never sees concurrent writes.
type asyncSink struct {
	ch       chan *Record
	strategy OverflowStrategy
	backend  Backend

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error

	mu      sync.Mutex
	lastErr error
}

func newAsyncSink(backend Backend, strategy OverflowStrategy, size int) *asyncSink {
	if size < 1 {
		size = 1
	}

	s := &asyncSink{
		ch:       make(chan *Record, size),
		strategy: strategy,
		backend:  backend,
		done:     make(chan struct{}),
	}

	go s.run()

	return s
}

// run is the delivery worker. A failed write is remembered and reported
// by a later push; the pipeline itself keeps running.
func (s *asyncSink) run() {
	defer close(s.done)

	for rec := range s.ch {
		if err := s.backend.Write(rec); err != nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		}
	}
}

// push admits a record according to the overflow strategy and returns
// any delivery error recorded since the previous push. Under
// OverflowDrop a discarded record produces no error.
func (s *asyncSink) push(rec *Record) error {
	switch s.strategy {
	case OverflowDrop:
		select {
		case s.ch <- rec:
		default:
		}
	default:
		s.ch <- rec
	}

	return s.takeErr()
}

// takeErr returns and clears the worker's pending delivery error.
func (s *asyncSink) takeErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.lastErr
	s.lastErr = nil

	return err
}

// close drains the queue, joins the worker, and closes the backend.
// It is safe to call more than once; later calls return the first
// result.
func (s *asyncSink) close() error {
	s.closeOnce.Do(func() {
		close(s.ch)
		<-s.done

		err := s.takeErr()

		if cerr := s.backend.Close(); err == nil {
			err = cerr
		}

		s.closeErr = err
	})

	return s.closeErr
}
