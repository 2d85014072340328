package optlog

import (
	"io"
	"os"
	"time"
)

// Logger records optimization progress to one backend. It is built for
// the single-producer pattern: one optimization driver calls
// ObserveInit once before the run and ObserveIter after every
// iteration; a background goroutine performs the actual I/O, so
// observation calls never wait on a console or file write directly.
//
// SetFields and the observation methods must not be called from
// multiple goroutines at once.
type Logger struct {
	sink   *asyncSink
	fields []Field
}

// New creates a Logger bound to an arbitrary Backend with the given
// overflow strategy. The built-in constructors below cover the common
// cases; New exists so that additional backends can be plugged in
// without touching the sink or adapter logic.
func New(backend Backend, strategy OverflowStrategy, opts ...Option) *Logger {
	cfg := newConfig(opts)

	return &Logger{
		sink:   newAsyncSink(backend, strategy, cfg.bufferSize),
		fields: DefaultFields(),
	}
}

// Terminal creates a Logger that writes human-readable lines to the
// terminal. Observation calls block while the delivery buffer is full.
func Terminal(opts ...Option) *Logger {
	return terminalInternal(OverflowBlock, opts)
}

// TerminalNonBlocking creates a terminal Logger that never blocks;
// records are dropped when the delivery buffer is full.
func TerminalNonBlocking(opts ...Option) *Logger {
	return terminalInternal(OverflowDrop, opts)
}

func terminalInternal(strategy OverflowStrategy, opts []Option) *Logger {
	cfg := newConfig(opts)

	return &Logger{
		sink:   newAsyncSink(newTerminalBackend(cfg), strategy, cfg.bufferSize),
		fields: DefaultFields(),
	}
}

// File creates a Logger that appends each record as one JSON line to
// the file at path, creating it if absent. With truncate the existing
// content is cleared first. Observation calls block while the delivery
// buffer is full.
//
// An unopenable target surfaces here as an error; no Logger is
// produced in that case.
func File(path string, truncate bool, opts ...Option) (*Logger, error) {
	return fileInternal(path, truncate, OverflowBlock, opts)
}

// FileNonBlocking is File with drop-on-overflow semantics: records are
// discarded, without error, when the delivery buffer is full.
func FileNonBlocking(path string, truncate bool, opts ...Option) (*Logger, error) {
	return fileInternal(path, truncate, OverflowDrop, opts)
}

func fileInternal(path string, truncate bool, strategy OverflowStrategy, opts []Option) (*Logger, error) {
	cfg := newConfig(opts)

	backend, err := newFileBackend(path, truncate, cfg)
	if err != nil {
		return nil, err
	}

	return &Logger{
		sink:   newAsyncSink(backend, strategy, cfg.bufferSize),
		fields: DefaultFields(),
	}, nil
}

// SetFields replaces the field selection wholesale and returns the
// Logger for chaining. Order matters and duplicates are preserved; an
// empty selection is legal and yields records containing only the
// auxiliary KV entries.
func (l *Logger) SetFields(fields ...Field) *Logger {
	l.fields = append([]Field(nil), fields...)

	return l
}

// ObserveInit records the start of an optimization run. The record
// carries the message and the auxiliary KV entries only; no state
// exists before the first iteration.
func (l *Logger) ObserveInit(msg string, kv *KV) error {
	rec := &Record{
		Time:    time.Now(),
		Message: msg,
		Entries: kv.appendTo(make([]Entry, 0, kv.Len())),
	}

	return l.sink.push(rec)
}

// ObserveIter records the outcome of one iteration: the selected state
// fields in selection order, followed by the auxiliary KV entries.
func (l *Logger) ObserveIter(state StateView, kv *KV) error {
	entries := stateEntries(l.fields, state)

	rec := &Record{
		Time:    time.Now(),
		Entries: kv.appendTo(entries),
	}

	return l.sink.push(rec)
}

// Close drains queued records, stops the delivery goroutine, and
// closes the backend. The flush is best-effort: records already
// admitted are written, and any delivery error still pending is
// returned. Close is safe to call more than once.
func (l *Logger) Close() error {
	return l.sink.close()
}

// --- options ---

type config struct {
	out           io.Writer
	color         *bool
	bufferSize    int
	suppressExact []string
	suppressFold  []string
}

func newConfig(opts []Option) *config {
	cfg := &config{
		out:        os.Stderr,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Option configures a Logger at construction time.
type Option func(*config)

// WithOutput sets the writer for the terminal backend. The default is
// os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(cfg *config) {
		if w != nil {
			cfg.out = w
		}
	}
}

// WithColor forces terminal colorization on or off, overriding the
// TTY detection.
func WithColor(enabled bool) Option {
	return func(cfg *config) {
		cfg.color = &enabled
	}
}

// WithBufferSize sets the capacity of the delivery buffer. The default
// is 128; values below 1 are raised to 1.
func WithBufferSize(n int) Option {
	return func(cfg *config) {
		cfg.bufferSize = n
	}
}

// WithoutKeys omits entries with the given keys (case-sensitive) from
// the backend's output.
func WithoutKeys(keys ...string) Option {
	return func(cfg *config) {
		cfg.suppressExact = append(cfg.suppressExact, keys...)
	}
}

// WithoutKeysFold omits entries with the given keys (case-insensitive)
// from the backend's output.
func WithoutKeysFold(keys ...string) Option {
	return func(cfg *config) {
		cfg.suppressFold = append(cfg.suppressFold, keys...)
	}
}
