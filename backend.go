package optlog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Backend renders records to their final destination. Write is only
// ever called from a sink's single delivery goroutine, so
// implementations need not be safe for concurrent use. Close flushes
// buffered data and releases resources.
type Backend interface {
	Write(rec *Record) error
	Close() error
}

// --- terminal backend ---

// terminalBackend renders records as human-readable lines, one per
// record, preserving entry order exactly.
type terminalBackend struct {
	out      io.Writer
	keyColor *color.Color
	filter   filterCore
}

func newTerminalBackend(cfg *config) *terminalBackend {
	b := &terminalBackend{
		out:      cfg.out,
		keyColor: color.New(color.FgCyan),
	}

	b.filter.addExact(cfg.suppressExact...)
	b.filter.addFold(cfg.suppressFold...)

	// Smart default: colorize only when writing to an interactive
	// terminal. An explicit WithColor wins over the detection.
	enabled := false
	if cfg.color != nil {
		enabled = *cfg.color
	} else if f, ok := cfg.out.(*os.File); ok {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	if enabled {
		b.keyColor.EnableColor()
	} else {
		b.keyColor.DisableColor()
	}

	return b
}

func (b *terminalBackend) Write(rec *Record) error {
	var buf bytes.Buffer

	buf.WriteString(rec.Time.Format(time.RFC3339))

	if rec.Message != "" {
		buf.WriteString(" ")
		buf.WriteString(strings.TrimRight(rec.Message, "\n"))
	}

	for _, e := range rec.Entries {
		if b.filter.suppressed(e.Key) {
			continue
		}

		buf.WriteString(" ")
		buf.WriteString(b.keyColor.Sprint(e.Key))
		buf.WriteString("=")
		buf.WriteString(terminalValue(e.Value))
	}

	buf.WriteByte('\n')

	_, err := b.out.Write(buf.Bytes())

	return err
}

func (b *terminalBackend) Close() error {
	return nil
}

// terminalValue renders an entry value for the terminal line. Strings
// are quoted only when they would be ambiguous unquoted.
func terminalValue(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v)
	}

	if s == "" || strings.ContainsAny(s, " =\"") {
		return fmt.Sprintf("%q", s)
	}

	return s
}

// --- file backend ---

// fileBackend appends records as newline-delimited JSON objects.
type fileBackend struct {
	f      *os.File
	w      *bufio.Writer
	filter filterCore
}

// newFileBackend opens (creating if absent) the target file. With
// truncate the existing content is cleared, otherwise records are
// appended. An unopenable target is a construction-time error.
func newFileBackend(path string, truncate bool, cfg *config) (*fileBackend, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	b := &fileBackend{
		f: f,
		w: bufio.NewWriter(f),
	}

	b.filter.addExact(cfg.suppressExact...)
	b.filter.addFold(cfg.suppressFold...)

	return b, nil
}

func (b *fileBackend) Write(rec *Record) error {
	out := rec

	if b.filter.active() {
		kept := make([]Entry, 0, len(rec.Entries))

		for _, e := range rec.Entries {
			if !b.filter.suppressed(e.Key) {
				kept = append(kept, e)
			}
		}

		out = &Record{Time: rec.Time, Message: rec.Message, Entries: kept}
	}

	var buf bytes.Buffer

	if err := out.appendJSON(&buf); err != nil {
		return err
	}

	buf.WriteByte('\n')

	_, err := b.w.Write(buf.Bytes())

	return err
}

func (b *fileBackend) Close() error {
	err := b.w.Flush()

	if cerr := b.f.Close(); err == nil {
		err = cerr
	}

	return err
}
