package optlog

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// noneText is emitted for optional state fields that are absent.
const noneText = "None"

// Record is a single observation on its way to a backend: a free-text
// message plus an ordered list of key/value entries. Entries derived
// from the field selection come first, auxiliary KV entries after; the
// order is never changed and duplicate keys are never merged.
type Record struct {
	Time    time.Time
	Message string
	Entries []Entry
}

// stateEntries walks the field selection against a state view and
// produces the ordered entries for one iteration record. Duplicated
// fields in the selection produce duplicated entries.
func stateEntries(fields []Field, state StateView) []Entry {
	entries := make([]Entry, 0, len(fields))

	for _, f := range fields {
		key := string(f)

		switch f {
		case FieldBestCost:
			entries = append(entries, Entry{key, formatFloat(state.BestCost())})
		case FieldBestParam:
			entries = append(entries, Entry{key, optionalText(state.BestParam())})
		case FieldCost:
			entries = append(entries, Entry{key, formatFloat(state.Cost())})
		case FieldFunctionCounts:
			// Expands 1:N, keyed by counter name rather than by the
			// field's display name.
			for name, count := range state.FuncCounts() {
				entries = append(entries, Entry{name, count})
			}
		case FieldIsBest:
			entries = append(entries, Entry{key, state.IsBest()})
		case FieldIter:
			entries = append(entries, Entry{key, state.Iter()})
		case FieldLastBestIter:
			entries = append(entries, Entry{key, state.LastBestIter()})
		case FieldMaxIters:
			entries = append(entries, Entry{key, state.MaxIters()})
		case FieldParam:
			entries = append(entries, Entry{key, optionalText(state.Param())})
		case FieldTargetCost:
			entries = append(entries, Entry{key, formatFloat(state.TargetCost())})
		case FieldTerminationReason:
			reason, ok := state.TerminationReason()
			if !ok {
				reason = noneText
			}

			entries = append(entries, Entry{key, reason})
		case FieldTerminationStatus:
			entries = append(entries, Entry{key, state.TerminationStatus()})
		case FieldTime:
			if t, ok := state.Time(); ok {
				entries = append(entries, Entry{key, t.String()})
			} else {
				entries = append(entries, Entry{key, noneText})
			}
		}
	}

	return entries
}

// formatFloat renders a float with the shortest representation that
// round-trips exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// optionalText renders an optional opaque value, falling back to "None"
// when absent.
func optionalText(v interface{}, ok bool) string {
	if !ok {
		return noneText
	}

	return fmt.Sprintf("%+v", v)
}

// appendJSON appends the record as a single JSON object. The object is
// assembled member by member so that member order follows emission order
// and duplicate keys survive; marshaling the entries through a map would
// sort and deduplicate them.
func (r *Record) appendJSON(b *bytes.Buffer) error {
	b.WriteByte('{')

	if err := appendMember(b, "msg", r.Message); err != nil {
		return err
	}

	b.WriteByte(',')

	if err := appendMember(b, "ts", r.Time.Format(time.RFC3339Nano)); err != nil {
		return err
	}

	for _, e := range r.Entries {
		b.WriteByte(',')

		if err := appendMember(b, e.Key, e.Value); err != nil {
			return err
		}
	}

	b.WriteByte('}')

	return nil
}

func appendMember(b *bytes.Buffer, key string, value interface{}) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}

	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for key %q: %w", key, err)
	}

	b.Write(k)
	b.WriteByte(':')
	b.Write(v)

	return nil
}
