package optlog

// Entry is a single key/value pair of a record. Entries are ordered;
// the same key may appear more than once within one record.
type Entry struct {
	Key   string
	Value interface{}
}

// KV is an ordered collection of auxiliary key/value pairs supplied
// alongside an observation. Its entries are appended to the record after
// any field-derived entries, in insertion order.
//
// A KV is supplied fresh per call and is not retained by the Logger.
type KV struct {
	entries []Entry
}

// NewKV creates an empty KV.
func NewKV() *KV {
	return &KV{}
}

// Add appends a key/value pair and returns the KV for chaining.
func (kv *KV) Add(key string, value interface{}) *KV {
	kv.entries = append(kv.entries, Entry{Key: key, Value: value})

	return kv
}

// Len returns the number of entries.
func (kv *KV) Len() int {
	if kv == nil {
		return 0
	}

	return len(kv.entries)
}

// appendTo copies the entries onto dst in insertion order.
func (kv *KV) appendTo(dst []Entry) []Entry {
	if kv == nil {
		return dst
	}

	return append(dst, kv.entries...)
}
