package optlog

import "strings"

// filterCore holds the logic for storing and checking suppressed keys.
// This struct is intended to be embedded in backends; entries whose key
// matches are omitted from that backend's output.
type filterCore struct {
	exactKeys  map[string]struct{}
	foldedKeys map[string]struct{}
}

// addExact adds one or more keys for case-sensitive matching.
func (fc *filterCore) addExact(keys ...string) {
	if len(keys) == 0 {
		return
	}

	if fc.exactKeys == nil {
		fc.exactKeys = make(map[string]struct{})
	}

	for _, k := range keys {
		fc.exactKeys[k] = struct{}{}
	}
}

// addFold adds one or more keys for case-insensitive matching.
// The keys are stored in lower-case for efficient lookup.
func (fc *filterCore) addFold(keys ...string) {
	if len(keys) == 0 {
		return
	}

	if fc.foldedKeys == nil {
		fc.foldedKeys = make(map[string]struct{})
	}

	for _, k := range keys {
		fc.foldedKeys[strings.ToLower(k)] = struct{}{}
	}
}

// active reports whether any suppression keys are registered.
func (fc *filterCore) active() bool {
	return len(fc.exactKeys) > 0 || len(fc.foldedKeys) > 0
}

// suppressed checks if the given key should be omitted. It performs a
// zero-cost check first if no keys are registered, then checks exact
// keys before falling back to case-folded keys.
func (fc *filterCore) suppressed(key string) bool {
	if !fc.active() {
		return false
	}

	if _, ok := fc.exactKeys[key]; ok {
		return true
	}

	if len(fc.foldedKeys) > 0 {
		if _, ok := fc.foldedKeys[strings.ToLower(key)]; ok {
			return true
		}
	}

	return false
}
