package optlog

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

// fakeState is a canned StateView for tests.
type fakeState struct {
	bestCost      float64
	bestParam     interface{}
	hasBestParam  bool
	cost          float64
	funcCounts    map[string]uint64
	isBest        bool
	iter          uint64
	lastBestIter  uint64
	maxIters      uint64
	param         interface{}
	hasParam      bool
	targetCost    float64
	termReason    string
	hasTermReason bool
	termStatus    string
	elapsed       time.Duration
	hasElapsed    bool
}

func (s *fakeState) BestCost() float64                 { return s.bestCost }
func (s *fakeState) BestParam() (interface{}, bool)    { return s.bestParam, s.hasBestParam }
func (s *fakeState) Cost() float64                     { return s.cost }
func (s *fakeState) FuncCounts() map[string]uint64     { return s.funcCounts }
func (s *fakeState) IsBest() bool                      { return s.isBest }
func (s *fakeState) Iter() uint64                      { return s.iter }
func (s *fakeState) LastBestIter() uint64              { return s.lastBestIter }
func (s *fakeState) MaxIters() uint64                  { return s.maxIters }
func (s *fakeState) Param() (interface{}, bool)        { return s.param, s.hasParam }
func (s *fakeState) TargetCost() float64               { return s.targetCost }
func (s *fakeState) TerminationReason() (string, bool) { return s.termReason, s.hasTermReason }
func (s *fakeState) TerminationStatus() string         { return s.termStatus }
func (s *fakeState) Time() (time.Duration, bool)       { return s.elapsed, s.hasElapsed }

// entryPairs renders entries as "key=value" strings for comparison.
func entryPairs(entries []Entry) []string {
	pairs := make([]string, 0, len(entries))

	for _, e := range entries {
		pairs = append(pairs, fmt.Sprintf("%s=%v", e.Key, e.Value))
	}

	return pairs
}

func assertPairs(t *testing.T, got []Entry, want []string) {
	t.Helper()

	pairs := entryPairs(got)
	if len(pairs) != len(want) {
		t.Fatalf("expected %d entries, got %d: %v", len(want), len(pairs), pairs)
	}

	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("entry %d: expected %q, got %q", i, want[i], pairs[i])
		}
	}
}

// TestStateEntries_SelectionOrder verifies that entries follow the
// selection order exactly.
func TestStateEntries_SelectionOrder(t *testing.T) {
	state := &fakeState{iter: 5, cost: 1.23}

	got := stateEntries([]Field{FieldIter, FieldCost}, state)

	assertPairs(t, got, []string{"Iter=5", "Cost=1.23"})
}

// TestStateEntries_FunctionCountsExpansion verifies the 1:N expansion
// keyed by counter name.
func TestStateEntries_FunctionCountsExpansion(t *testing.T) {
	state := &fakeState{funcCounts: map[string]uint64{"cost": 3, "grad": 1}}

	got := stateEntries([]Field{FieldFunctionCounts}, state)

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(got), entryPairs(got))
	}

	seen := map[string]uint64{}

	for _, e := range got {
		if e.Key == "FunctionCounts" {
			t.Errorf("expansion must not emit the literal key %q", e.Key)
		}

		count, ok := e.Value.(uint64)
		if !ok {
			t.Fatalf("expected uint64 count for %q, got %T", e.Key, e.Value)
		}

		seen[e.Key] = count
	}

	if seen["cost"] != 3 || seen["grad"] != 1 {
		t.Errorf("unexpected counter values: %v", seen)
	}
}

// TestStateEntries_OptionalFields verifies the "None" rendering for
// absent optional values and a non-empty rendering otherwise.
func TestStateEntries_OptionalFields(t *testing.T) {
	optionals := []Field{FieldBestParam, FieldParam, FieldTime, FieldTerminationReason}

	t.Run("Absent values render as None", func(t *testing.T) {
		got := stateEntries(optionals, &fakeState{})

		assertPairs(t, got, []string{
			"BestParam=None",
			"Param=None",
			"Time=None",
			"TerminationReason=None",
		})
	})

	t.Run("Present values render non-empty", func(t *testing.T) {
		state := &fakeState{
			bestParam:     []float64{1, 2},
			hasBestParam:  true,
			param:         []float64{3, 4},
			hasParam:      true,
			elapsed:       1500 * time.Millisecond,
			hasElapsed:    true,
			termReason:    "Target cost reached",
			hasTermReason: true,
		}

		got := stateEntries(optionals, state)

		assertPairs(t, got, []string{
			"BestParam=[1 2]",
			"Param=[3 4]",
			"Time=1.5s",
			"TerminationReason=Target cost reached",
		})
	})
}

// TestStateEntries_DuplicateFields verifies that duplicated fields in
// the selection are not deduplicated.
func TestStateEntries_DuplicateFields(t *testing.T) {
	got := stateEntries([]Field{FieldIter, FieldIter}, &fakeState{iter: 7})

	assertPairs(t, got, []string{"Iter=7", "Iter=7"})
}

// TestStateEntries_RemainingFields covers the fields not exercised
// above.
func TestStateEntries_RemainingFields(t *testing.T) {
	state := &fakeState{
		bestCost:     0.5,
		isBest:       true,
		lastBestIter: 9,
		maxIters:     100,
		targetCost:   1e-8,
		termStatus:   "NotTerminated",
	}

	got := stateEntries([]Field{
		FieldBestCost, FieldIsBest, FieldLastBestIter,
		FieldMaxIters, FieldTargetCost, FieldTerminationStatus,
	}, state)

	assertPairs(t, got, []string{
		"BestCost=0.5",
		"IsBest=true",
		"LastBestIter=9",
		"MaxIters=100",
		"TargetCost=1e-08",
		"TerminationStatus=NotTerminated",
	})
}

// TestFormatFloat verifies that the float rendering round-trips
// exactly.
func TestFormatFloat(t *testing.T) {
	values := []float64{1.23, 0.1, 3, 1e300, 5e-324, -42.625}

	for _, v := range values {
		s := formatFloat(v)

		back, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q) failed: %v", s, err)
		}

		if back != v {
			t.Errorf("formatFloat(%v) = %q does not round-trip (got %v)", v, s, back)
		}
	}
}

// TestRecordAppendJSON verifies member order and duplicate-key
// preservation in the file backend's wire format.
func TestRecordAppendJSON(t *testing.T) {
	rec := &Record{
		Time:    time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Message: "init",
		Entries: []Entry{
			{"Iter", uint64(5)},
			{"Cost", "1.23"},
			{"Iter", uint64(5)},
			{"algorithm", "gradient descent"},
		},
	}

	var buf bytes.Buffer
	if err := rec.appendJSON(&buf); err != nil {
		t.Fatalf("appendJSON returned an error: %v", err)
	}

	got := buf.String()
	expected := `{"msg":"init","ts":"2026-08-25T12:00:00Z","Iter":5,"Cost":"1.23","Iter":5,"algorithm":"gradient descent"}`

	if got != expected {
		t.Errorf("unexpected JSON output:\ngot:  %s\nwant: %s", got, expected)
	}

	// The line must still parse as a JSON object.
	var m map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Errorf("output is not valid JSON: %v", err)
	}
}
