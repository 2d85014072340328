package optlog

import "time"

// StateView is a read-only view of an optimization run's current state,
// exposing one accessor per Field. It is borrowed for the duration of a
// single ObserveIter call and never retained by the Logger.
//
// Accessors for optional data return an additional ok flag; when ok is
// false the corresponding field renders as the literal "None".
// Implementations are expected to be total: an accessor must not panic
// for a field the caller did not select.
type StateView interface {
	// BestCost returns the lowest cost encountered so far.
	BestCost() float64

	// BestParam returns the parameter vector that produced BestCost,
	// or ok=false if no parameter has been recorded yet.
	BestParam() (interface{}, bool)

	// Cost returns the cost of the current iteration.
	Cost() float64

	// FuncCounts returns the per-function evaluation counters, keyed by
	// function name (e.g. "cost_count", "gradient_count"). Iteration
	// order of the map is not specified.
	FuncCounts() map[string]uint64

	// IsBest reports whether the current iteration produced a new best.
	IsBest() bool

	// Iter returns the current iteration number.
	Iter() uint64

	// LastBestIter returns the iteration at which the best cost so far
	// was found.
	LastBestIter() uint64

	// MaxIters returns the configured iteration limit.
	MaxIters() uint64

	// Param returns the current parameter vector, or ok=false if none
	// has been set.
	Param() (interface{}, bool)

	// TargetCost returns the cost at which the run stops early.
	TargetCost() float64

	// TerminationReason returns the descriptive text of the termination
	// reason, or ok=false if the run has not terminated.
	TerminationReason() (string, bool)

	// TerminationStatus returns a textual description of the run's
	// termination state. Always present.
	TerminationStatus() string

	// Time returns the elapsed wall-clock time of the run, or ok=false
	// if timing is not tracked.
	Time() (time.Duration, bool)
}
