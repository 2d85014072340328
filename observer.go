package optlog

// Observer is invoked by an optimization driver at defined lifecycle
// points: once after initialization and once after every iteration.
// *Logger implements Observer; custom implementations can forward
// progress to dashboards, convergence checks, or anywhere else.
//
// The StateView passed to ObserveIter is only valid for the duration of
// the call and must not be retained.
type Observer interface {
	// ObserveInit is called once before the first iteration.
	ObserveInit(msg string, kv *KV) error

	// ObserveIter is called after every iteration with the run's
	// current state.
	ObserveIter(state StateView, kv *KV) error
}

var _ Observer = (*Logger)(nil)

// Observers forwards each lifecycle event to every contained observer
// in slice order, returning the first error encountered. A failing
// observer does not stop the remaining ones from being invoked.
type Observers []Observer

func (obs Observers) ObserveInit(msg string, kv *KV) error {
	var first error

	for _, o := range obs {
		if err := o.ObserveInit(msg, kv); err != nil && first == nil {
			first = err
		}
	}

	return first
}

func (obs Observers) ObserveIter(state StateView, kv *KV) error {
	var first error

	for _, o := range obs {
		if err := o.ObserveIter(state, kv); err != nil && first == nil {
			first = err
		}
	}

	return first
}
