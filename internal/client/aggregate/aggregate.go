// Package aggregate settles a set of independent producers concurrently and
// reports per-slot outcomes. Composite views (such as a dashboard) use it so
// that one failing source degrades only its own slot instead of the whole
// view.
package aggregate

import (
	"context"
	"sync"
)

// Producer loads the value for one slot.
type Producer func(ctx context.Context) (any, error)

// Result is the settled outcome of one slot. Exactly one of Value and Err is
// meaningful.
type Result struct {
	Value any
	Err   error
}

// Run starts every producer concurrently and waits for all of them to settle.
// It never fails as a whole: each slot's success or failure is recorded
// independently in the returned map, keyed like the input.
func Run(ctx context.Context, producers map[string]Producer) map[string]Result {
	results := make(map[string]Result, len(producers))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for slot, produce := range producers {
		wg.Add(1)
		go func(slot string, produce Producer) {
			defer wg.Done()
			v, err := produce(ctx)
			mu.Lock()
			results[slot] = Result{Value: v, Err: err}
			mu.Unlock()
		}(slot, produce)
	}
	wg.Wait()

	return results
}

// Value extracts a typed slot value from settled results. ok is false when
// the slot is missing, failed, or holds a different type.
func Value[T any](results map[string]Result, slot string) (T, bool) {
	var zero T
	r, found := results[slot]
	if !found || r.Err != nil {
		return zero, false
	}
	v, ok := r.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
