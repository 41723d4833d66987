// Package stats holds the evaluation counters exposed by the CLI and the
// HTTP API.
package stats

import (
	"sync/atomic"
)

type Counter struct {
	count int64
}

func NewCounter() *Counter {
	return &Counter{0}
}

func (counter *Counter) Add(nbr int) {
	atomic.AddInt64(&counter.count, int64(nbr))
}

func (counter *Counter) Get() int {
	return int(atomic.LoadInt64(&counter.count))
}

func (counter *Counter) GetAndReset() int {
	return int(atomic.SwapInt64(&counter.count, 0))
}

// Counters of an evaluator, shared by all of its calls.
type Counters struct {
	Evaluations *Counter `json:"-"`
	Evaluated   *Counter `json:"-"`
	Degenerate  *Counter `json:"-"`
	Failed      *Counter `json:"-"`
	Cancelled   *Counter `json:"-"`
}

type Snapshot struct {
	Evaluations int `json:"evaluations"`
	Evaluated   int `json:"evaluated"`
	Degenerate  int `json:"degenerate"`
	Failed      int `json:"failed"`
	Cancelled   int `json:"cancelled"`
}

func NewCounters() *Counters {
	return &Counters{
		Evaluations: NewCounter(),
		Evaluated:   NewCounter(),
		Degenerate:  NewCounter(),
		Failed:      NewCounter(),
		Cancelled:   NewCounter(),
	}
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Evaluations: c.Evaluations.Get(),
		Evaluated:   c.Evaluated.Get(),
		Degenerate:  c.Degenerate.Get(),
		Failed:      c.Failed.Get(),
		Cancelled:   c.Cancelled.Get(),
	}
}
