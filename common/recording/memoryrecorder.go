package recording

import "sync"

type MemoryRecorder struct {
	events []Event
	lock   *sync.RWMutex
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		events: make([]Event, 0),
		lock:   &sync.RWMutex{},
	}
}

func (r *MemoryRecorder) Record(event Event) {
	r.lock.Lock()
	r.events = append(r.events, event)
	r.lock.Unlock()
}

func (r *MemoryRecorder) Events() []Event {
	r.lock.RLock()
	res := make([]Event, len(r.events))
	copy(res, r.events)
	r.lock.RUnlock()

	return res
}

// Filter returns the events of the given level; an empty level matches all.
func (r *MemoryRecorder) Filter(level Level, kind Kind) []Event {
	res := make([]Event, 0)
	for _, event := range r.Events() {
		if (level == "" || event.Level == level) && (kind == "" || event.Kind == kind) {
			res = append(res, event)
		}
	}

	return res
}

func (r *MemoryRecorder) Reset() {
	r.lock.Lock()
	r.events = make([]Event, 0)
	r.lock.Unlock()
}
