// Package recording collects the out-of-band events of an evaluation:
// errors, warnings and notes never travel inside numeric results.
package recording

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type Level string

var Levels = struct {
	Note    Level
	Warning Level
	Error   Level
}{
	Note:    Level("note"),
	Warning: Level("warning"),
	Error:   Level("error"),
}

type Kind string

var Kinds = struct {
	InvalidInput       Kind
	DegenerateGeometry Kind
	Cancelled          Kind
	Evaluation         Kind
}{
	InvalidInput:       Kind("invalid-input"),
	DegenerateGeometry: Kind("degenerate-geometry"),
	Cancelled:          Kind("cancelled"),
	Evaluation:         Kind("evaluation"),
}

type Event struct {
	Time        time.Time `json:"time"`
	Level       Level     `json:"level"`
	Kind        Kind      `json:"kind"`
	SpectatorID uuid.UUID `json:"spectator_id"`
	Message     string    `json:"message"`
	Err         error     `json:"-"`
}

func MakeEvent(level Level, kind Kind, spectatorID uuid.UUID, err error) Event {
	return Event{
		Time:        time.Now(),
		Level:       level,
		Kind:        kind,
		SpectatorID: spectatorID,
		Message:     err.Error(),
		Err:         err,
	}
}

// Recorder implementations must be safe for concurrent use: parallel
// evaluation workers record from their own goroutines.
type Recorder interface {
	Record(event Event)
}

// MultiRecorder forwards every event to all of its recorders.
type MultiRecorder []Recorder

func (m MultiRecorder) Record(event Event) {
	for _, r := range m {
		r.Record(event)
	}
}
