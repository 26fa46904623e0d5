package game

import (
	"strconv"

	"github.com/plus3/blockfall/piece"
)

// EventKind identifies what happened during a tick.
type EventKind int

const (
	// EventSpawned is sent when a new piece enters play.
	EventSpawned EventKind = iota
	// EventSettled is sent when a piece is fixed without completing a row.
	EventSettled
	// EventCleared is sent when a piece completes rows; Event.Rows lists them.
	EventCleared
	// EventEnded is sent when the stack reaches the top of the grid.
	EventEnded
	// EventRestarted is sent when the field is reset after an end or by Reset.
	EventRestarted
)

var eventNames = [...]string{"Spawned", "Settled", "Cleared", "Ended", "Restarted"}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "EventKind(" + strconv.Itoa(int(k)) + ")"
}

// Event describes a state change of the controller.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Piece piece.Kind
	Rows  []int
}

// Observer receives controller events synchronously, on the goroutine that
// drives the controller.
type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }
