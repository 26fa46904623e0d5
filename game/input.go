package game

import "github.com/plus3/blockfall/loop"

// KeyHandler receives decoded key events.
type KeyHandler interface {
	OnKeyDown(d Direction)
	OnKeyUp(d Direction)
}

// KeyEvent is one buffered key press or release.
type KeyEvent struct {
	Direction Direction
	Down      bool
}

// InputQueue buffers key events from the host and replays them, in arrival
// order, when the scheduler runs it. Register it ahead of the controller so
// commands apply to the piece as it was drawn last frame.
type InputQueue struct {
	target  KeyHandler
	pending []KeyEvent
}

// NewInputQueue creates a queue feeding target.
func NewInputQueue(target KeyHandler) *InputQueue {
	return &InputQueue{target: target}
}

// Press queues a key-down event.
func (q *InputQueue) Press(d Direction) {
	q.pending = append(q.pending, KeyEvent{Direction: d, Down: true})
}

// Release queues a key-up event.
func (q *InputQueue) Release(d Direction) {
	q.pending = append(q.pending, KeyEvent{Direction: d})
}

// Len returns the number of queued events.
func (q *InputQueue) Len() int {
	return len(q.pending)
}

// Execute replays and drops every queued event.
func (q *InputQueue) Execute(frame *loop.Frame) {
	for _, e := range q.pending {
		if e.Down {
			q.target.OnKeyDown(e.Direction)
		} else {
			q.target.OnKeyUp(e.Direction)
		}
	}
	q.pending = q.pending[:0]
}
