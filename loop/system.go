// Package loop drives the game at a fixed tick rate. A host registers systems
// (input forwarding, the game controller, audio, debug overlays) on a
// Scheduler and calls Once per frame, or lets Run own the ticker.
package loop

// System is one step of a tick. Systems keep their own state between ticks.
type System interface {
	Execute(frame *Frame)
}

// Frame is handed to every system during a tick.
type Frame struct {
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
}

// SystemFunc adapts a function to System.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }
