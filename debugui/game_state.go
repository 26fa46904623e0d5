package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
)

// EventLog keeps the most recent controller events. It implements
// game.Observer.
type EventLog struct {
	events []game.Event
	limit  int
}

func NewEventLog(limit int) *EventLog {
	return &EventLog{limit: limit}
}

func (l *EventLog) OnEvent(e game.Event) {
	if len(l.events) == l.limit {
		copy(l.events, l.events[1:])
		l.events = l.events[:l.limit-1]
	}
	l.events = append(l.events, e)
}

// Events returns the logged events, oldest first.
func (l *EventLog) Events() []game.Event {
	return l.events
}

// Describe formats an event as one log line.
func Describe(e game.Event) string {
	switch e.Kind {
	case game.EventSpawned, game.EventSettled, game.EventEnded:
		return fmt.Sprintf("%6d %s %s", e.Tick, e.Kind, e.Piece)
	case game.EventCleared:
		return fmt.Sprintf("%6d %s %s rows %v", e.Tick, e.Kind, e.Piece, e.Rows)
	default:
		return fmt.Sprintf("%6d %s", e.Tick, e.Kind)
	}
}

// GameState shows the controller phase, counters and recent events.
type GameState struct {
	controller *game.Controller
	log        *EventLog
}

// NewGameState creates the window. Register log as an observer of
// controller to fill the event list.
func NewGameState(controller *game.Controller, log *EventLog) *GameState {
	return &GameState{controller: controller, log: log}
}

func (gs *GameState) Render(snap *game.Snapshot) {
	if !imgui.BeginV("Game State", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("State: %s", snap.State))
	imgui.Text(fmt.Sprintf("Input: %t", snap.InputEnabled))
	if pause := gs.controller.Pause(); pause > 0 {
		imgui.Text(fmt.Sprintf("Pause: %d ticks", pause))
	}
	if imgui.Button("Reset") {
		gs.controller.Reset()
	}

	if p := snap.Piece; p != nil {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Piece: %s at (%d, %.2f)", p.Kind, p.X, p.Y))
		imgui.Text(fmt.Sprintf("Extent: cols %d..%d, lowest row %d", p.Shape.Left(), p.Shape.Right(), p.Shape.Lowest()))
	}

	if imgui.TreeNodeStr("Counters") {
		s := snap.Stats
		imgui.BulletText(fmt.Sprintf("Ticks: %d", s.Ticks))
		imgui.BulletText(fmt.Sprintf("Games: %d", s.Games))
		imgui.BulletText(fmt.Sprintf("Pieces: %d spawned, %d settled", s.Spawned, s.Settled))
		imgui.BulletText(fmt.Sprintf("Rows cleared: %d in %d clears", s.RowsCleared, s.Clears))
		imgui.TreePop()
	}

	if gs.log != nil && imgui.TreeNodeStr("Events") {
		events := gs.log.Events()
		for i := len(events) - 1; i >= 0; i-- {
			imgui.Text(Describe(events[i]))
		}
		imgui.TreePop()
	}

	imgui.End()
}
