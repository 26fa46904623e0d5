package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/field"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
)

// cellWidth is the number of terminal columns per grid column, so cells look
// roughly square.
const cellWidth = 2

var borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)

type terminal struct {
	screen     tcell.Screen
	controller *game.Controller
	queue      *game.InputQueue
	down       *downLatch
	scheduler  *loop.Scheduler
}

func (t *terminal) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			// nil once the screen is finalized
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	dt := interval.Seconds()
	for {
		select {
		case ev := <-eventChan:
			if !t.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			if t.down.Tick() {
				t.queue.Release(game.Down)
			}
			t.scheduler.Once(dt)
		}
	}
}

func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				t.controller.Reset()
				t.down.Reset()
				return true
			}
		}

		dir, ok := direction(ev)
		if !ok {
			return true
		}
		if dir == game.Down {
			if t.down.Press() {
				t.queue.Press(game.Down)
			}
			return true
		}
		t.queue.Press(dir)

	case *tcell.EventResize:
		t.screen.Sync()
	}

	return true
}

// direction maps arrow keys and their vi equivalents to game commands.
func direction(ev *tcell.EventKey) (game.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return game.Left, true
	case tcell.KeyRight:
		return game.Right, true
	case tcell.KeyUp:
		return game.Up, true
	case tcell.KeyDown:
		return game.Down, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			return game.Left, true
		case 'l':
			return game.Right, true
		case 'k':
			return game.Up, true
		case 'j':
			return game.Down, true
		}
	}
	return 0, false
}

func (t *terminal) render(frame *loop.Frame) {
	snap := t.controller.Snapshot()
	frame.Commands.Defer(func() { t.draw(&snap) })
}

func (t *terminal) draw(snap *game.Snapshot) {
	t.screen.Clear()

	width := snap.Columns * cellWidth
	for row := 0; row < snap.Rows; row++ {
		t.screen.SetContent(0, row, '│', nil, borderStyle)
		t.screen.SetContent(width+1, row, '│', nil, borderStyle)
		for col := 0; col < snap.Columns; col++ {
			style, ok := cellStyle(snap.Cell(col, row))
			if !ok {
				continue
			}
			for i := range cellWidth {
				t.screen.SetContent(1+col*cellWidth+i, row, ' ', nil, style)
			}
		}
	}
	for x := 0; x <= width+1; x++ {
		t.screen.SetContent(x, snap.Rows, '─', nil, borderStyle)
	}

	s := snap.Stats
	lines := []string{
		fmt.Sprintf("%-8s", snap.State),
		fmt.Sprintf("pieces %d", s.Spawned),
		fmt.Sprintf("rows   %d", s.RowsCleared),
		fmt.Sprintf("games  %d", s.Games),
		"",
		"←→/hl move",
		"↑/k   rotate",
		"↓/j   drop",
		"r     reset",
		"q     quit",
	}
	for i, line := range lines {
		drawText(t.screen, width+4, i, line, tcell.StyleDefault)
	}

	t.screen.Show()
}

func cellStyle(cell field.Cell) (tcell.Style, bool) {
	c := cell.Color
	switch cell.Status {
	case field.Fixed:
		c += config.FixedShade
	case field.Temporary:
	default:
		return tcell.StyleDefault, false
	}
	bg := tcell.NewRGBColor(int32(c>>16&0xff), int32(c>>8&0xff), int32(c&0xff))
	return tcell.StyleDefault.Background(bg), true
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// downLatch emulates a key release for Down, which terminals never report:
// Down counts as held until a window of ticks passes with no repeat.
type downLatch struct {
	window int
	idle   int
	held   bool
}

func newDownLatch(window int) *downLatch {
	return &downLatch{window: max(window, 1)}
}

// Press records a Down event and reports whether it starts a new hold.
func (d *downLatch) Press() bool {
	d.idle = 0
	if d.held {
		return false
	}
	d.held = true
	return true
}

// Tick reports whether the hold has just expired.
func (d *downLatch) Tick() bool {
	if !d.held {
		return false
	}
	d.idle++
	if d.idle < d.window {
		return false
	}
	d.held = false
	return true
}

func (d *downLatch) Reset() {
	d.held = false
	d.idle = 0
}
