package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/field"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownLatch(t *testing.T) {
	d := newDownLatch(3)

	assert.False(t, d.Tick(), "nothing held")
	assert.True(t, d.Press())
	assert.False(t, d.Press(), "repeats extend the hold")

	assert.False(t, d.Tick())
	assert.False(t, d.Tick())
	assert.False(t, d.Press())
	assert.False(t, d.Tick())
	assert.False(t, d.Tick())
	assert.True(t, d.Tick())
	assert.False(t, d.Tick(), "released once")

	assert.True(t, d.Press())
	d.Reset()
	assert.False(t, d.Tick())

	assert.Equal(t, 1, newDownLatch(0).window)
}

func TestDirection(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want game.Direction
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.Left, true},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), game.Down, true},
		{tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), game.Up, true},
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), game.Right, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		got, ok := direction(tt.ev)
		assert.Equal(t, tt.ok, ok, tt.ev.Name())
		if ok {
			assert.Equal(t, tt.want, got, tt.ev.Name())
		}
	}
}

func TestCellStyle(t *testing.T) {
	_, ok := cellStyle(field.Cell{})
	assert.False(t, ok)

	style, ok := cellStyle(field.Cell{Status: field.Fixed, Color: 0xcc0000})
	require.True(t, ok)
	_, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(0xee, 0x22, 0x22), bg)
}

func newTestTerminal(t *testing.T, screen tcell.Screen) *terminal {
	t.Helper()
	controller, err := game.New(config.Default())
	require.NoError(t, err)

	term := &terminal{
		screen:     screen,
		controller: controller,
		queue:      game.NewInputQueue(controller),
		down:       newDownLatch(3),
		scheduler:  loop.NewScheduler(),
	}
	term.scheduler.Register(term.queue)
	term.scheduler.Register(controller)
	term.scheduler.RegisterNamed("Render", loop.SystemFunc(term.render))
	return term
}

func TestTerminalDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(60, 30)

	term := newTestTerminal(t, screen)
	term.scheduler.Once(1.0 / 60)

	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, '│', r)
	r, _, _, _ = screen.GetContent(0, 20)
	assert.Equal(t, '─', r)
	r, _, _, _ = screen.GetContent(28, 0)
	assert.Equal(t, 'S', r, "state is printed beside the field")

	assert.True(t, term.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.True(t, term.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.Equal(t, 1, term.queue.Len(), "repeated Down presses are merged")

	assert.False(t, term.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}

func TestTerminalRun(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 30)
	term := newTestTerminal(t, screen)

	done := make(chan struct{})
	go func() {
		term.run(time.Millisecond)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not return after q")
	}

	screen.Fini()
}
