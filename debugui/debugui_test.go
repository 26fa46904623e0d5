package debugui_test

import (
	"testing"

	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/field"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/stretchr/testify/assert"
)

func TestFrameHistory(t *testing.T) {
	h := debugui.NewFrameHistory(4)
	assert.Zero(t, h.Average())

	h.Push(0.010)
	h.Push(0.020)
	assert.InDelta(t, 15.0, h.Average(), 1e-4)

	for range 4 {
		h.Push(0.016)
	}
	assert.InDelta(t, 16.0, h.Average(), 1e-4, "older frames roll off")
}

func TestEventLog(t *testing.T) {
	l := debugui.NewEventLog(2)
	for tick := range uint64(3) {
		l.OnEvent(game.Event{Kind: game.EventSpawned, Tick: tick})
	}

	events := l.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, uint64(1), events[0].Tick)
	assert.Equal(t, uint64(2), events[1].Tick)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "    12 Cleared I rows [18 19]",
		debugui.Describe(game.Event{Kind: game.EventCleared, Tick: 12, Piece: 6, Rows: []int{18, 19}}))
	assert.Equal(t, "     3 Restarted", debugui.Describe(game.Event{Kind: game.EventRestarted, Tick: 3}))
	assert.Equal(t, "     7 Settled T", debugui.Describe(game.Event{Kind: game.EventSettled, Tick: 7, Piece: 1}))
}

func TestCellColor(t *testing.T) {
	_, ok := debugui.CellColor(field.Cell{})
	assert.False(t, ok)

	c, ok := debugui.CellColor(field.Cell{Status: field.Temporary, Color: 0xcc0000})
	assert.True(t, ok)
	assert.Equal(t, uint32(0xcc0000), c)

	c, ok = debugui.CellColor(field.Cell{Status: field.Fixed, Color: 0xcc0000})
	assert.True(t, ok)
	assert.Equal(t, uint32(0xee2222), c)

	r, g, b := debugui.RGB(0xff8000)
	assert.Equal(t, float32(1), r)
	assert.InDelta(t, 0.502, g, 1e-3)
	assert.Zero(t, b)
}

func TestFrameHistoryOrdered(t *testing.T) {
	h := debugui.NewFrameHistory(3)
	for _, s := range []float32{0.001, 0.002, 0.003, 0.004} {
		h.Push(s)
	}

	ordered := h.Ordered()
	assert.InDeltaSlice(t, []float32{2, 3, 4}, ordered, 1e-4)
	assert.InDelta(t, 4.0, h.Max(), 1e-4)
}

func TestPerformanceStatsSample(t *testing.T) {
	scheduler := loop.NewScheduler()
	scheduler.RegisterNamed("idle", idle{})
	scheduler.Once(1.0 / 60)

	ps := debugui.NewPerformanceStats(scheduler, 8)
	assert.Nil(t, ps.SystemHistory("idle"))

	ps.Sample(1.0/60, scheduler.GetStats())
	h := ps.SystemHistory("idle")
	if assert.NotNil(t, h) {
		assert.Len(t, h.Ordered(), 8)
	}
}

type idle struct{}

func (idle) Execute(*loop.Frame) {}
