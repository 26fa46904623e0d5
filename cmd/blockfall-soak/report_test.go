package main

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestSoakRun(t *testing.T) {
	controller, err := game.New(config.Default(), game.WithRand(rand.New(rand.NewPCG(7, 7))))
	require.NoError(t, err)

	queue := game.NewInputQueue(controller)
	monkey := &Monkey{Queue: queue, Rand: rand.New(rand.NewPCG(7, 8)), Rate: 0.5}

	scheduler := loop.NewScheduler()
	scheduler.Register(monkey)
	scheduler.Register(queue)
	scheduler.Register(controller)

	for range 100000 {
		scheduler.Once(1.0 / 60)
	}

	stats := controller.Stats()
	assert.Equal(t, uint64(100000), stats.Ticks)
	assert.Greater(t, stats.Spawned, 10)
	assert.Greater(t, stats.Games, 1, "random play tops out and restarts")
	assert.NotZero(t, monkey.Sent)

	report := &Report{
		Duration:  time.Second,
		Seed:      7,
		Columns:   12,
		Rows:      20,
		Game:      stats,
		Scheduler: scheduler.GetStats(),
		Keys:      monkey.Sent,
	}
	var sb strings.Builder
	require.NoError(t, report.Generate(&sb))

	out := sb.String()
	assert.Contains(t, out, "# Blockfall Soak Report")
	assert.Contains(t, out, "- **Grid:** 12x20")
	assert.Contains(t, out, "| Monkey | 100000 |")
	assert.Contains(t, out, "| Controller | 100000 |")
	assert.NotContains(t, out, "GC Pause")
}
