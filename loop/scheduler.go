package loop

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system. Durations
// are zero until the system has run.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

func (st *SystemStats) record(d time.Duration) {
	if st.ExecutionCount == 0 || d < st.MinDuration {
		st.MinDuration = d
	}
	st.MaxDuration = max(st.MaxDuration, d)
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
}

type entry struct {
	system System
	stats  SystemStats
}

// Scheduler runs its systems in registration order, once per tick.
type Scheduler struct {
	entries  []*entry
	commands *Commands
	tick     uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{commands: newCommands()}
}

// Register appends a system. Its statistics are reported under the name of
// its type.
func (s *Scheduler) Register(system System) {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.RegisterNamed(t.Name(), system)
}

// RegisterNamed appends a system reported under name.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.entries = append(s.entries, &entry{
		system: system,
		stats:  SystemStats{Name: name},
	})
}

// Once runs every system for one tick, then flushes deferred commands.
func (s *Scheduler) Once(dt float64) {
	s.tick++
	frame := &Frame{Tick: s.tick, DeltaTime: dt, Commands: s.commands}

	for _, e := range s.entries {
		start := time.Now()
		e.system.Execute(frame)
		e.stats.record(time.Since(start))
	}

	s.commands.Flush()
}

// Run ticks at the given interval until the context is cancelled. Systems
// see the nominal interval as their delta however late the ticker fires.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once(dt)
		}
	}
}

// Tick returns the number of ticks run so far.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// GetStats returns a copy of the per-system statistics.
func (s *Scheduler) GetStats() *SchedulerStats {
	out := &SchedulerStats{
		SystemCount: len(s.entries),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.entries)),
	}
	for i, e := range s.entries {
		st := e.stats
		if st.ExecutionCount > 0 {
			st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
		}
		out.Systems[i] = st
		out.TotalExecutions += st.ExecutionCount
	}
	return out
}
