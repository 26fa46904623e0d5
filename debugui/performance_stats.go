package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/blockfall/loop"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	values []float32
	index  int
	filled int
}

// NewFrameHistory keeps the last n frame times.
func NewFrameHistory(n int) *FrameHistory {
	return &FrameHistory{values: make([]float32, n)}
}

// Push records a frame time in seconds.
func (h *FrameHistory) Push(seconds float32) {
	h.values[h.index] = seconds * 1000.0
	h.index = (h.index + 1) % len(h.values)
	h.filled = min(h.filled+1, len(h.values))
}

// Average returns the mean of the recorded frame times in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.values {
		sum += v
	}
	return sum / float32(h.filled)
}

// Ordered returns the frame times oldest first.
func (h *FrameHistory) Ordered() []float32 {
	out := make([]float32, 0, len(h.values))
	out = append(out, h.values[h.index:]...)
	return append(out, h.values[:h.index]...)
}

// Max returns the largest recorded frame time in milliseconds.
func (h *FrameHistory) Max() float32 {
	var m float32
	for _, v := range h.values {
		m = max(m, v)
	}
	return m
}

// PerformanceStats shows frame times and per-system tick costs.
type PerformanceStats struct {
	historyFrames int
	history       *FrameHistory
	systems       map[string]*FrameHistory
	scheduler     *loop.Scheduler
}

func NewPerformanceStats(scheduler *loop.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		history:       NewFrameHistory(historyFrames),
		systems:       make(map[string]*FrameHistory),
		scheduler:     scheduler,
	}
}

// Sample records the frame time and the last tick cost of every system.
func (ps *PerformanceStats) Sample(deltaTime float32, stats *loop.SchedulerStats) {
	ps.history.Push(deltaTime)
	for _, s := range stats.Systems {
		h, ok := ps.systems[s.Name]
		if !ok {
			h = NewFrameHistory(ps.historyFrames)
			ps.systems[s.Name] = h
		}
		h.Push(float32(s.LastDuration.Seconds()))
	}
}

// SystemHistory returns the recorded tick costs of a system, or nil.
func (ps *PerformanceStats) SystemHistory(name string) *FrameHistory {
	return ps.systems[name]
}

func (ps *PerformanceStats) Render(deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.scheduler.GetStats()
	ps.Sample(deltaTime, stats)

	imgui.Text(fmt.Sprintf("Ticks: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))

	avgFrameTime := ps.history.Average()
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	if imgui.BeginTabBar("PerfTabs") {
		if imgui.BeginTabItem("Frame Time") {
			samples := ps.history.Ordered()
			imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
			imgui.EndTabItem()
		}
		if imgui.BeginTabItem("System Latency") {
			ps.plotSystems(stats)
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	if imgui.TreeNodeStr("System Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, s := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.LastDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (ps *PerformanceStats) plotSystems(stats *loop.SchedulerStats) {
	yMax := float32(0.1)
	for _, s := range stats.Systems {
		yMax = max(yMax, ps.systems[s.Name].Max())
	}

	if implot.BeginPlotV("Tick Cost", imgui.NewVec2(-1, 200), 0) {
		implot.SetupAxesV("Frame", "Time (ms)", 0, 0)
		implot.SetupAxisLimitsV(implot.AxisY1, 0, float64(yMax*1.1), implot.CondAlways)
		for _, s := range stats.Systems {
			samples := ps.systems[s.Name].Ordered()
			implot.PlotLineFloatPtrInt(s.Name, &samples[0], int32(len(samples)))
		}
		implot.EndPlot()
	}
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
