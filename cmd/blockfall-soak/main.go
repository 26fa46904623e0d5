package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak run should last.")
	maxTicks := flag.Uint64("ticks", 0, "Stop after this many ticks (0 for no limit).")
	seed := flag.Uint64("seed", 0, "Random seed (0 picks one).")
	keyRate := flag.Float64("keys", 0.2, "Probability of a random key event per tick.")
	configPath := flag.String("config", "", "YAML file overriding the default game tables.")
	verbose := flag.Bool("v", false, "Log state transitions.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting blockfall soak run...")

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(*seed, *seed))

	opts := []game.Option{game.WithRand(rng)}
	if *verbose {
		opts = append(opts, game.WithLogger(log.Default()))
	}

	controller, err := game.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	queue := game.NewInputQueue(controller)
	monkey := &Monkey{Queue: queue, Rand: rand.New(rand.NewPCG(*seed, ^*seed)), Rate: *keyRate}

	scheduler := loop.NewScheduler()
	scheduler.Register(monkey)
	scheduler.Register(queue)
	scheduler.Register(controller)

	report := &Report{
		Duration:       *duration,
		MaxTicks:       *maxTicks,
		Seed:           *seed,
		KeyRate:        *keyRate,
		Columns:        cfg.GridColumns,
		Rows:           cfg.GridRows,
		GCPauseMetrics: *gcPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s (seed %d)...\n", *duration, *seed)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	dt := 1.0 / float64(cfg.FPS)
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if *maxTicks > 0 && scheduler.Tick() >= *maxTicks {
				break Loop
			}

			tickStart := time.Now()
			scheduler.Once(dt)
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Game = controller.Stats()
	report.Scheduler = scheduler.GetStats()
	report.Keys = monkey.Sent
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak run finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// Monkey queues random key presses, releasing Down a few ticks after
// pressing it.
type Monkey struct {
	Queue *game.InputQueue
	Rand  *rand.Rand
	Rate  float64
	Sent  int

	downFor int
}

func (m *Monkey) Execute(frame *loop.Frame) {
	if m.downFor > 0 {
		m.downFor--
		if m.downFor == 0 {
			m.Queue.Release(game.Down)
		}
	}

	if m.Rand.Float64() >= m.Rate {
		return
	}

	dir := game.Direction(m.Rand.IntN(4))
	if dir == game.Down {
		if m.downFor > 0 {
			return
		}
		m.downFor = 1 + m.Rand.IntN(30)
	}
	m.Queue.Press(dir)
	m.Sent++
}
