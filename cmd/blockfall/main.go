package main

import (
	"flag"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/sfx"
)

const windowTitle = "Blockfall"

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default game tables.")
	verbose := flag.Bool("v", false, "Log state transitions.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug windows.")
	mute := flag.Bool("mute", false, "Disable sound.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.Default()
	}

	opts := []game.Option{game.WithLogger(logger)}

	var player *sfx.Player
	if !*mute {
		if err := sfx.Init(sfx.DefaultSampleRate); err != nil {
			log.Printf("Audio initialization failed: %v", err)
		} else {
			player = sfx.New(sfx.DefaultSampleRate, sfx.Speaker)
			opts = append(opts, game.WithObserver(player))
		}
	}

	var events *debugui.EventLog
	if *debug {
		events = debugui.NewEventLog(64)
		opts = append(opts, game.WithObserver(events))
	}

	controller, err := game.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	g := &Game{
		cfg:        cfg,
		controller: controller,
		queue:      game.NewInputQueue(controller),
		scheduler:  loop.NewScheduler(),
		player:     player,
	}
	g.scheduler.Register(g.queue)
	g.scheduler.Register(controller)
	g.scheduler.RegisterNamed("Snapshot", loop.SystemFunc(g.capture))

	if *debug {
		g.imgui = debugui_ebiten.NewImguiBackend(windowTitle, cfg.ScreenWidth*2, cfg.ScreenHeight)
		g.overlay = debugui.NewOverlay()

		timer := debugui.NewFrameTimer()
		state := debugui.NewGameState(controller, events)
		playfield := debugui.NewPlayfield(12)
		perf := debugui.NewPerformanceStats(g.scheduler, 120)

		g.overlay.Add(func() { state.Render(&g.snap) })
		g.overlay.Add(func() { playfield.Render(&g.snap) })
		g.overlay.Add(func() { perf.Render(timer.GetDeltaTime()) })
		g.scheduler.Register(g.overlay)
	} else {
		ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
		ebiten.SetWindowTitle(windowTitle)
	}
	ebiten.SetTPS(cfg.FPS)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
