package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/sfx"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default game tables.")
	logPath := flag.String("log", "", "Write state transitions to this file.")
	hold := flag.Duration("hold", 150*time.Millisecond, "How long Down stays held after the last Down key event.")
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
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
		logger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	}

	opts := []game.Option{game.WithLogger(logger)}
	if !*mute {
		if err := sfx.Init(sfx.DefaultSampleRate); err != nil {
			logger.Printf("Audio initialization failed: %v", err)
		} else {
			opts = append(opts, game.WithObserver(sfx.New(sfx.DefaultSampleRate, sfx.Speaker)))
		}
	}

	controller, err := game.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	t := &terminal{
		screen:     screen,
		controller: controller,
		queue:      game.NewInputQueue(controller),
		down:       newDownLatch(cfg.Ticks(*hold)),
		scheduler:  loop.NewScheduler(),
	}
	t.scheduler.Register(t.queue)
	t.scheduler.Register(controller)
	t.scheduler.RegisterNamed("Render", loop.SystemFunc(t.render))

	t.run(cfg.TickInterval())
}
