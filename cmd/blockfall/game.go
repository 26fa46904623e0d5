package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/sfx"
)

var directionKeys = map[ebiten.Key]game.Direction{
	ebiten.KeyArrowLeft:  game.Left,
	ebiten.KeyArrowRight: game.Right,
	ebiten.KeyArrowUp:    game.Up,
	ebiten.KeyArrowDown:  game.Down,
}

// Game implements ebiten.Game around a controller and its scheduler.
type Game struct {
	cfg        config.Config
	controller *game.Controller
	queue      *game.InputQueue
	scheduler  *loop.Scheduler
	player     *sfx.Player
	muted      bool
	snap       game.Snapshot

	imgui   *debugui_ebiten.ImguiBackend
	overlay *debugui.Overlay
}

func (g *Game) capture(*loop.Frame) {
	g.snap = g.controller.Snapshot()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
	}

	if g.overlay == nil || !g.overlay.Input.WantCaptureKeyboard {
		g.readKeys()
	}
	g.scheduler.Once(1.0 / float64(g.cfg.FPS))

	if g.imgui != nil {
		g.imgui.EndFrame()
	}
	return nil
}

func (g *Game) readKeys() {
	for key, dir := range directionKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.queue.Press(dir)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.queue.Release(dir)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.controller.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.player != nil {
		g.muted = !g.muted
		if g.muted {
			g.player.SetVolume(0)
		} else {
			g.player.SetVolume(1)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	layout := newBoard(g.cfg)
	grid := rgba(g.cfg.GridColor)
	for col := 0; col < g.snap.Columns; col++ {
		for row := 0; row < g.snap.Rows; row++ {
			x, y, size := layout.cellRect(col, row)
			vector.StrokeRect(screen, x, y, size, size, 1, grid, false)

			c, ok := debugui.CellColor(g.snap.Cell(col, row))
			if !ok {
				continue
			}
			vector.DrawFilledRect(screen, x+1, y+1, size-2, size-2, rgba(c), false)
		}
	}

	s := g.snap.Stats
	status := fmt.Sprintf("%s  pieces %d  rows %d  games %d", g.snap.State, s.Spawned, s.RowsCleared, s.Games)
	ebitenutil.DebugPrintAt(screen, status, layout.left, layout.top-22)

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// board maps grid cells to screen pixels.
type board struct {
	left, top int
	cell      int
}

func newBoard(cfg config.Config) board {
	return board{
		left: cfg.DrawStart,
		top:  cfg.DrawStart,
		cell: cfg.FieldDisplaySize,
	}
}

func (b board) cellRect(col, row int) (x, y, size float32) {
	return float32(b.left + col*b.cell), float32(b.top + row*b.cell), float32(b.cell)
}

func rgba(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}
