// Package game runs the turn cycle of the puzzle: it spawns pieces, lets them
// fall one step per tick, reacts to landings and line clears, and restarts
// the field once the stack reaches the top.
package game

import (
	"fmt"
	"io"
	"log"
	"math/rand/v2"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/field"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/piece"
)

// Spawner produces the next piece at a spawn position.
type Spawner interface {
	Spawn(x int, y float64) *piece.Piece
}

// Option configures a Controller.
type Option func(*Controller)

// WithSpawner replaces the random piece factory.
func WithSpawner(s Spawner) Option {
	return func(c *Controller) { c.spawner = s }
}

// WithRand sets the source used for spawn columns and, unless a spawner is
// given, for piece kinds.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger logs state transitions to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithObserver adds an observer. Observers are called in the order added.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// Controller owns the field and the falling piece and is the only thing that
// changes either.
type Controller struct {
	cfg       config.Config
	field     *field.Field
	spawner   Spawner
	rng       *rand.Rand
	log       *log.Logger
	observers []Observer

	clock      Clock
	pause      *Alarm
	clearTicks int
	endTicks   int

	state State
	piece *piece.Piece
	input bool
	stats Stats
}

// New validates cfg and returns a controller in the Init state.
func New(cfg config.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}

	c := &Controller{
		cfg:        cfg,
		field:      field.New(cfg.GridColumns, cfg.GridRows),
		clearTicks: cfg.Ticks(cfg.ClearPause),
		endTicks:   cfg.Ticks(cfg.EndPause),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.log == nil {
		c.log = log.New(io.Discard, "", 0)
	}
	if c.spawner == nil {
		templates, err := piece.NewCatalog(cfg.Specs())
		if err != nil {
			return nil, fmt.Errorf("game pieces: %w", err)
		}
		factory, err := piece.NewFactory(templates, cfg.Speeds(), c.rng)
		if err != nil {
			return nil, fmt.Errorf("game pieces: %w", err)
		}
		c.spawner = factory
	}

	return c, nil
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.state
}

// InputEnabled reports whether key events currently reach the piece.
func (c *Controller) InputEnabled() bool {
	return c.input
}

// Stats returns the counters so far.
func (c *Controller) Stats() Stats {
	return c.stats
}

// Execute runs one tick, so the controller can be registered on a
// loop.Scheduler.
func (c *Controller) Execute(frame *loop.Frame) {
	c.OnTick()
}

// OnTick advances pending pauses, then does one transition's worth of work.
func (c *Controller) OnTick() {
	c.stats.Ticks++
	c.clock.Advance()

	switch c.state {
	case Init:
		c.field.Reset(c.cfg.GridColumns, c.cfg.GridRows)
		c.stats.Games++
		c.setState(Spawning)
	case Spawning:
		c.spawn()
	case Falling:
		c.fall()
	case Clearing, Ended:
		// waiting on c.pause
	}
}

func (c *Controller) spawn() {
	c.input = false

	x := c.rng.IntN(c.cfg.GridColumns - c.cfg.MaxShapeSize + 1)
	p := c.spawner.Spawn(x, float64(c.cfg.StartRow))
	if p == nil {
		panic("game: spawner returned no piece")
	}

	c.piece = p
	c.stats.Spawned++
	c.setState(Falling)
	c.emit(Event{Kind: EventSpawned, Piece: p.Kind})
}

func (c *Controller) fall() {
	p := c.piece
	c.field.Paint(p)

	if c.field.Overlaps(p) {
		c.end(p)
		return
	}

	c.input = true
	res := c.field.AttemptDescend(p)

	switch res.Outcome {
	case field.Available:
	case field.Collision:
		c.land()
		c.stats.Settled++
		c.setState(Spawning)
		c.emit(Event{Kind: EventSettled, Piece: p.Kind})
	case field.Clear:
		c.land()
		c.field.ClearRows(res.Rows)
		c.stats.Settled++
		c.stats.Clears++
		c.stats.RowsCleared += len(res.Rows)
		c.log.Printf("cleared rows %v", res.Rows)
		c.setState(Clearing)
		c.pause = c.clock.After(c.clearTicks, func() {
			c.setState(Spawning)
		})
		c.emit(Event{Kind: EventCleared, Piece: p.Kind, Rows: res.Rows})
	case field.EndGame:
		c.end(p)
	}
}

func (c *Controller) land() {
	c.piece = nil
	c.input = false
}

func (c *Controller) end(p *piece.Piece) {
	c.land()
	c.setState(Ended)
	c.pause = c.clock.After(c.endTicks, c.restart)
	c.emit(Event{Kind: EventEnded, Piece: p.Kind})
}

func (c *Controller) restart() {
	c.field.Reset(c.cfg.GridColumns, c.cfg.GridRows)
	c.land()
	c.stats.Games++
	c.setState(Spawning)
	c.emit(Event{Kind: EventRestarted})
}

// Reset cancels any pending pause, clears the field and drops the falling
// piece. The next tick spawns a new one.
func (c *Controller) Reset() {
	c.clock.CancelAll()
	c.pause = nil
	c.restart()
}

// Pause returns the ticks left in the current Clearing or Ended pause.
func (c *Controller) Pause() int {
	if c.pause == nil {
		return 0
	}
	return c.pause.Remaining(&c.clock)
}

// OnKeyDown applies a command to the falling piece. It does nothing unless
// input is enabled.
func (c *Controller) OnKeyDown(d Direction) {
	if !c.input || c.piece == nil {
		return
	}

	switch d {
	case Left:
		c.field.MoveLeft(c.piece)
	case Right:
		c.field.MoveRight(c.piece)
	case Up:
		c.field.Rotate(c.piece)
	case Down:
		c.field.Accelerate(c.piece)
	}
}

// OnKeyUp releases the accelerate command. Other directions have no release
// action.
func (c *Controller) OnKeyUp(d Direction) {
	if !c.input || c.piece == nil || d != Down {
		return
	}
	c.field.SlowDown(c.piece)
}

// Snapshot copies the state needed to draw the current frame.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Columns:      c.field.Columns(),
		Rows:         c.field.Rows(),
		Cells:        c.field.AppendCells(nil),
		State:        c.state,
		InputEnabled: c.input,
		Stats:        c.stats,
	}
	if p := c.piece; p != nil {
		s.Piece = &PieceView{
			Kind:  p.Kind,
			Shape: p.Shape,
			X:     p.X,
			Y:     p.Y,
			Color: p.Color,
		}
	}
	return s
}

func (c *Controller) setState(s State) {
	if s != c.state {
		c.log.Printf("state %s -> %s", c.state, s)
	}
	c.state = s
}

func (c *Controller) emit(e Event) {
	e.Tick = c.stats.Ticks
	for _, o := range c.observers {
		o.OnEvent(e)
	}
}
