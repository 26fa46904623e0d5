// Package piece models the falling unit of the game and the factory that spawns it.
package piece

import (
	"strconv"

	"github.com/plus3/blockfall/shape"
)

// Kind enumerates the piece types, in the order of the shape table.
type Kind int

const (
	O Kind = iota
	T
	L
	S
	Z
	J
	I
)

// NumKinds is the number of built-in piece kinds.
const NumKinds = 7

var kindNames = [NumKinds]string{"O", "T", "L", "S", "Z", "J", "I"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Velocity is the per-tick motion of a piece. VX is always 0; VY is the
// current fall speed in rows per tick and toggles between Min and Max.
type Velocity struct {
	VX  int
	VY  float64
	Min float64
	Max float64
}

// Piece is the falling, player-controlled shape. X is the grid column of the
// shape's left side, Y the row of its top side; Y is fractional because fall
// speeds below one row per tick accumulate.
type Piece struct {
	Kind     Kind
	Shape    shape.Matrix
	Color    uint32
	X        int
	Y        float64
	Velocity Velocity
}

// SetPosition moves the piece without any validation.
func (p *Piece) SetPosition(x int, y float64) {
	p.X = x
	p.Y = y
}

// Accelerate switches to the accelerated fall speed.
func (p *Piece) Accelerate() {
	p.Velocity.VY = p.Velocity.Max
}

// SlowDown switches back to the default fall speed.
func (p *Piece) SlowDown() {
	p.Velocity.VY = p.Velocity.Min
}

func (p *Piece) MoveLeft() {
	p.X--
}

func (p *Piece) MoveRight() {
	p.X++
}

// RotateRight turns the shape clockwise in place. Validity against the
// field is the caller's concern.
func (p *Piece) RotateRight() {
	p.Shape = p.Shape.RotateRight()
}

// LeftEdge returns the leftmost grid column occupied by the piece.
func (p *Piece) LeftEdge() int {
	return p.X + p.Shape.Left()
}

// RightEdge returns the rightmost grid column occupied by the piece.
func (p *Piece) RightEdge() int {
	return p.X + p.Shape.Right()
}

// Advance applies one tick of motion.
func (p *Piece) Advance() {
	p.X += p.Velocity.VX
	p.Y += p.Velocity.VY
}
