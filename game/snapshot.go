package game

import (
	"github.com/plus3/blockfall/field"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/shape"
)

// Stats counts what happened since the controller was created.
type Stats struct {
	Ticks       uint64
	Spawned     int
	Settled     int
	Clears      int
	RowsCleared int
	Games       int
}

// PieceView is the drawable part of the falling piece.
type PieceView struct {
	Kind  piece.Kind
	Shape shape.Matrix
	X     int
	Y     float64
	Color uint32
}

// Snapshot is a copy of everything a host needs to draw one frame. It does
// not alias controller state.
type Snapshot struct {
	Columns      int
	Rows         int
	Cells        []field.Cell
	Piece        *PieceView
	State        State
	InputEnabled bool
	Stats        Stats
}

// Cell returns the cell at col, row, or a Free cell outside the grid.
func (s *Snapshot) Cell(col, row int) field.Cell {
	if col < 0 || col >= s.Columns || row < 0 || row >= s.Rows {
		return field.Cell{}
	}
	return s.Cells[col*s.Rows+row]
}
