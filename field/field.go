// Package field implements the play field grid: painting the falling piece,
// collision detection, fixation and line clearing.
//
// The field never owns the falling piece. Every operation that needs it takes
// the piece as an argument; the caller keeps it alive between spawn and
// fixation.
package field

import (
	"math"
	"slices"
	"strings"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/shape"
)

// Field is a grid of columns x rows cells. It caches the cells covered by
// the falling piece so collision checks never rescan the whole grid.
type Field struct {
	columns   int
	rows      int
	cells     []Cell
	temporary []Coord
	touched   *intmap.Map[int, bool]
}

// New allocates an empty field.
func New(columns, rows int) *Field {
	f := &Field{
		touched: intmap.New[int, bool](8),
	}
	f.Reset(columns, rows)
	return f
}

// Reset resizes the field and frees every cell.
func (f *Field) Reset(columns, rows int) {
	f.columns = columns
	f.rows = rows
	if cap(f.cells) >= columns*rows {
		f.cells = f.cells[:columns*rows]
		clear(f.cells)
	} else {
		f.cells = make([]Cell, columns*rows)
	}
	f.temporary = f.temporary[:0]
}

func (f *Field) Columns() int { return f.columns }

func (f *Field) Rows() int { return f.rows }

// Cell returns the cell at col, row. Out of range coordinates read as Free.
func (f *Field) Cell(col, row int) Cell {
	if !f.inBounds(col, row) {
		return Cell{}
	}
	return f.cells[f.index(col, row)]
}

// Temporary returns the cells currently covered by the falling piece, in the
// order they were painted.
func (f *Field) Temporary() []Coord {
	return slices.Clone(f.temporary)
}

// AppendCells appends all cells to dst in column-major order and returns the
// extended slice.
func (f *Field) AppendCells(dst []Cell) []Cell {
	return append(dst, f.cells...)
}

// FixedCount returns the number of Fixed cells.
func (f *Field) FixedCount() int {
	n := 0
	for _, c := range f.cells {
		if c.Status == Fixed {
			n++
		}
	}
	return n
}

// Fix marks a single cell as Fixed. It reports false when the cell is out of
// range or covered by the falling piece.
func (f *Field) Fix(col, row int, color uint32) bool {
	if !f.inBounds(col, row) {
		return false
	}
	cell := &f.cells[f.index(col, row)]
	if cell.Status == Temporary {
		return false
	}
	*cell = Cell{Status: Fixed, Color: color}
	return true
}

// Paint marks the cells covered by p as Temporary, releasing the cells it
// covered before. Cells projected outside the grid are skipped.
func (f *Field) Paint(p *piece.Piece) {
	f.releaseTemporary()

	baseRow := int(math.Floor(p.Y))
	for col, row := range p.Shape.Cells() {
		c, r := p.X+col, baseRow+row
		if !f.inBounds(c, r) {
			continue
		}

		cell := &f.cells[f.index(c, r)]
		if cell.Status == Fixed {
			continue
		}
		*cell = Cell{Status: Temporary, Color: p.Color}
		f.temporary = append(f.temporary, Coord{Col: c, Row: r})
	}
}

// AttemptDescend moves p one tick down if nothing is below it. Otherwise the
// piece is fixed in place and the completed rows, if any, are reported.
// Paint must have been called for p beforehand.
func (f *Field) AttemptDescend(p *piece.Piece) Result {
	blocked := p.Y+float64(p.Shape.Lowest())+1 >= float64(f.rows)
	collisionRow := -1

	if !blocked {
		for _, c := range f.temporary {
			if f.Cell(c.Col, c.Row+1).Status == Fixed {
				collisionRow = c.Row
				blocked = true
				break
			}
		}
	}

	if !blocked {
		p.Advance()
		return Result{Outcome: Available}
	}

	if collisionRow == 0 {
		return Result{Outcome: EndGame}
	}

	if rows := f.fixate(p.Color); len(rows) > 0 {
		return Result{Outcome: Clear, Rows: rows}
	}
	return Result{Outcome: Collision}
}

// fixate turns the Temporary cells into Fixed ones and returns the sorted
// indices of the rows this completed.
func (f *Field) fixate(color uint32) []int {
	for _, c := range f.temporary {
		f.cells[f.index(c.Col, c.Row)] = Cell{Status: Fixed, Color: color}
	}

	f.touched.Clear()
	var complete []int
	for _, c := range f.temporary {
		if _, seen := f.touched.Get(c.Row); seen {
			continue
		}
		f.touched.Put(c.Row, true)

		if f.rowFull(c.Row) {
			complete = append(complete, c.Row)
		}
	}
	f.temporary = f.temporary[:0]

	slices.Sort(complete)
	return complete
}

func (f *Field) rowFull(row int) bool {
	for col := 0; col < f.columns; col++ {
		if f.cells[f.index(col, row)].Status != Fixed {
			return false
		}
	}
	return true
}

// ClearRows removes the given rows. Every row above a removed row moves down
// by the number of removed rows below it, and the rows vacated at the top are
// freed. For a batch of rows that are not adjacent this differs from
// shifting everything above the lowest row by the batch size, which would
// drop the rows in between.
func (f *Field) ClearRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	f.releaseTemporary()

	removed := make([]bool, f.rows)
	for _, r := range rows {
		if r >= 0 && r < f.rows {
			removed[r] = true
		}
	}

	for col := 0; col < f.columns; col++ {
		dst := f.rows - 1
		for src := f.rows - 1; src >= 0; src-- {
			if removed[src] {
				continue
			}
			if dst != src {
				f.cells[f.index(col, dst)] = f.cells[f.index(col, src)]
			}
			dst--
		}
		for ; dst >= 0; dst-- {
			f.cells[f.index(col, dst)] = Cell{}
		}
	}
}

// CanMoveLeft reports whether p can shift one column to the left. The piece
// is projected from its position rather than from the Temporary cells, which
// lag a row behind after a descent crosses a row boundary.
func (f *Field) CanMoveLeft(p *piece.Piece) bool {
	return f.fits(p.Shape, p.X-1, p.Y)
}

// CanMoveRight reports whether p can shift one column to the right.
func (f *Field) CanMoveRight(p *piece.Piece) bool {
	return f.fits(p.Shape, p.X+1, p.Y)
}

// MoveLeft shifts p left when allowed and repaints it.
func (f *Field) MoveLeft(p *piece.Piece) bool {
	if !f.CanMoveLeft(p) {
		return false
	}
	p.MoveLeft()
	f.Paint(p)
	return true
}

// MoveRight shifts p right when allowed and repaints it.
func (f *Field) MoveRight(p *piece.Piece) bool {
	if !f.CanMoveRight(p) {
		return false
	}
	p.MoveRight()
	f.Paint(p)
	return true
}

// CanRotate reports whether p, turned clockwise at its current position,
// stays inside the walls and floor without overlapping Fixed cells. There
// is no wall kick.
func (f *Field) CanRotate(p *piece.Piece) bool {
	return f.fits(p.Shape.RotateRight(), p.X, p.Y)
}

// fits reports whether m placed at column x and row floor(y) stays between
// the walls and above the floor without covering a Fixed cell. Rows above
// the grid are open.
func (f *Field) fits(m shape.Matrix, x int, y float64) bool {
	baseRow := int(math.Floor(y))
	for col, row := range m.Cells() {
		c, r := x+col, baseRow+row
		if c < 0 || c >= f.columns || r >= f.rows {
			return false
		}
		if r >= 0 && f.cells[f.index(c, r)].Status == Fixed {
			return false
		}
	}
	return true
}

// Rotate turns p clockwise when allowed and repaints it.
func (f *Field) Rotate(p *piece.Piece) bool {
	if !f.CanRotate(p) {
		return false
	}
	p.RotateRight()
	f.Paint(p)
	return true
}

func (f *Field) Accelerate(p *piece.Piece) {
	p.Accelerate()
}

func (f *Field) SlowDown(p *piece.Piece) {
	p.SlowDown()
}

// Overlaps reports whether any in-grid cell of p lies on a Fixed cell. This
// happens only when a piece enters the grid from above onto a stack that
// already reaches row 0.
func (f *Field) Overlaps(p *piece.Piece) bool {
	baseRow := int(math.Floor(p.Y))
	for col, row := range p.Shape.Cells() {
		c, r := p.X+col, baseRow+row
		if f.inBounds(c, r) && f.cells[f.index(c, r)].Status == Fixed {
			return true
		}
	}
	return false
}

// String draws the field one row per line: '#' Fixed, '@' Temporary, '.' Free.
func (f *Field) String() string {
	var sb strings.Builder
	for row := 0; row < f.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < f.columns; col++ {
			switch f.cells[f.index(col, row)].Status {
			case Fixed:
				sb.WriteByte('#')
			case Temporary:
				sb.WriteByte('@')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func (f *Field) releaseTemporary() {
	for _, c := range f.temporary {
		cell := &f.cells[f.index(c.Col, c.Row)]
		if cell.Status == Temporary {
			*cell = Cell{}
		}
	}
	f.temporary = f.temporary[:0]
}

func (f *Field) inBounds(col, row int) bool {
	return col >= 0 && col < f.columns && row >= 0 && row < f.rows
}

func (f *Field) index(col, row int) int {
	return col*f.rows + row
}
