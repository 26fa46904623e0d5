// Package shape decodes bit-packed piece shapes into square matrices and rotates them.
package shape

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

const (
	MinSize = 2
	MaxSize = 4
)

var (
	ErrInvalidSize   = errors.New("shape size out of range")
	ErrEmptyShape    = errors.New("shape code has no occupied cells")
	ErrShapeOverflow = errors.New("shape code has bits beyond size*size")
)

// Matrix is a square grid of occupied cells indexed [col][row], together with
// the bounding box of the occupied cells. Matrix is a value: rotating returns a
// new Matrix and leaves the receiver untouched.
type Matrix struct {
	size   int
	cells  [MaxSize][MaxSize]bool
	left   int
	right  int
	lowest int
}

// Decode builds a Matrix from a packed shape code. Bit i of code maps to
// column i%size and row i/size, starting with the least significant bit.
func Decode(code uint32, size int) (Matrix, error) {
	if size < MinSize || size > MaxSize {
		return Matrix{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	n := size * size
	if code>>n != 0 {
		return Matrix{}, fmt.Errorf("%w: code %#b, size %d", ErrShapeOverflow, code, size)
	}
	if code == 0 {
		return Matrix{}, ErrEmptyShape
	}

	m := Matrix{size: size, left: size}
	mask := uint32(1)
	for i := 0; i < n; i++ {
		if code&mask != 0 {
			col, row := i%size, i/size
			m.cells[col][row] = true

			m.lowest = row
			m.right = max(m.right, col)
			m.left = min(m.left, col)
		}
		mask <<= 1
	}

	return m, nil
}

// MustDecode is like Decode but panics on error. Intended for static tables.
func MustDecode(code uint32, size int) Matrix {
	m, err := Decode(code, size)
	if err != nil {
		panic("shape: " + err.Error())
	}
	return m
}

// RotateRight returns the matrix rotated 90 degrees clockwise.
func (m Matrix) RotateRight() Matrix {
	return m.transpose().reverse()
}

func (m Matrix) transpose() Matrix {
	t := Matrix{size: m.size}
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			t.cells[col][row] = m.cells[row][col]
		}
	}
	t.updateBounds()
	return t
}

func (m Matrix) reverse() Matrix {
	r := Matrix{size: m.size}
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			r.cells[col][row] = m.cells[m.size-1-col][row]
		}
	}
	r.updateBounds()
	return r
}

func (m *Matrix) updateBounds() {
	m.lowest, m.right = 0, 0
	m.left = m.size

	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			if m.cells[col][row] {
				m.lowest = row
				m.right = max(m.right, col)
				m.left = min(m.left, col)
			}
		}
	}
}

// Size returns the side length of the matrix.
func (m Matrix) Size() int { return m.size }

// Left returns the leftmost occupied column.
func (m Matrix) Left() int { return m.left }

// Right returns the rightmost occupied column.
func (m Matrix) Right() int { return m.right }

// Lowest returns the lowest occupied row.
func (m Matrix) Lowest() int { return m.lowest }

// At reports whether the cell at col, row is occupied. Out of range
// coordinates are never occupied.
func (m Matrix) At(col, row int) bool {
	if col < 0 || row < 0 || col >= m.size || row >= m.size {
		return false
	}
	return m.cells[col][row]
}

// Count returns the number of occupied cells.
func (m Matrix) Count() int {
	n := 0
	for range m.Cells() {
		n++
	}
	return n
}

// Cells yields the occupied cells as (col, row), column by column.
func (m Matrix) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for col := 0; col < m.size; col++ {
			for row := 0; row < m.size; row++ {
				if m.cells[col][row] && !yield(col, row) {
					return
				}
			}
		}
	}
}

// Code packs the matrix back into the format accepted by Decode.
func (m Matrix) Code() uint32 {
	var code uint32
	for col, row := range m.Cells() {
		code |= 1 << (row*m.size + col)
	}
	return code
}

// String draws the matrix one row per line, '#' for occupied cells.
func (m Matrix) String() string {
	var sb strings.Builder
	for row := 0; row < m.size; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < m.size; col++ {
			if m.cells[col][row] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
