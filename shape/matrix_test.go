package shape_test

import (
	"fmt"
	"testing"

	"github.com/plus3/blockfall/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var packedShapes = []struct {
	name string
	code uint32
	size int
}{
	{"O", 0b1111, 2},
	{"T", 0b010111000, 3},
	{"L", 0b011001001, 3},
	{"S", 0b011110000, 3},
	{"Z", 0b110011000, 3},
	{"J", 0b111001000, 3},
	{"I", 0b0000111100000000, 4},
}

// bounds recomputes the bounding box by brute force.
func bounds(m shape.Matrix) (left, right, lowest int) {
	left = m.Size()
	for col := 0; col < m.Size(); col++ {
		for row := 0; row < m.Size(); row++ {
			if m.At(col, row) {
				left = min(left, col)
				right = max(right, col)
				lowest = max(lowest, row)
			}
		}
	}
	return left, right, lowest
}

func TestDecode(t *testing.T) {
	t.Run("T piece", func(t *testing.T) {
		m, err := shape.Decode(0b010111000, 3)
		require.NoError(t, err)

		assert.Equal(t, 3, m.Size())
		assert.Equal(t, 4, m.Count())
		assert.Equal(t, "...\n###\n.#.", m.String())
		assert.Equal(t, 0, m.Left())
		assert.Equal(t, 2, m.Right())
		assert.Equal(t, 2, m.Lowest())
	})

	t.Run("I piece", func(t *testing.T) {
		m, err := shape.Decode(0b0000111100000000, 4)
		require.NoError(t, err)

		for col := 0; col < 4; col++ {
			assert.True(t, m.At(col, 2), "col %d", col)
		}
		assert.Equal(t, 0, m.Left())
		assert.Equal(t, 3, m.Right())
		assert.Equal(t, 2, m.Lowest())
	})

	t.Run("square fills its matrix", func(t *testing.T) {
		m, err := shape.Decode(0b1111, 2)
		require.NoError(t, err)
		assert.Equal(t, "##\n##", m.String())
		assert.Equal(t, 1, m.Lowest())
	})

	t.Run("code round trip", func(t *testing.T) {
		for _, tt := range packedShapes {
			m := shape.MustDecode(tt.code, tt.size)
			assert.Equal(t, tt.code, m.Code(), tt.name)
		}
	})

	t.Run("out of range access", func(t *testing.T) {
		m := shape.MustDecode(0b1111, 2)
		assert.False(t, m.At(-1, 0))
		assert.False(t, m.At(0, 2))
	})
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		code uint32
		size int
		err  error
	}{
		{"size too small", 0b1, 1, shape.ErrInvalidSize},
		{"size too large", 0b1, 5, shape.ErrInvalidSize},
		{"empty code", 0, 3, shape.ErrEmptyShape},
		{"bits beyond 2x2", 0b10000, 2, shape.ErrShapeOverflow},
		{"bits beyond 3x3", 0b1000000000, 3, shape.ErrShapeOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shape.Decode(tt.code, tt.size)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.Panics(t, func() { shape.MustDecode(0, 2) })
}

func TestRotateRight(t *testing.T) {
	t.Run("I piece turns vertical", func(t *testing.T) {
		m := shape.MustDecode(0b0000111100000000, 4).RotateRight()

		for row := 0; row < 4; row++ {
			assert.True(t, m.At(1, row), "row %d", row)
		}
		assert.Equal(t, 1, m.Left())
		assert.Equal(t, 1, m.Right())
		assert.Equal(t, 3, m.Lowest())
	})

	t.Run("T piece turns clockwise", func(t *testing.T) {
		m := shape.MustDecode(0b010111000, 3).RotateRight()
		assert.Equal(t, ".#.\n##.\n.#.", m.String())
	})

	t.Run("receiver is unchanged", func(t *testing.T) {
		m := shape.MustDecode(0b011001001, 3)
		before := m.String()
		_ = m.RotateRight()
		assert.Equal(t, before, m.String())
	})

	for _, tt := range packedShapes {
		t.Run(fmt.Sprintf("%s keeps cell count", tt.name), func(t *testing.T) {
			m := shape.MustDecode(tt.code, tt.size)
			want := m.Count()

			r := m
			for i := 0; i < 4; i++ {
				assert.Equal(t, want, r.Count(), "after %d rotations", i)

				left, right, lowest := bounds(r)
				assert.Equal(t, left, r.Left(), "left after %d rotations", i)
				assert.Equal(t, right, r.Right(), "right after %d rotations", i)
				assert.Equal(t, lowest, r.Lowest(), "lowest after %d rotations", i)

				r = r.RotateRight()
			}
		})

		t.Run(fmt.Sprintf("%s full turn is identity", tt.name), func(t *testing.T) {
			m := shape.MustDecode(tt.code, tt.size)
			r := m.RotateRight().RotateRight().RotateRight().RotateRight()
			assert.Equal(t, m, r)
		})
	}
}

func ExampleMatrix_RotateRight() {
	m := shape.MustDecode(0b011001001, 3)
	fmt.Println(m)
	fmt.Println()
	fmt.Println(m.RotateRight())
	// Output:
	// #..
	// #..
	// ##.
	//
	// ###
	// #..
	// ...
}
