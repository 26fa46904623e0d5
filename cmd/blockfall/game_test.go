package main

import (
	"image/color"
	"testing"

	"github.com/plus3/blockfall/config"
	"github.com/stretchr/testify/assert"
)

func TestBoard(t *testing.T) {
	b := newBoard(config.Default())

	x, y, size := b.cellRect(0, 0)
	assert.Equal(t, float32(30), x)
	assert.Equal(t, float32(30), y)
	assert.Equal(t, float32(34), size)

	x, y, _ = b.cellRect(11, 19)
	assert.Equal(t, float32(30+11*34), x)
	assert.Equal(t, float32(30+19*34), y)
	assert.LessOrEqual(t, b.left+12*34, config.Default().ScreenWidth)
	assert.LessOrEqual(t, b.top+20*34, config.Default().ScreenHeight)
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xdd, G: 0x77, B: 0x00, A: 0xff}, rgba(0xdd7700))
	assert.Equal(t, color.RGBA{R: 0xcc, G: 0xcc, B: 0xff, A: 0xff}, rgba(config.Default().GridColor))
}
