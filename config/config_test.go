package config_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 12, cfg.GridColumns)
	assert.Equal(t, 20, cfg.GridRows)
	assert.Equal(t, 7, cfg.NumTypes)
	assert.Len(t, cfg.Specs(), 7)
	assert.Equal(t, uint32(0xdd7700), cfg.Specs()[6].Color)
	assert.Equal(t, 0.2, cfg.Speeds().Max)

	for i, c := range cfg.Colors {
		for shift := 0; shift < 24; shift += 8 {
			channel := (c >> shift) & 0xff
			assert.Less(t, channel+(config.FixedShade>>shift)&0xff, uint32(0x100), "color %d", i)
		}
	}
}

func TestTicks(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 18, cfg.Ticks(300*time.Millisecond))
	assert.Equal(t, 48, cfg.Ticks(800*time.Millisecond))
	assert.Equal(t, 1, cfg.Ticks(time.Nanosecond))
	assert.Equal(t, 0, cfg.Ticks(0))
	assert.Equal(t, time.Second/60, cfg.TickInterval())

	cfg.FPS = 10
	assert.Equal(t, 3, cfg.Ticks(300*time.Millisecond))
	assert.Equal(t, 3, cfg.Ticks(250*time.Millisecond))
}

func TestParse(t *testing.T) {
	t.Run("overlays defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte(`
grid_columns: 10
clear_pause: 500ms
speed_default: 0.1
num_types: 2
colors: [0xff0000, 0x00ff00]
blocks:
  - {shape: 0b1111, size: 2}
  - {shape: 0b0000111100000000, size: 4}
`))
		require.NoError(t, err)

		assert.Equal(t, 10, cfg.GridColumns)
		assert.Equal(t, 20, cfg.GridRows)
		assert.Equal(t, 500*time.Millisecond, cfg.ClearPause)
		assert.Equal(t, 800*time.Millisecond, cfg.EndPause)
		assert.Equal(t, 0.1, cfg.SpeedDefault)
		assert.Equal(t, []uint32{0xff0000, 0x00ff00}, cfg.Colors)
		assert.Equal(t, config.Block{Shape: 0b1111, Size: 2}, cfg.Blocks[0])
	})

	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{"zero columns", "grid_columns: 0", config.ErrGridSize},
		{"zero fps", "fps: 0", config.ErrFPS},
		{"max below default", "speed_max: 0.01", config.ErrSpeed},
		{"max above one row per tick", "speed_default: 3\nspeed_max: 3", config.ErrSpeed},
		{"negative pause", "end_pause: -1s", config.ErrPause},
		{"type count", "num_types: 6", config.ErrTypeCount},
		{"shape too small", "max_shape_size: 3", config.ErrMaxShapeSize},
		{"shape wider than grid", "grid_columns: 3\nmax_shape_size: 4", config.ErrMaxShapeSize},
		{"bits beyond size", "num_types: 1\ncolors: [1]\nblocks: [{shape: 0b11111, size: 2}]", shape.ErrShapeOverflow},
		{"bad size", "num_types: 1\ncolors: [1]\nblocks: [{shape: 1, size: 5}]", shape.ErrInvalidSize},
		{"empty shape", "num_types: 1\ncolors: [1]\nblocks: [{shape: 0, size: 2}]", shape.ErrEmptyShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Parse([]byte("grid_columns: [1"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid_rows: 24\nfps: 30\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.GridRows)
	assert.Equal(t, 30, cfg.FPS)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
