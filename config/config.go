// Package config holds the game's tunable tables: grid size, fall speeds,
// piece colors and packed shapes, pauses and the rendering constants used by
// the hosts.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/shape"
	"gopkg.in/yaml.v3"
)

var (
	ErrGridSize     = errors.New("grid must have positive columns and rows")
	ErrFPS          = errors.New("fps must be positive")
	ErrSpeed        = errors.New("fall speeds must satisfy 0 < default <= max <= 1")
	ErrTypeCount    = errors.New("number of types does not match colors and blocks")
	ErrMaxShapeSize = errors.New("max shape size does not cover every block")
	ErrPause        = errors.New("pauses must not be negative")
)

// FixedShade is added to a piece color when drawing cells that have landed.
// Every color channel must stay below 0xde for the sum not to overflow.
const FixedShade = 0x222222

// Block is a packed piece shape. Bit i of Shape is column i%Size, row i/Size.
type Block struct {
	Shape uint32 `yaml:"shape"`
	Size  int    `yaml:"size"`
}

// Config is the complete set of game parameters.
type Config struct {
	FPS int `yaml:"fps"`

	ScreenWidth      int    `yaml:"screen_width"`
	ScreenHeight     int    `yaml:"screen_height"`
	DrawStart        int    `yaml:"draw_start"`
	FieldDisplaySize int    `yaml:"field_display_size"`
	GridColor        uint32 `yaml:"grid_color"`

	GridColumns  int `yaml:"grid_columns"`
	GridRows     int `yaml:"grid_rows"`
	MaxShapeSize int `yaml:"max_shape_size"`
	StartRow     int `yaml:"start_row"`

	SpeedDefault float64 `yaml:"speed_default"`
	SpeedMax     float64 `yaml:"speed_max"`

	ClearPause time.Duration `yaml:"clear_pause"`
	EndPause   time.Duration `yaml:"end_pause"`

	NumTypes int      `yaml:"num_types"`
	Colors   []uint32 `yaml:"colors"`
	Blocks   []Block  `yaml:"blocks"`
}

// Default returns the stock game: a 12x20 grid, 60 ticks per second and the
// seven classic pieces.
func Default() Config {
	return Config{
		FPS: 60,

		ScreenWidth:      450,
		ScreenHeight:     720,
		DrawStart:        30,
		FieldDisplaySize: 34,
		GridColor:        0xCCCCFF,

		GridColumns:  12,
		GridRows:     20,
		MaxShapeSize: 4,
		StartRow:     -3,

		SpeedDefault: 0.05,
		SpeedMax:     0.2,

		ClearPause: 300 * time.Millisecond,
		EndPause:   800 * time.Millisecond,

		NumTypes: 7,
		Colors: []uint32{
			0xcc0000,
			0x00dd00,
			0x0000dd,
			0xdddd00,
			0xdd11dd,
			0x11dddd,
			0xdd7700,
		},
		Blocks: []Block{
			{Shape: 0b1111, Size: 2},
			{Shape: 0b010111000, Size: 3},
			{Shape: 0b011001001, Size: 3},
			{Shape: 0b011110000, Size: 3},
			{Shape: 0b110011000, Size: 3},
			{Shape: 0b111001000, Size: 3},
			{Shape: 0b0000111100000000, Size: 4},
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result. Lists
// replace the default lists entirely.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the tables are consistent with each other. Every
// block is decoded, so a shape code that does not fit its size is reported
// here rather than at spawn time.
func (c Config) Validate() error {
	if c.GridColumns <= 0 || c.GridRows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrGridSize, c.GridColumns, c.GridRows)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: %d", ErrFPS, c.FPS)
	}
	// Collisions are only checked one row below the piece, so it must not
	// fall more than a row per tick.
	if c.SpeedDefault <= 0 || c.SpeedMax < c.SpeedDefault || c.SpeedMax > 1 {
		return fmt.Errorf("%w: default %g, max %g", ErrSpeed, c.SpeedDefault, c.SpeedMax)
	}
	if c.ClearPause < 0 || c.EndPause < 0 {
		return ErrPause
	}
	if c.NumTypes <= 0 || len(c.Colors) != c.NumTypes || len(c.Blocks) != c.NumTypes {
		return fmt.Errorf("%w: num_types %d, %d colors, %d blocks",
			ErrTypeCount, c.NumTypes, len(c.Colors), len(c.Blocks))
	}

	for i, b := range c.Blocks {
		if _, err := shape.Decode(b.Shape, b.Size); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		if b.Size > c.MaxShapeSize {
			return fmt.Errorf("%w: block %d has size %d, max %d", ErrMaxShapeSize, i, b.Size, c.MaxShapeSize)
		}
	}
	if c.MaxShapeSize > c.GridColumns {
		return fmt.Errorf("%w: max %d wider than %d columns", ErrMaxShapeSize, c.MaxShapeSize, c.GridColumns)
	}

	return nil
}

// Specs pairs every block with its color.
func (c Config) Specs() []piece.Spec {
	specs := make([]piece.Spec, len(c.Blocks))
	for i, b := range c.Blocks {
		specs[i] = piece.Spec{Code: b.Shape, Size: b.Size, Color: c.Colors[i]}
	}
	return specs
}

// Speeds returns the fall speeds for spawned pieces.
func (c Config) Speeds() piece.Speeds {
	return piece.Speeds{Default: c.SpeedDefault, Max: c.SpeedMax}
}

// Ticks converts a duration to a whole number of ticks at the configured
// rate, rounding up. Any positive duration lasts at least one tick.
func (c Config) Ticks(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	scaled := d * time.Duration(c.FPS)
	return int((scaled + time.Second - 1) / time.Second)
}

// TickInterval is the nominal wall-clock length of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
