package piece

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/plus3/blockfall/shape"
)

var ErrEmptyCatalog = errors.New("piece catalog is empty")

// Spec is the packed description of a piece type as found in configuration.
type Spec struct {
	Code  uint32
	Size  int
	Color uint32
}

// Template is a decoded piece type ready to be spawned.
type Template struct {
	Kind  Kind
	Shape shape.Matrix
	Color uint32
}

// Speeds are the fall speeds, in rows per tick, given to spawned pieces.
type Speeds struct {
	Default float64
	Max     float64
}

// NewCatalog decodes specs into templates. The kind of each template is its
// index in specs.
func NewCatalog(specs []Spec) ([]Template, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyCatalog
	}

	templates := make([]Template, len(specs))
	for i, spec := range specs {
		m, err := shape.Decode(spec.Code, spec.Size)
		if err != nil {
			return nil, fmt.Errorf("piece type %d: %w", i, err)
		}
		templates[i] = Template{
			Kind:  Kind(i),
			Shape: m,
			Color: spec.Color,
		}
	}

	return templates, nil
}

// Factory spawns pieces of random kind.
type Factory struct {
	templates []Template
	speeds    Speeds
	rng       *rand.Rand
}

// NewFactory creates a factory over templates. A nil rng uses a randomly
// seeded source.
func NewFactory(templates []Template, speeds Speeds, rng *rand.Rand) (*Factory, error) {
	if len(templates) == 0 {
		return nil, ErrEmptyCatalog
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Factory{
		templates: templates,
		speeds:    speeds,
		rng:       rng,
	}, nil
}

// Spawn returns a new piece of a uniformly random kind at x, y.
func (f *Factory) Spawn(x int, y float64) *Piece {
	return f.build(f.templates[f.rng.IntN(len(f.templates))], x, y)
}

// SpawnKind returns a new piece of the given kind at x, y, or nil if the
// kind is not in the catalog.
func (f *Factory) SpawnKind(kind Kind, x int, y float64) *Piece {
	if kind < 0 || int(kind) >= len(f.templates) {
		return nil
	}
	return f.build(f.templates[kind], x, y)
}

// Templates returns the catalog the factory draws from.
func (f *Factory) Templates() []Template {
	return f.templates
}

func (f *Factory) build(t Template, x int, y float64) *Piece {
	return &Piece{
		Kind:  t.Kind,
		Shape: t.Shape,
		Color: t.Color,
		X:     x,
		Y:     y,
		Velocity: Velocity{
			VY:  f.speeds.Default,
			Min: f.speeds.Default,
			Max: f.speeds.Max,
		},
	}
}
