package starfield

import "fmt"

// Period is the tiling period of the field along each axis.
const Period = 1 << 16

// densityScale makes roughly one cell in twenty a star.
const densityScale = 20

// Attribute ranges. Each attribute is floor(sample*span)+base.
const (
	DiameterMin  = 10
	DiameterSpan = 40
	WaterSpan    = 90
	PlanetsMin   = 1
	PlanetsSpan  = 10
)

// Star is the generated content of one cell. Only Name is set when Exists
// is false.
type Star struct {
	Exists   bool  `json:"exists"`
	Name     int32 `json:"name"`
	Diameter int   `json:"diameter"`
	Color    Color `json:"color,omitempty"`
	Water    int   `json:"water"`
	Planets  int   `json:"planets"`
}

// Key packs a cell and seed into the 32-bit generator key.
func Key(x, y, seed int64) uint32 {
	hi := uint32(x+seed) & 0xffff
	lo := uint32(y+seed) & 0xffff
	return hi<<16 | lo
}

// Generate returns the star at (x, y) for seed. It never fails.
//
// Samples are drawn in a fixed order: existence, diameter, color, water,
// planets. Reordering them reassigns every attribute in the universe.
func Generate(x, y, seed int64) Star {
	key := Key(x, y, seed)
	star := Star{Name: int32(key)}

	src := NewSource(key)
	if src.Float64()*densityScale >= 1 {
		return star
	}

	star.Exists = true
	star.Diameter = int(src.Float64()*DiameterSpan) + DiameterMin
	star.Color = palette[int(src.Float64()*float64(len(palette)))]
	star.Water = int(src.Float64() * WaterSpan)
	star.Planets = int(src.Float64()*PlanetsSpan) + PlanetsMin
	return star
}

// Field is a universe: the generator bound to one seed.
type Field struct {
	Seed int64
}

// NewField returns the universe for seed.
func NewField(seed int64) Field {
	return Field{Seed: seed}
}

// At returns the star at (x, y).
func (f Field) At(x, y int64) Star {
	return Generate(x, y, f.Seed)
}

// Info is the one-line readout shown for a hovered star.
func (s Star) Info() string {
	return fmt.Sprintf("Star name: %d, water: %d%%, planets: %d", s.Name, s.Water, s.Planets)
}
