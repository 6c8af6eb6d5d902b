package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"areagen/pkg/engine/world"
)

// Definitions is the on-disk form of the template data
type Definitions struct {
	Tiles        []TileDef        `yaml:"tiles"`
	TerrainKinds []TerrainKindDef `yaml:"terrain_kinds"`
	Features     []FeatureDef     `yaml:"features"`
	Props        []PropDef        `yaml:"props"`
	Encounters   []EncounterDef   `yaml:"encounters"`
}

// TileDef describes a tile template. Impass and Invis are [x, y] pairs
// relative to the tile's top-left; Solid marks the whole footprint as both.
type TileDef struct {
	ID     string  `yaml:"id"`
	Layer  string  `yaml:"layer"`
	Sprite string  `yaml:"sprite,omitempty"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Impass [][]int `yaml:"impass,omitempty"`
	Invis  [][]int `yaml:"invis,omitempty"`
	Solid  bool    `yaml:"solid,omitempty"`
}

// TerrainKindDef describes a terrain kind. Borders maps the id of an
// adjacent kind to the tile id prefix of the edge set drawn against it.
type TerrainKindDef struct {
	ID            string            `yaml:"id"`
	Base          string            `yaml:"base"`
	Variants      []string          `yaml:"variants,omitempty"`
	VariantChance int               `yaml:"variant_chance,omitempty"`
	Weight        int               `yaml:"weight,omitempty"`
	Borders       map[string]string `yaml:"borders,omitempty"`
}

// FeatureTileDef positions one tile inside a feature
type FeatureTileDef struct {
	Tile string `yaml:"tile"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// FeatureDef describes a multi-tile feature written into the layers
type FeatureDef struct {
	ID     string           `yaml:"id"`
	Width  int              `yaml:"width"`
	Height int              `yaml:"height"`
	Tiles  []FeatureTileDef `yaml:"tiles"`
}

// PropDef describes a prop template
type PropDef struct {
	ID     string  `yaml:"id"`
	Sprite string  `yaml:"sprite,omitempty"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Impass [][]int `yaml:"impass,omitempty"`
	Invis  [][]int `yaml:"invis,omitempty"`
}

// EncounterDef describes an encounter template
type EncounterDef struct {
	ID     string   `yaml:"id"`
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Actors []string `yaml:"actors,omitempty"`
}

// Parse decodes definitions from YAML
func Parse(data []byte) (*Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: definitions: %v", world.ErrInvalidData, err)
	}
	return &defs, nil
}

// Load reads and decodes a definitions file
func Load(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// parsePoints converts [x, y] pairs, checking they fall inside a w x h footprint
func parsePoints(owner string, raw [][]int, w, h int) ([]world.Point, error) {
	points := make([]world.Point, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: %s: point %d has %d coordinates, want 2",
				world.ErrInvalidData, owner, i, len(pair))
		}
		p := world.Point{X: pair[0], Y: pair[1]}
		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			return nil, fmt.Errorf("%w: %s: point %v outside %dx%d footprint",
				world.ErrInvalidData, owner, p, w, h)
		}
		points = append(points, p)
	}
	return points, nil
}
