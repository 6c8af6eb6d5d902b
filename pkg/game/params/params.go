// Package params holds the generator parameter blocks of an area, read from
// YAML. Params refer to registry templates by id and are checked against a
// registry with Validate before generation.
package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"areagen/pkg/engine/world"
)

const (
	DefaultGridSize    = 2
	DefaultVisDistance = 9
	DefaultAlgorithm   = "bsp"
)

// Size is a width and height in tiles
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Weighted is one entry of a weighted kind table
type Weighted struct {
	ID     string `yaml:"id"`
	Weight int    `yaml:"weight"`
}

// AreaParams is the full configuration of one generated area
type AreaParams struct {
	Name        string `yaml:"name"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	GridSize    int    `yaml:"grid_size"`
	Seed        int64  `yaml:"seed"`
	VisDistance int    `yaml:"vis_distance"`

	Maze       MazeParams      `yaml:"maze"`
	Terrain    TerrainParams   `yaml:"terrain"`
	Walls      WallParams      `yaml:"walls"`
	Elevation  ElevationParams `yaml:"elevation"`
	Features   FeatureParams   `yaml:"features"`
	Props      PropParams      `yaml:"props"`
	Encounters EncounterParams `yaml:"encounters"`
}

// MazeParams configures the region generator
type MazeParams struct {
	Algorithm   string `yaml:"algorithm"`
	MinRoomSize int    `yaml:"min_room_size"`
	MaxRoomSize int    `yaml:"max_room_size"`
	// Rooms is the target room count for the line walker
	Rooms int `yaml:"rooms"`
}

// TerrainParams configures the terrain generator
type TerrainParams struct {
	Base   []Weighted           `yaml:"base"`
	Passes []TerrainFeaturePass `yaml:"passes"`
}

// TerrainFeaturePass carves rectangular blobs of a terrain kind. Sizes are
// in coarse grid cells.
type TerrainFeaturePass struct {
	Name                string     `yaml:"name"`
	Kinds               []Weighted `yaml:"kinds"`
	MinSize             Size       `yaml:"min_size"`
	MaxSize             Size       `yaml:"max_size"`
	Spacing             int        `yaml:"spacing"`
	PlacementAttempts   int        `yaml:"placement_attempts"`
	EdgeUnderfillChance int        `yaml:"edge_underfill_chance"`
}

// WallParams configures the wall pass. An empty Tile disables it.
type WallParams struct {
	Tile string `yaml:"tile"`
}

// ElevationParams configures the optional noise based elevation field
type ElevationParams struct {
	Enabled bool    `yaml:"enabled"`
	Levels  int     `yaml:"levels"`
	Scale   float64 `yaml:"scale"`
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int32   `yaml:"octaves"`
}

// FixedFeature is a feature at a configured position
type FixedFeature struct {
	ID string `yaml:"id"`
	X  int    `yaml:"x"`
	Y  int    `yaml:"y"`
}

// FeatureParams configures the feature generator
type FeatureParams struct {
	Fixed  []FixedFeature  `yaml:"fixed"`
	Passes []PlacementPass `yaml:"passes"`
}

// PropParams configures the prop generator
type PropParams struct {
	Passes []PlacementPass `yaml:"passes"`
}

// PlacementPass is one randomized feature or prop pass
type PlacementPass struct {
	Name              string     `yaml:"name"`
	Kinds             []Weighted `yaml:"kinds"`
	Spacing           int        `yaml:"spacing"`
	PlacementAttempts int        `yaml:"placement_attempts"`
	AllowedRegions    []string   `yaml:"allowed_regions"`
	RequirePassable   bool       `yaml:"require_passable"`
}

// EncounterParams configures the encounter generator
type EncounterParams struct {
	Passes []EncounterPass `yaml:"passes"`
}

// EncounterPass places at most one encounter per room with ChancePerRoom percent
type EncounterPass struct {
	Name           string     `yaml:"name"`
	Kinds          []Weighted `yaml:"kinds"`
	Spacing        int        `yaml:"spacing"`
	ChancePerRoom  int        `yaml:"chance_per_room"`
	AllowedRegions []string   `yaml:"allowed_regions"`
}

// Parse decodes area params from YAML and fills defaults
func Parse(data []byte) (*AreaParams, error) {
	var p AreaParams
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: area params: %v", world.ErrInvalidData, err)
	}
	p.applyDefaults()
	return &p, nil
}

// Load reads and decodes an area params file
func Load(path string) (*AreaParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (p *AreaParams) applyDefaults() {
	if p.GridSize == 0 {
		p.GridSize = DefaultGridSize
	}
	if p.VisDistance == 0 {
		p.VisDistance = DefaultVisDistance
	}
	if p.Maze.Algorithm == "" {
		p.Maze.Algorithm = DefaultAlgorithm
	}
	if p.Maze.MinRoomSize == 0 {
		p.Maze.MinRoomSize = 3
	}
	if p.Maze.MaxRoomSize == 0 {
		p.Maze.MaxRoomSize = 6
	}
	if p.Elevation.Enabled {
		if p.Elevation.Levels == 0 {
			p.Elevation.Levels = 3
		}
		if p.Elevation.Scale == 0 {
			p.Elevation.Scale = 0.1
		}
		if p.Elevation.Alpha == 0 {
			p.Elevation.Alpha = 2
		}
		if p.Elevation.Beta == 0 {
			p.Elevation.Beta = 2
		}
		if p.Elevation.Octaves == 0 {
			p.Elevation.Octaves = 3
		}
	}
}

// CoarseWidth returns the region grid width
func (p *AreaParams) CoarseWidth() int {
	return p.Width / p.GridSize
}

// CoarseHeight returns the region grid height
func (p *AreaParams) CoarseHeight() int {
	return p.Height / p.GridSize
}
