// Package levelgen runs the placement passes of an area: terrain, walls,
// features, props and encounters. Every pass draws from one random stream
// and consults the region grid of the maze, so a fixed seed and configuration
// reproduce the same layout.
package levelgen

import (
	"fmt"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
	"areagen/pkg/game/params"
	"areagen/pkg/logger"
)

var log = logger.Component("levelgen")

// Layer names written by the generators, in draw order
const (
	LayerTerrain       = "terrain"
	LayerTerrainBorder = "terrain_border"
	LayerWalls         = "walls"
	LayerFeatures      = "features"
)

// LayerNames returns the layers an area is created with
func LayerNames() []string {
	return []string{LayerTerrain, LayerTerrainBorder, LayerWalls, LayerFeatures}
}

// FeatureData is a feature placed at Pos (top-left, in tiles)
type FeatureData struct {
	ID     string
	Pos    world.Point
	Width  int
	Height int
	Fixed  bool
}

// Bounds returns the tile footprint of the feature
func (f FeatureData) Bounds() world.Rect {
	return world.Rect{X: f.Pos.X, Y: f.Pos.Y, W: f.Width, H: f.Height}
}

// PropData is a prop placed at Pos (top-left, in tiles)
type PropData struct {
	ID     string
	Sprite string
	Pos    world.Point
	Width  int
	Height int
}

// Bounds returns the tile footprint of the prop
func (p PropData) Bounds() world.Rect {
	return world.Rect{X: p.Pos.X, Y: p.Pos.Y, W: p.Width, H: p.Height}
}

// EncounterData is an encounter placed in a room
type EncounterData struct {
	ID     string
	Pos    world.Point
	Width  int
	Height int
	Actors []string
	Room   world.Rect
}

// Bounds returns the tile footprint of the encounter
func (e EncounterData) Bounds() world.Rect {
	return world.Rect{X: e.Pos.X, Y: e.Pos.Y, W: e.Width, H: e.Height}
}

// TransitionKind tells an entry from an exit
type TransitionKind string

const (
	TransitionEntry TransitionKind = "entry"
	TransitionExit  TransitionKind = "exit"
)

// TransitionData is a transition occupying one coarse cell
type TransitionData struct {
	Kind TransitionKind
	Pos  world.Point
	Size int
}

// overlapsAny reports whether r conflicts with any of placed under spacing
func overlapsAny(placed []world.Rect, r world.Rect, spacing int) bool {
	for _, o := range placed {
		if r.Overlaps(o, spacing) {
			return true
		}
	}
	return false
}

// weightedFrom builds a weighted list of resolved kinds. lookup reports
// whether the id exists; an unknown id or a list without weight is an error.
func weightedFrom[T any](owner string, entries []params.Weighted, lookup func(id string) (T, bool)) (*random.WeightedList[T], error) {
	list := random.NewWeightedList[T]()
	for _, e := range entries {
		v, ok := lookup(e.ID)
		if !ok {
			return nil, fmt.Errorf("%w: %s: undefined id %q", world.ErrInvalidData, owner, e.ID)
		}
		list.Add(v, e.Weight)
	}
	if list.TotalWeight() <= 0 {
		return nil, fmt.Errorf("%w: %s: weighted list is empty", world.ErrInvalidData, owner)
	}
	return list, nil
}
