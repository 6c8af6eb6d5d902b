package generator

import (
	"strings"

	"github.com/zyedidia/generic/mapset"

	"areagen/pkg/engine/world"
)

// RegionKinds is the set of region kinds a placement pass may use
type RegionKinds struct {
	set mapset.Set[RegionKind]
}

// NewRegionKinds creates a set of the given kinds
func NewRegionKinds(kinds ...RegionKind) RegionKinds {
	rk := RegionKinds{set: mapset.New[RegionKind]()}
	for _, k := range kinds {
		rk.set.Put(k)
	}
	return rk
}

// OpenRegionKinds returns every kind except Wall
func OpenRegionKinds() RegionKinds {
	return NewRegionKinds(RegionRoom, RegionCorridor, RegionDoorway)
}

// ParseRegionKinds converts configuration names. An empty list gives
// OpenRegionKinds.
func ParseRegionKinds(names []string) (RegionKinds, error) {
	if len(names) == 0 {
		return OpenRegionKinds(), nil
	}
	rk := NewRegionKinds()
	for _, name := range names {
		k, err := ParseRegionKind(name)
		if err != nil {
			return RegionKinds{}, err
		}
		rk.set.Put(k)
	}
	return rk, nil
}

// Has checks if k is allowed
func (rk RegionKinds) Has(k RegionKind) bool {
	return rk.set.Has(k)
}

// Len returns the number of allowed kinds
func (rk RegionKinds) Len() int {
	return rk.set.Size()
}

// CheckCoords reports whether every coarse cell of the inclusive rectangle
// [p1, p2] is of an allowed kind. Any cell outside the maze gives false.
func (rk RegionKinds) CheckCoords(m *Maze, p1, p2 world.Point) bool {
	if p1.X > p2.X {
		p1.X, p2.X = p2.X, p1.X
	}
	if p1.Y > p2.Y {
		p1.Y, p2.Y = p2.Y, p1.Y
	}
	if !m.InBounds(p1.X, p1.Y) || !m.InBounds(p2.X, p2.Y) {
		return false
	}
	for y := p1.Y; y <= p2.Y; y++ {
		for x := p1.X; x <= p2.X; x++ {
			k, _ := m.RegionAt(x, y)
			if !rk.set.Has(k) {
				return false
			}
		}
	}
	return true
}

// TileChecked is CheckCoords for a footprint given in tiles
func (rk RegionKinds) TileChecked(m *Maze, tiles world.Rect) bool {
	if tiles.Empty() {
		return false
	}
	p1, p2 := m.RegionRect(tiles)
	return rk.CheckCoords(m, p1, p2)
}

func (rk RegionKinds) String() string {
	var names []string
	for _, k := range AllRegionKinds() {
		if rk.set.Has(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
