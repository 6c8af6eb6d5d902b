package registry

import (
	"areagen/pkg/engine/world"
)

// EdgeSlot names one of the autotile edge or corner sprites of a terrain border
type EdgeSlot int

// Edge slots. Inner slots are drawn on a cell that has the bordering kind on
// one side or one diagonal; outer slots where two adjacent sides meet.
const (
	InnerNW EdgeSlot = iota
	InnerN
	InnerNE
	InnerE
	InnerSE
	InnerS
	InnerSW
	InnerW
	OuterNW
	OuterNE
	OuterSE
	OuterSW
	InnerAll
	InnerNESW
	InnerNWSE

	EdgeSlotCount
)

var edgeSlotNames = [EdgeSlotCount]string{
	"inner_nw", "inner_n", "inner_ne", "inner_e", "inner_se", "inner_s", "inner_sw", "inner_w",
	"outer_nw", "outer_ne", "outer_se", "outer_sw",
	"inner_all", "inner_ne_sw", "inner_nw_se",
}

// String returns the naming convention suffix of the slot
func (s EdgeSlot) String() string {
	if s < 0 || s >= EdgeSlotCount {
		return "unknown"
	}
	return edgeSlotNames[s]
}

// EdgesList holds the border tiles of one terrain kind against another.
// Slots without a matching tile stay nil.
type EdgesList struct {
	Prefix string
	tiles  [EdgeSlotCount]*world.Tile
}

// resolveEdges looks up <prefix>_<slot> for every slot
func resolveEdges(prefix string, lookup func(id string) (*world.Tile, bool)) *EdgesList {
	e := &EdgesList{Prefix: prefix}
	for s := EdgeSlot(0); s < EdgeSlotCount; s++ {
		if t, ok := lookup(prefix + "_" + s.String()); ok {
			e.tiles[s] = t
		}
	}
	return e
}

// Get returns the tile for a slot, or nil
func (e *EdgesList) Get(s EdgeSlot) *world.Tile {
	if e == nil || s < 0 || s >= EdgeSlotCount {
		return nil
	}
	return e.tiles[s]
}

// Count returns the number of resolved slots
func (e *EdgesList) Count() int {
	n := 0
	for _, t := range e.tiles {
		if t != nil {
			n++
		}
	}
	return n
}
