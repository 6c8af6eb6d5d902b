// Package pathfind implements A* path finding over a tile LayerSet for
// entities of any square size.
package pathfind

import (
	"areagen/pkg/engine/world"
)

// Grid is the passability of a LayerSet as seen by an entity of one size:
// a position is passable when the entity's whole footprint anchored there
// is in bounds and passable.
type Grid struct {
	width    int
	height   int
	size     int
	passable []bool
}

// NewGrid derives the grid for entities of the given size
func NewGrid(layers *world.LayerSet, size int) *Grid {
	if size < 1 {
		size = 1
	}
	g := &Grid{
		width:    layers.Width(),
		height:   layers.Height(),
		size:     size,
		passable: make([]bool, layers.Width()*layers.Height()),
	}
	g.Refresh(layers)
	return g
}

// Refresh recomputes the grid after the layers changed
func (g *Grid) Refresh(layers *world.LayerSet) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.passable[x+y*g.width] = layers.RectPassable(world.Rect{X: x, Y: y, W: g.size, H: g.size})
		}
	}
}

// Width returns the grid width
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height
func (g *Grid) Height() int {
	return g.height
}

// EntitySize returns the entity size the grid was built for
func (g *Grid) EntitySize() int {
	return g.size
}

// InBounds checks if a position is within the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// IsPassable reports whether an entity can stand with its top-left at (x, y)
func (g *Grid) IsPassable(x, y int) bool {
	return g.InBounds(x, y) && g.passable[x+y*g.width]
}
