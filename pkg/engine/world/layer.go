package world

import (
	"errors"
	"fmt"
)

// ErrInvalidData is the single error kind for malformed or inconsistent
// configuration and template data. Callers wrap it with a description.
var ErrInvalidData = errors.New("invalid data")

// Layer is a named, fixed-size grid of optional tile references.
// A tile is stored at the index of its top-left corner.
type Layer struct {
	name   string
	width  int
	height int
	tiles  []*Tile
}

// NewLayer creates an empty layer. Dimensions never change afterwards.
func NewLayer(name string, width, height int) *Layer {
	if width <= 0 || height <= 0 {
		panic("Layer dimensions must be positive")
	}
	return &Layer{
		name:   name,
		width:  width,
		height: height,
		tiles:  make([]*Tile, width*height),
	}
}

// Name returns the layer name
func (l *Layer) Name() string {
	return l.name
}

// Width returns the layer width in tiles
func (l *Layer) Width() int {
	return l.width
}

// Height returns the layer height in tiles
func (l *Layer) Height() int {
	return l.height
}

// InBounds checks if a position is within the layer
func (l *Layer) InBounds(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

// At returns the tile anchored at (x, y), or nil
func (l *Layer) At(x, y int) *Tile {
	if !l.InBounds(x, y) {
		return nil
	}
	return l.tiles[x+y*l.width]
}

// Set anchors t at (x, y). Returns false if the footprint does not fit.
func (l *Layer) Set(x, y int, t *Tile) bool {
	if t == nil || !l.InBounds(x, y) || !l.InBounds(x+t.Width-1, y+t.Height-1) {
		return false
	}
	l.tiles[x+y*l.width] = t
	return true
}

// Clear removes the tile anchored at (x, y)
func (l *Layer) Clear(x, y int) {
	if l.InBounds(x, y) {
		l.tiles[x+y*l.width] = nil
	}
}

// Each calls fn for every anchored tile in row-major order
func (l *Layer) Each(fn func(p Point, t *Tile)) {
	for i, t := range l.tiles {
		if t != nil {
			fn(Point{X: i % l.width, Y: i / l.width}, t)
		}
	}
}

// Count returns the number of anchored tiles
func (l *Layer) Count() int {
	n := 0
	for _, t := range l.tiles {
		if t != nil {
			n++
		}
	}
	return n
}

// ValidateCoverage checks that every position of the layer is covered by
// exactly one tile footprint. Author-placed terrain layers must satisfy this.
func (l *Layer) ValidateCoverage() error {
	covered := make([]bool, l.width*l.height)
	var err error
	l.Each(func(p Point, t *Tile) {
		if err != nil {
			return
		}
		t.FootprintAt(p).All(func(q Point) bool {
			idx := q.X + q.Y*l.width
			if covered[idx] {
				err = fmt.Errorf("%w: layer %q: tile %q at %v overlaps another tile at %v",
					ErrInvalidData, l.name, t.ID, p, q)
				return false
			}
			covered[idx] = true
			return true
		})
	})
	if err != nil {
		return err
	}
	for i, c := range covered {
		if !c {
			return fmt.Errorf("%w: layer %q: position %v is not covered by any tile",
				ErrInvalidData, l.name, Point{X: i % l.width, Y: i / l.width})
		}
	}
	return nil
}
