// Package world provides generic 2D tile-grid primitives: points, rectangles,
// tile templates, tile layers with derived passability and visibility, and
// line of sight. These are engine-level constructs usable by any tile game.
package world

import "fmt"

// Point is a position on a grid. X grows eastwards, Y southwards.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Step returns p moved one cell in direction d
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DistSquared returns the squared Euclidean distance between p and q
func (p Point) DistSquared(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle given by its top-left corner and size
type Rect struct {
	X, Y, W, H int
}

// R is shorthand for Rect{x, y, w, h}
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Min returns the top-left cell
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Max returns the bottom-right cell (inclusive)
func (r Rect) Max() Point {
	return Point{X: r.X + r.W - 1, Y: r.Y + r.H - 1}
}

// Center returns the center cell, rounding towards the top-left
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Empty reports whether r covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Overlaps reports whether r and other conflict under the given spacing.
// The comparison is on closed intervals with spacing-1 slack on the trailing
// edges, so spacing 1 rejects touching rectangles and spacing 0 allows them.
func (r Rect) Overlaps(other Rect, spacing int) bool {
	s := spacing - 1
	return r.X <= other.X+other.W+s && r.X+r.W+s >= other.X &&
		r.Y <= other.Y+other.H+s && r.Y+r.H+s >= other.Y
}

// Each calls fn for every cell of r in row-major order
func (r Rect) Each(fn func(p Point)) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			fn(Point{X: x, Y: y})
		}
	}
}

// All reports whether fn holds for every cell of r, stopping at the first failure
func (r Rect) All(fn func(p Point) bool) bool {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if !fn(Point{X: x, Y: y}) {
				return false
			}
		}
	}
	return true
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}
