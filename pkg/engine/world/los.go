package world

// DefaultVisRadius is the default vision radius in tiles.
const DefaultVisRadius = 9

// Entity is anything occupying a square footprint of Size x Size tiles
// with its top-left at (X, Y).
type Entity struct {
	X, Y int
	Size int
}

// Footprint returns the occupied rectangle
func (e Entity) Footprint() Rect {
	s := e.Size
	if s < 1 {
		s = 1
	}
	return Rect{X: e.X, Y: e.Y, W: s, H: s}
}

// Center returns the tile sight is cast from
func (e Entity) Center() Point {
	return Point{X: e.X + e.Size/2, Y: e.Y + e.Size/2}
}

// LOSCalculator computes line of sight over a LayerSet.
//
// A tile is visible when the Bresenham ray between it and the viewer's
// center crosses no tile that blocks sight or stands higher than the
// viewer's own tile. Ray endpoints are never obstructions, so walls
// themselves are seen. The elevation test is one-sided: a
// viewer on high ground sees over lower obstacles that block a viewer below.
type LOSCalculator struct {
	layers *LayerSet
	radius int
}

// NewLOSCalculator creates a calculator with the given vision radius
func NewLOSCalculator(layers *LayerSet, radius int) *LOSCalculator {
	if radius <= 0 {
		radius = DefaultVisRadius
	}
	return &LOSCalculator{layers: layers, radius: radius}
}

// Radius returns the vision radius
func (c *LOSCalculator) Radius() int {
	return c.radius
}

// CalculateLOS recomputes los for e and ORs the result into explored.
// Both slices must be width*height long. Tiles out of range end up false in
// los; explored is never cleared.
func (c *LOSCalculator) CalculateLOS(los, explored []bool, e Entity) {
	ls := c.layers
	for i := range los {
		los[i] = false
	}

	center := e.Center()
	if !ls.InBounds(center.X, center.Y) {
		return
	}
	srcElev := ls.Elevation(center.X, center.Y)
	r2 := c.radius * c.radius

	minX, maxX := max(0, center.X-c.radius), min(ls.width-1, center.X+c.radius)
	minY, maxY := max(0, center.Y-c.radius), min(ls.height-1, center.Y+c.radius)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := Point{X: x, Y: y}
			if center.DistSquared(p) > r2 {
				continue
			}
			if c.castRay(center, p, srcElev) {
				idx := ls.Index(x, y)
				los[idx] = true
				explored[idx] = true
			}
		}
	}
}

// HasVisibility reports whether any tile of target's footprint is within
// range of e and unobstructed.
func (c *LOSCalculator) HasVisibility(e, target Entity) bool {
	ls := c.layers
	center := e.Center()
	if !ls.InBounds(center.X, center.Y) {
		return false
	}
	srcElev := ls.Elevation(center.X, center.Y)
	r2 := c.radius * c.radius

	return !target.Footprint().All(func(p Point) bool {
		if !ls.InBounds(p.X, p.Y) || center.DistSquared(p) > r2 {
			return true
		}
		// stop at the first visible point
		return !c.castRay(center, p, srcElev)
	})
}

// HasLineOfSight reports whether the ray between a and b is clear for a
// viewer standing at a, ignoring range.
func (c *LOSCalculator) HasLineOfSight(a, b Point) bool {
	if !c.layers.InBounds(a.X, a.Y) || !c.layers.InBounds(b.X, b.Y) {
		return false
	}
	return c.castRay(a, b, c.layers.Elevation(a.X, a.Y))
}

// castRay always walks from the lower endpoint so a->b and b->a cross the same tiles
func (c *LOSCalculator) castRay(src, dst Point, srcElev uint8) bool {
	if abs(dst.Y-src.Y) <= abs(dst.X-src.X) {
		if src.X > dst.X {
			return c.castLow(dst.X, dst.Y, src.X, src.Y, srcElev)
		}
		return c.castLow(src.X, src.Y, dst.X, dst.Y, srcElev)
	}
	if src.Y > dst.Y {
		return c.castHigh(dst.X, dst.Y, src.X, src.Y, srcElev)
	}
	return c.castHigh(src.X, src.Y, dst.X, dst.Y, srcElev)
}

// castLow handles slopes with magnitude <= 1, x0 <= x1
func (c *LOSCalculator) castLow(x0, y0, x1, y1 int, srcElev uint8) bool {
	dx := x1 - x0
	dy := y1 - y0
	yi := 1
	if dy < 0 {
		yi = -1
		dy = -dy
	}
	d := 2*dy - dx
	y := y0

	for x := x0; x <= x1; x++ {
		if x != x0 && x != x1 && c.obstructs(x, y, srcElev) {
			return false
		}
		if d > 0 {
			y += yi
			d -= 2 * dx
		}
		d += 2 * dy
	}
	return true
}

// castHigh handles slopes with magnitude > 1, y0 <= y1
func (c *LOSCalculator) castHigh(x0, y0, x1, y1 int, srcElev uint8) bool {
	dx := x1 - x0
	dy := y1 - y0
	xi := 1
	if dx < 0 {
		xi = -1
		dx = -dx
	}
	d := 2*dx - dy
	x := x0

	for y := y0; y <= y1; y++ {
		if y != y0 && y != y1 && c.obstructs(x, y, srcElev) {
			return false
		}
		if d > 0 {
			x += xi
			d -= 2 * dy
		}
		d += 2 * dx
	}
	return true
}

func (c *LOSCalculator) obstructs(x, y int, srcElev uint8) bool {
	idx := c.layers.Index(x, y)
	return !c.layers.visible[idx] || c.layers.elevation[idx] > srcElev
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
