package generator

import (
	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
)

// LineWalkerGenerator generates mazes by walking corridors in random
// directions with branching probability, opening a room where a walk ends
type LineWalkerGenerator struct {
	opts Options
}

// Name returns the name of this generator
func (g *LineWalkerGenerator) Name() string {
	return "Line Walker"
}

// walk carries the per-call state of the line walker
type walk struct {
	g       *LineWalkerGenerator
	rng     *random.Random
	m       *Maze
	minDist int
	maxDist int
}

// Generate creates a new maze by walking corridors out of the centre
func (g *LineWalkerGenerator) Generate(rng *random.Random, width, height, gridSize int) *Maze {
	m := NewMaze(width, height, gridSize)

	w := &walk{
		g:       g,
		rng:     rng,
		m:       m,
		minDist: g.opts.MaxRoomSize + 2,
		maxDist: g.opts.MaxRoomSize * 3,
	}

	x, y := width/2, height/2
	if w.interior(x, y) {
		w.openRoom(world.Point{X: x, Y: y})

		branchProb := 30
		for _, d := range world.AllDirections() {
			end := w.line(x, y, d, branchProb)
			w.openRoom(end)
		}

		for i := 0; i < g.opts.Rooms; i++ {
			rx := x + rng.RangeInclusive(-2, 2)
			ry := y + rng.RangeInclusive(-2, 2)
			if w.interior(rx, ry) {
				w.openRoom(w.lineRandom(rx, ry, branchProb))
			}
		}
	}

	m.finalize(rng)

	log.WithField("rooms", len(m.rooms)).Debug("Line walker maze generated.")
	return m
}

// interior reports whether (x, y) is inside the wall perimeter
func (w *walk) interior(x, y int) bool {
	return x >= 1 && x < w.m.width-1 && y >= 1 && y < w.m.height-1
}

func (w *walk) lineRandom(x, y int, branchProb int) world.Point {
	return w.line(x, y, world.Direction(w.rng.Intn(4)), branchProb)
}

// line carves a corridor from (x, y) in direction d and returns where it stopped
func (w *walk) line(x, y int, d world.Direction, branchProb int) world.Point {
	dx, dy := d.Delta()
	distance := w.rng.RangeInclusive(w.minDist, w.maxDist)

	for segment := 0; segment < distance; segment++ {
		if k, _ := w.m.RegionAt(x, y); k == RegionWall {
			w.m.SetRegion(x, y, RegionCorridor)
		}

		if !w.interior(x+dx, y+dy) {
			return world.Point{X: x, Y: y}
		}

		if branchProb > 0 && w.rng.Chance(branchProb) {
			w.openRoom(w.lineRandom(x, y, branchProb-10))
		}

		x += dx
		y += dy
	}

	if k, _ := w.m.RegionAt(x, y); k == RegionWall {
		w.m.SetRegion(x, y, RegionCorridor)
	}
	return world.Point{X: x, Y: y}
}

// openRoom opens a room centred on p, clipped to the interior. The room is
// dropped if it would touch an existing room.
func (w *walk) openRoom(p world.Point) {
	opts := w.g.opts
	rw := w.rng.RangeInclusive(opts.MinRoomSize, opts.MaxRoomSize)
	rh := w.rng.RangeInclusive(opts.MinRoomSize, opts.MaxRoomSize)
	r := world.Rect{X: p.X - rw/2, Y: p.Y - rh/2, W: rw, H: rh}

	// clip to the interior
	if r.X < 1 {
		r.W -= 1 - r.X
		r.X = 1
	}
	if r.Y < 1 {
		r.H -= 1 - r.Y
		r.Y = 1
	}
	if over := r.X + r.W - (w.m.width - 1); over > 0 {
		r.W -= over
	}
	if over := r.Y + r.H - (w.m.height - 1); over > 0 {
		r.H -= over
	}
	if r.Empty() {
		return
	}

	for _, other := range w.m.rooms {
		if r.Overlaps(other.Bounds, 1) {
			return
		}
	}
	w.m.AddRoom(r)
}
