package generator

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"

	"areagen/pkg/engine/world"
)

// regionPather walks the open cells of a maze, orthogonally
type regionPather struct {
	maze *Maze
	nbs  paths.Neighbors
}

func (rp *regionPather) Neighbors(p gruid.Point) []gruid.Point {
	return rp.nbs.Cardinal(p, func(q gruid.Point) bool {
		k, ok := rp.maze.RegionAt(q.X, q.Y)
		return ok && k.IsOpen()
	})
}

// keepConnected walls off every open cell that is not connected to from,
// and drops rooms left without a connected cell.
func (m *Maze) keepConnected(from world.Point) {
	pr := paths.NewPathRange(gruid.NewRange(0, 0, m.width, m.height))
	component := pr.CCMap(&regionPather{maze: m}, gruid.Point{X: from.X, Y: from.Y})

	reached := make([]bool, len(m.cells))
	for _, p := range component {
		reached[p.X+p.Y*m.width] = true
	}

	walled := 0
	for i, k := range m.cells {
		if k.IsOpen() && !reached[i] {
			m.cells[i] = RegionWall
			walled++
		}
	}
	if walled == 0 {
		return
	}

	rooms := m.rooms[:0]
	for _, r := range m.rooms {
		if !r.Bounds.All(func(p world.Point) bool { return !reached[p.X+p.Y*m.width] }) {
			rooms = append(rooms, r)
		}
	}
	m.rooms = rooms
	log.WithField("cells", walled).Debug("Walled off unreachable cells.")
}
