package area

import (
	"areagen/pkg/engine/pathfind"
	"areagen/pkg/engine/world"
)

// Area is a generated area in play. It owns one path finder per entity size
// that has asked for a path, and the visible and explored bitmaps.
type Area struct {
	*GeneratedArea

	sight       *world.LOSCalculator
	pathFinders map[int]*pathfind.PathFinder

	los      []bool
	explored []bool
}

// New wraps a generated area for play
func New(g *GeneratedArea) *Area {
	n := g.Layers.Width() * g.Layers.Height()
	return &Area{
		GeneratedArea: g,
		sight:         world.NewLOSCalculator(g.Layers, g.VisDistance),
		pathFinders:   make(map[int]*pathfind.PathFinder),
		los:           make([]bool, n),
		explored:      make([]bool, n),
	}
}

// PathFinder returns the path finder for entities of the given size,
// creating its grid on first use
func (a *Area) PathFinder(size int) *pathfind.PathFinder {
	if size < 1 {
		size = 1
	}
	pf, ok := a.pathFinders[size]
	if !ok {
		pf = pathfind.NewPathFinder(pathfind.NewGrid(a.Layers, size))
		a.pathFinders[size] = pf
		log.WithField("size", size).Debug("Path finder grid built.")
	}
	return pf
}

// FindPath returns a path for e to (x, y), or nil
func (a *Area) FindPath(e world.Entity, x, y int) []world.Point {
	return a.PathFinder(e.Size).Find(world.Point{X: e.X, Y: e.Y}, x, y)
}

// RefreshPassability recomputes the derived bitmaps and every cached path
// grid after the layers changed
func (a *Area) RefreshPassability() {
	a.Layers.Rebuild()
	for _, pf := range a.pathFinders {
		pf.Grid().Refresh(a.Layers)
	}
}

// UpdateLOS recomputes what e sees and adds it to the explored map
func (a *Area) UpdateLOS(e world.Entity) {
	a.sight.CalculateLOS(a.los, a.explored, e)
}

// HasVisibility reports whether e can see any part of target
func (a *Area) HasVisibility(e, target world.Entity) bool {
	return a.sight.HasVisibility(e, target)
}

// IsVisible reports whether (x, y) was visible at the last UpdateLOS
func (a *Area) IsVisible(x, y int) bool {
	return a.Layers.InBounds(x, y) && a.los[a.Layers.Index(x, y)]
}

// IsExplored reports whether (x, y) has ever been visible
func (a *Area) IsExplored(x, y int) bool {
	return a.Layers.InBounds(x, y) && a.explored[a.Layers.Index(x, y)]
}

// LOS returns the visible bitmap, row-major
func (a *Area) LOS() []bool {
	return a.los
}

// Explored returns the explored bitmap, row-major
func (a *Area) Explored() []bool {
	return a.explored
}

// ResetExplored forgets everything seen in the area
func (a *Area) ResetExplored() {
	for i := range a.explored {
		a.explored[i] = false
		a.los[i] = false
	}
}
