package pathfind

import (
	"testing"

	"areagen/pkg/engine/world"
)

var rock = &world.Tile{ID: "rock", Layer: "walls", Width: 1, Height: 1, Impass: world.FullMask(1, 1), Invis: world.FullMask(1, 1)}

func openLayers(w, h int) *world.LayerSet {
	return world.NewLayerSet(w, h, "terrain", "walls")
}

func TestFind_StraightLine(t *testing.T) {
	const n = 8
	pf := NewPathFinder(NewGrid(openLayers(10, 10), 1))

	path := pf.Find(world.Pt(0, 0), n, 0)
	if len(path) != n+1 {
		t.Fatalf("len(path) = %d, want %d", len(path), n+1)
	}
	for i, p := range path {
		if p.X != i || p.Y != 0 {
			t.Errorf("path[%d] = %v, want (%d,0)", i, p, i)
		}
	}
}

func TestFind_ImpassableGoal(t *testing.T) {
	ls := openLayers(6, 6)
	ls.Place("walls", world.Pt(4, 4), rock)
	pf := NewPathFinder(NewGrid(ls, 1))

	if path := pf.Find(world.Pt(0, 0), 4, 4); path != nil {
		t.Errorf("Find to impassable goal = %v, want nil", path)
	}
}

func TestFind_OutOfBounds(t *testing.T) {
	pf := NewPathFinder(NewGrid(openLayers(5, 5), 1))
	for _, dest := range []world.Point{{X: -1, Y: 0}, {X: 5, Y: 0}, {X: 0, Y: 5}} {
		if path := pf.Find(world.Pt(0, 0), dest.X, dest.Y); path != nil {
			t.Errorf("Find to %v = %v, want nil", dest, path)
		}
	}
}

func TestFind_StartEqualsGoal(t *testing.T) {
	pf := NewPathFinder(NewGrid(openLayers(5, 5), 1))
	path := pf.Find(world.Pt(2, 3), 2, 3)
	if len(path) != 1 || path[0] != world.Pt(2, 3) {
		t.Errorf("Find(start == goal) = %v, want [(2,3)]", path)
	}
}

func TestFind_AroundWall(t *testing.T) {
	// vertical wall at x=3 from y=0..5, gap at y=6
	ls := openLayers(7, 7)
	for y := 0; y < 6; y++ {
		ls.Place("walls", world.Pt(3, y), rock)
	}
	pf := NewPathFinder(NewGrid(ls, 1))

	path := pf.Find(world.Pt(0, 0), 6, 0)
	if path == nil {
		t.Fatal("Find = nil, want a path through the gap")
	}
	if path[0] != world.Pt(0, 0) || path[len(path)-1] != world.Pt(6, 0) {
		t.Errorf("path endpoints = %v..%v, want (0,0)..(6,0)", path[0], path[len(path)-1])
	}
	for i, p := range path {
		if !ls.IsPassable(p.X, p.Y) {
			t.Errorf("path[%d] = %v is impassable", i, p)
		}
		if i > 0 {
			prev := path[i-1]
			if prev.DistSquared(p) != 1 {
				t.Errorf("path[%d] = %v is not orthogonally adjacent to %v", i, p, prev)
			}
		}
	}
}

func TestFind_NoPath(t *testing.T) {
	ls := openLayers(5, 5)
	for y := 0; y < 5; y++ {
		ls.Place("walls", world.Pt(2, y), rock)
	}
	pf := NewPathFinder(NewGrid(ls, 1))
	if path := pf.Find(world.Pt(0, 0), 4, 4); path != nil {
		t.Errorf("Find across a full wall = %v, want nil", path)
	}
}

func TestFind_NoRowWraparound(t *testing.T) {
	// the only open cells are column 0 and column 4; a search must never
	// step from the end of one row to the start of the next
	ls := openLayers(5, 3)
	for y := 0; y < 3; y++ {
		for x := 1; x < 4; x++ {
			ls.Place("walls", world.Pt(x, y), rock)
		}
	}
	pf := NewPathFinder(NewGrid(ls, 1))
	if path := pf.Find(world.Pt(4, 0), 0, 1); path != nil {
		t.Errorf("Find = %v, want nil (no wraparound between rows)", path)
	}
}

func TestFind_Deterministic(t *testing.T) {
	ls := openLayers(12, 12)
	ls.Place("walls", world.Pt(5, 5), rock)
	ls.Place("walls", world.Pt(6, 5), rock)
	pf := NewPathFinder(NewGrid(ls, 1))

	first := pf.Find(world.Pt(0, 0), 11, 11)
	for i := 0; i < 10; i++ {
		again := pf.Find(world.Pt(0, 0), 11, 11)
		if len(again) != len(first) {
			t.Fatalf("run %d: len = %d, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: path[%d] = %v, want %v", i, j, again[j], first[j])
			}
		}
	}
}

func TestFind_LargeEntityNeedsClearance(t *testing.T) {
	// a one tile gap lets a size 1 entity through but not a size 2 one
	ls := openLayers(7, 7)
	for y := 0; y < 7; y++ {
		if y != 3 {
			ls.Place("walls", world.Pt(3, y), rock)
		}
	}
	small := NewPathFinder(NewGrid(ls, 1))
	large := NewPathFinder(NewGrid(ls, 2))

	if small.Find(world.Pt(0, 0), 5, 0) == nil {
		t.Error("size 1 Find = nil, want a path through the gap")
	}
	if path := large.Find(world.Pt(0, 0), 5, 0); path != nil {
		t.Errorf("size 2 Find = %v, want nil", path)
	}
}

func TestFind_MaxIterations(t *testing.T) {
	pf := NewPathFinder(NewGrid(openLayers(20, 20), 1))
	pf.MaxIterations = 3
	if path := pf.Find(world.Pt(0, 0), 19, 19); path != nil {
		t.Errorf("Find with MaxIterations = 3 returned %d points, want nil", len(path))
	}
	pf.MaxIterations = 0
	if pf.Find(world.Pt(0, 0), 19, 19) == nil {
		t.Error("Find without a cap = nil, want a path")
	}
}
