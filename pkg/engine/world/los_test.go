package world

import "testing"

var wallTile = &Tile{ID: "wall", Layer: "walls", Width: 1, Height: 1, Impass: FullMask(1, 1), Invis: FullMask(1, 1)}

func newLOS(w, h, radius int) (*LayerSet, *LOSCalculator) {
	ls := NewLayerSet(w, h, "terrain", "walls")
	return ls, NewLOSCalculator(ls, radius)
}

func TestCalculateLOS_OpenField(t *testing.T) {
	ls, c := newLOS(21, 21, 5)
	los := make([]bool, 21*21)
	exp := make([]bool, 21*21)

	c.CalculateLOS(los, exp, Entity{X: 10, Y: 10, Size: 1})

	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			inRange := Pt(10, 10).DistSquared(Pt(x, y)) <= 25
			if got := los[ls.Index(x, y)]; got != inRange {
				t.Errorf("los(%d,%d) = %v, want %v", x, y, got, inRange)
			}
		}
	}
}

func TestCalculateLOS_WallBlocksBehind(t *testing.T) {
	ls, c := newLOS(11, 3, 10)
	ls.Place("walls", Pt(5, 1), wallTile)
	los := make([]bool, 11*3)
	exp := make([]bool, 11*3)

	c.CalculateLOS(los, exp, Entity{X: 1, Y: 1, Size: 1})

	if !los[ls.Index(5, 1)] {
		t.Error("wall tile itself not visible")
	}
	if los[ls.Index(8, 1)] {
		t.Error("tile behind wall visible")
	}
	if !los[ls.Index(4, 1)] {
		t.Error("tile in front of wall not visible")
	}
}

func TestCalculateLOS_ExploredIsMonotonic(t *testing.T) {
	ls, c := newLOS(30, 5, 4)
	los := make([]bool, 30*5)
	exp := make([]bool, 30*5)

	c.CalculateLOS(los, exp, Entity{X: 2, Y: 2, Size: 1})
	before := append([]bool(nil), exp...)

	c.CalculateLOS(los, exp, Entity{X: 25, Y: 2, Size: 1})

	for i := range before {
		if before[i] && !exp[i] {
			t.Fatalf("explored[%d] went from true to false", i)
		}
	}
	if los[ls.Index(2, 2)] {
		t.Error("los at the old position still true after moving out of range")
	}
	if !exp[ls.Index(2, 2)] || !exp[ls.Index(25, 2)] {
		t.Error("explored lost the first or missed the second position")
	}
}

func TestLOS_ElevationAsymmetry(t *testing.T) {
	// a single row: high viewer at x=0, a ridge of medium tiles, a low target at x=6
	ls, c := newLOS(7, 1, 10)
	ls.SetElevation(0, 0, 3)
	for x := 1; x < 6; x++ {
		ls.SetElevation(x, 0, 2)
	}
	ls.SetElevation(6, 0, 1)

	high := Entity{X: 0, Y: 0, Size: 1}
	low := Entity{X: 6, Y: 0, Size: 1}

	if !c.HasVisibility(high, low) {
		t.Error("high viewer cannot see low target over lower ridge")
	}
	if c.HasVisibility(low, high) {
		t.Error("low viewer sees high target through higher ridge")
	}
}

func TestHasVisibility_RangeAndFootprint(t *testing.T) {
	_, c := newLOS(20, 20, 3)
	viewer := Entity{X: 0, Y: 0, Size: 1}

	if c.HasVisibility(viewer, Entity{X: 10, Y: 10, Size: 1}) {
		t.Error("target out of range reported visible")
	}
	// footprint reaches into range even though the anchor is outside
	if !c.HasVisibility(viewer, Entity{X: 3, Y: -1, Size: 2}) {
		t.Error("partially in range target not visible")
	}
}

func TestHasLineOfSight_Symmetric(t *testing.T) {
	ls, c := newLOS(12, 12, 12)
	ls.Place("walls", Pt(5, 4), wallTile)
	ls.Place("walls", Pt(7, 8), wallTile)
	for x0 := 0; x0 < 12; x0 += 3 {
		for y0 := 0; y0 < 12; y0 += 2 {
			for x1 := 0; x1 < 12; x1 += 2 {
				for y1 := 0; y1 < 12; y1 += 3 {
					a, b := Pt(x0, y0), Pt(x1, y1)
					if c.HasLineOfSight(a, b) != c.HasLineOfSight(b, a) {
						t.Errorf("HasLineOfSight(%v, %v) != HasLineOfSight(%v, %v)", a, b, b, a)
					}
				}
			}
		}
	}
}
