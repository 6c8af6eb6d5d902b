package world

import (
	"errors"
	"testing"
)

func grassTile(w, h int) *Tile {
	return &Tile{ID: "grass", Layer: "terrain", Width: w, Height: h}
}

func TestLayer_SetRejectsOverhang(t *testing.T) {
	l := NewLayer("terrain", 4, 4)
	if l.Set(3, 3, grassTile(2, 2)) {
		t.Error("Set(3, 3, 2x2) = true, want false (footprint leaves the layer)")
	}
	if !l.Set(2, 2, grassTile(2, 2)) {
		t.Error("Set(2, 2, 2x2) = false, want true")
	}
	if l.At(2, 2) == nil {
		t.Error("At(2, 2) = nil after Set")
	}
}

func TestLayer_ValidateCoverage(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		l := NewLayer("terrain", 4, 4)
		for y := 0; y < 4; y += 2 {
			for x := 0; x < 4; x += 2 {
				l.Set(x, y, grassTile(2, 2))
			}
		}
		if err := l.ValidateCoverage(); err != nil {
			t.Errorf("ValidateCoverage() = %v, want nil", err)
		}
	})

	t.Run("gap", func(t *testing.T) {
		l := NewLayer("terrain", 4, 4)
		l.Set(0, 0, grassTile(2, 2))
		l.Set(2, 0, grassTile(2, 2))
		l.Set(0, 2, grassTile(2, 2))
		err := l.ValidateCoverage()
		if !errors.Is(err, ErrInvalidData) {
			t.Errorf("ValidateCoverage() = %v, want ErrInvalidData", err)
		}
	})

	t.Run("overlap", func(t *testing.T) {
		l := NewLayer("terrain", 3, 2)
		l.Set(0, 0, grassTile(2, 2))
		l.Set(1, 0, grassTile(2, 2))
		err := l.ValidateCoverage()
		if !errors.Is(err, ErrInvalidData) {
			t.Errorf("ValidateCoverage() = %v, want ErrInvalidData", err)
		}
	})
}

func TestLayerSet_DerivedBitmaps(t *testing.T) {
	ls := NewLayerSet(5, 5, "terrain", "walls")
	boulder := &Tile{ID: "boulder", Layer: "walls", Width: 2, Height: 2,
		Impass: []Point{{0, 0}, {1, 0}}, Invis: []Point{{0, 0}}}

	if !ls.Place("walls", Pt(1, 1), boulder) {
		t.Fatal("Place = false, want true")
	}
	if ls.IsPassable(1, 1) || ls.IsPassable(2, 1) {
		t.Error("impassable mask not applied")
	}
	if !ls.IsPassable(1, 2) {
		t.Error("IsPassable(1, 2) = false, want true (not in mask)")
	}
	if ls.IsVisible(1, 1) {
		t.Error("IsVisible(1, 1) = true, want false")
	}
	if !ls.IsVisible(2, 1) {
		t.Error("IsVisible(2, 1) = false, want true")
	}

	ls.Block(Pt(4, 4), []Point{{0, 0}}, nil)
	if ls.IsPassable(4, 4) {
		t.Error("IsPassable(4, 4) = true after Block")
	}

	ls.Rebuild()
	if ls.IsPassable(1, 1) || ls.IsPassable(4, 4) || ls.IsVisible(1, 1) {
		t.Error("Rebuild lost layer or blocker masks")
	}
	if ls.IsPassable(-1, 0) || ls.IsPassable(5, 0) {
		t.Error("out of bounds reported passable")
	}
}

func TestLayerSet_PlaceUsesTileLayer(t *testing.T) {
	ls := NewLayerSet(4, 4, "terrain")
	ls.Place("terrain", Pt(0, 0), &Tile{ID: "statue", Layer: "decoration", Width: 1, Height: 1})
	if ls.Layer("decoration") == nil || ls.Layer("decoration").At(0, 0) == nil {
		t.Error("tile not placed on its own layer")
	}
	if ls.Layer("terrain").At(0, 0) != nil {
		t.Error("tile leaked onto the fallback layer")
	}
}

func TestLayerSet_PlaceReplacesAnchor(t *testing.T) {
	ls := NewLayerSet(4, 4, "terrain", "features")
	pillar := &Tile{ID: "pillar", Layer: "features", Width: 1, Height: 1,
		Impass: []Point{{0, 0}}, Invis: []Point{{0, 0}}}
	rug := &Tile{ID: "rug", Layer: "features", Width: 1, Height: 1}

	ls.Place("features", Pt(1, 1), pillar)
	if ls.IsPassable(1, 1) || ls.IsVisible(1, 1) {
		t.Fatal("pillar masks not applied")
	}

	if !ls.Place("features", Pt(1, 1), rug) {
		t.Fatal("Place(rug) = false, want true")
	}
	if got := ls.Layer("features").At(1, 1); got != rug {
		t.Fatalf("At(1, 1) = %v, want rug", got)
	}
	passable, visible := ls.IsPassable(1, 1), ls.IsVisible(1, 1)
	if !passable || !visible {
		t.Errorf("after replacing pillar: passable = %v, visible = %v, want true, true", passable, visible)
	}

	ls.Rebuild()
	if ls.IsPassable(1, 1) != passable || ls.IsVisible(1, 1) != visible {
		t.Error("Rebuild changed bitmaps after a replacing Place")
	}

	// replacing with a solid tile keeps the new masks
	ls.Place("features", Pt(1, 1), pillar)
	if ls.IsPassable(1, 1) || ls.IsVisible(1, 1) {
		t.Error("solid replacement not applied")
	}
}
