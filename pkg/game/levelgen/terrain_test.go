package levelgen

import (
	"errors"
	"strings"
	"testing"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
	"areagen/pkg/game/params"
	"areagen/pkg/game/registry"
)

const terrainDefs = `
tiles:
  - {id: grass, layer: terrain, width: 2, height: 2}
  - {id: grass_tall, layer: terrain, width: 2, height: 2}
  - {id: water, layer: terrain, width: 2, height: 2, solid: true}
  - {id: water_grass_inner_s, layer: terrain_border, width: 2, height: 2}
  - {id: water_grass_inner_se, layer: terrain_border, width: 2, height: 2}
  - {id: water_grass_outer_se, layer: terrain_border, width: 2, height: 2}
  - {id: pebble, layer: terrain, width: 1, height: 1}
terrain_kinds:
  - id: grass
    base: grass
    variants: [grass_tall]
    variant_chance: 0
  - id: water
    base: water
    borders:
      grass: water_grass
  - {id: gravel, base: pebble}
`

func newRegistry(t *testing.T, src string) *registry.Registry {
	t.Helper()
	defs, err := registry.Parse([]byte(src))
	if err != nil {
		t.Fatalf("registry.Parse() error = %v", err)
	}
	reg, err := registry.New(defs)
	if err != nil {
		t.Fatalf("registry.New() error = %v", err)
	}
	return reg
}

func baseOnly(id string) params.TerrainParams {
	return params.TerrainParams{Base: []params.Weighted{{ID: id, Weight: 1}}}
}

func TestTerrain_BaseOnly(t *testing.T) {
	reg := newRegistry(t, terrainDefs)
	g, err := NewTerrainGen(reg, baseOnly("grass"), params.ElevationParams{})
	if err != nil {
		t.Fatalf("NewTerrainGen() error = %v", err)
	}

	layers := world.NewLayerSet(10, 10, LayerNames()...)
	tm, err := g.Generate(random.New(1), 5, 5, 2, layers)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if got := tm.Count(0); got != 25 {
		t.Errorf("grass cells = %d, want 25", got)
	}
	terrain := layers.Layer(LayerTerrain)
	for y := 0; y < 10; y += 2 {
		for x := 0; x < 10; x += 2 {
			if tile := terrain.At(x, y); tile == nil || tile.ID != "grass" {
				t.Errorf("terrain at (%d,%d) = %v, want grass", x, y, tile)
			}
		}
	}
	if n := layers.Layer(LayerTerrainBorder).Count(); n != 0 {
		t.Errorf("border tiles = %d, want 0", n)
	}
	if len(tm.Features) != 0 {
		t.Errorf("len(Features) = %d, want 0", len(tm.Features))
	}
}

func TestTerrain_SingleFeatureFullUnderfill(t *testing.T) {
	reg := newRegistry(t, terrainDefs)
	tp := baseOnly("grass")
	tp.Passes = []params.TerrainFeaturePass{{
		Name:                "pond",
		Kinds:               []params.Weighted{{ID: "water", Weight: 1}},
		MinSize:             params.Size{W: 5, H: 5},
		MaxSize:             params.Size{W: 5, H: 5},
		Spacing:             1,
		PlacementAttempts:   1,
		EdgeUnderfillChance: 100,
	}}
	g, err := NewTerrainGen(reg, tp, params.ElevationParams{})
	if err != nil {
		t.Fatalf("NewTerrainGen() error = %v", err)
	}

	for seed := int64(1); seed <= 10; seed++ {
		layers := world.NewLayerSet(20, 20, LayerNames()...)
		tm, err := g.Generate(random.New(seed), 10, 10, 2, layers)
		if err != nil {
			t.Fatalf("seed %d: Generate() error = %v", seed, err)
		}
		if len(tm.Features) != 1 {
			t.Fatalf("seed %d: len(Features) = %d, want 1", seed, len(tm.Features))
		}
		r := tm.Features[0].Bounds
		if r.W != 5 || r.H != 5 {
			t.Errorf("seed %d: feature %v, want 5x5", seed, r)
		}

		// interior and every in-bounds ring cell are water, nothing else is
		outer := world.Rect{X: r.X - 1, Y: r.Y - 1, W: r.W + 2, H: r.H + 2}
		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				want := 0
				if outer.Contains(world.Pt(x, y)) {
					want = 1
				}
				if got := tm.KindAt(x, y); got != want {
					t.Errorf("seed %d: KindAt(%d, %d) = %d, want %d", seed, x, y, got, want)
				}
			}
		}
		if layers.IsPassable(r.X*2, r.Y*2) {
			t.Errorf("seed %d: solid water tile is passable", seed)
		}
	}
}

func TestTerrain_PassSpacingInvariant(t *testing.T) {
	reg := newRegistry(t, terrainDefs)
	tp := baseOnly("grass")
	tp.Passes = []params.TerrainFeaturePass{{
		Name:                "ponds",
		Kinds:               []params.Weighted{{ID: "water", Weight: 1}},
		MinSize:             params.Size{W: 1, H: 1},
		MaxSize:             params.Size{W: 4, H: 3},
		Spacing:             2,
		PlacementAttempts:   60,
		EdgeUnderfillChance: 40,
	}}
	g, err := NewTerrainGen(reg, tp, params.ElevationParams{})
	if err != nil {
		t.Fatalf("NewTerrainGen() error = %v", err)
	}

	tm := g.Paint(random.New(11), 30, 30)
	if len(tm.Features) < 2 {
		t.Fatalf("len(Features) = %d, want at least 2", len(tm.Features))
	}
	for i, a := range tm.Features {
		for _, b := range tm.Features[i+1:] {
			if a.Bounds.Overlaps(b.Bounds, 2) {
				t.Errorf("features %v and %v violate spacing 2", a.Bounds, b.Bounds)
			}
		}
	}
}

func TestPaintChance_Streaks(t *testing.T) {
	rng := random.New(3)

	t.Run("always", func(t *testing.T) {
		accum := 0
		for i := 0; i < 50; i++ {
			if !paintChance(rng, &accum, 100) {
				t.Fatal("paintChance(100) = false")
			}
		}
	})

	t.Run("never", func(t *testing.T) {
		accum := 0
		for i := 0; i < 50; i++ {
			if paintChance(rng, &accum, 0) {
				t.Fatal("paintChance(0) = true")
			}
		}
	})

	t.Run("runs of at least two", func(t *testing.T) {
		accum := 0
		var seq []bool
		for i := 0; i < 2000; i++ {
			seq = append(seq, paintChance(rng, &accum, 50))
		}
		// every fresh decision is followed by at least one forced repeat
		run := 1
		for i := 1; i < len(seq)-3; i++ {
			if seq[i] == seq[i-1] {
				run++
				continue
			}
			if run < 2 {
				t.Fatalf("run of length %d ending at %d", run, i-1)
			}
			run = 1
		}
	})

	t.Run("forced values", func(t *testing.T) {
		accum := 2
		if !paintChance(rng, &accum, 0) || accum != 1 {
			t.Errorf("positive accum: accum = %d, want 1 and a paint", accum)
		}
		accum = -1
		if paintChance(rng, &accum, 100) || accum != 0 {
			t.Errorf("negative accum: accum = %d, want 0 and a skip", accum)
		}
	})
}

func TestRing(t *testing.T) {
	r := world.R(2, 3, 3, 2)
	points := ring(r)
	if len(points) != 2*(3+2)+2*2 {
		t.Fatalf("len(ring) = %d, want 14", len(points))
	}
	seen := make(map[world.Point]bool)
	outer := world.R(1, 2, 5, 4)
	for _, p := range points {
		if seen[p] {
			t.Errorf("ring visits %v twice", p)
		}
		seen[p] = true
		if r.Contains(p) || !outer.Contains(p) {
			t.Errorf("ring point %v is not just outside %v", p, r)
		}
	}
}

func TestTerrain_Borders(t *testing.T) {
	reg := newRegistry(t, terrainDefs)
	g, err := NewTerrainGen(reg, baseOnly("grass"), params.ElevationParams{})
	if err != nil {
		t.Fatalf("NewTerrainGen() error = %v", err)
	}

	// grass everywhere, water at (1, 1) and (2, 1)
	tm := NewTerrainMap(4, 3, 0)
	tm.Set(1, 1, 1)
	tm.Set(2, 1, 1)
	layers := world.NewLayerSet(8, 6, LayerNames()...)
	if err := g.Apply(random.New(1), tm, 2, layers); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	border := layers.Layer(LayerTerrainBorder)
	tests := []struct {
		cell world.Point
		want string
	}{
		{world.Pt(1, 0), "water_grass_inner_s"},
		{world.Pt(0, 0), "water_grass_inner_se"},
		{world.Pt(3, 2), ""}, // water only to the north-west, slot not defined
		{world.Pt(1, 1), ""}, // water itself, grass has no border against water
	}
	for _, tt := range tests {
		tile := border.At(tt.cell.X*2, tt.cell.Y*2)
		got := ""
		if tile != nil {
			got = tile.ID
		}
		if got != tt.want {
			t.Errorf("border at cell %v = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestTerrain_BorderTileSize(t *testing.T) {
	defs := strings.Replace(terrainDefs,
		"{id: water_grass_inner_s, layer: terrain_border, width: 2, height: 2}",
		"{id: water_grass_inner_s, layer: terrain_border, width: 1, height: 1}", 1)
	reg := newRegistry(t, defs)
	g, err := NewTerrainGen(reg, baseOnly("grass"), params.ElevationParams{})
	if err != nil {
		t.Fatalf("NewTerrainGen() error = %v", err)
	}

	// (1, 0) resolves to the undersized inner_s border
	tm := NewTerrainMap(4, 3, 0)
	tm.Set(1, 1, 1)
	tm.Set(2, 1, 1)
	layers := world.NewLayerSet(8, 6, LayerNames()...)
	if err := g.Apply(random.New(1), tm, 2, layers); !errors.Is(err, world.ErrInvalidData) {
		t.Errorf("Apply() error = %v, want ErrInvalidData", err)
	}
}

func TestEdgeSlot(t *testing.T) {
	mask := func(dirs ...world.Direction) [8]bool {
		var m [8]bool
		for _, d := range dirs {
			m[d] = true
		}
		return m
	}

	tests := []struct {
		dirs []world.Direction
		want registry.EdgeSlot
	}{
		{[]world.Direction{world.North, world.East, world.South, world.West}, registry.InnerAll},
		{[]world.Direction{world.South, world.East, world.SouthEast}, registry.OuterSE},
		{[]world.Direction{world.West, world.North}, registry.OuterNW},
		{[]world.Direction{world.North, world.NorthEast, world.NorthWest}, registry.InnerN},
		{[]world.Direction{world.West}, registry.InnerW},
		{[]world.Direction{world.NorthEast, world.SouthWest}, registry.InnerNESW},
		{[]world.Direction{world.NorthWest, world.SouthEast}, registry.InnerNWSE},
		{[]world.Direction{world.SouthWest}, registry.InnerSW},
		{[]world.Direction{world.NorthWest}, registry.InnerNW},
	}
	for _, tt := range tests {
		if got := edgeSlot(mask(tt.dirs...)); got != tt.want {
			t.Errorf("edgeSlot(%v) = %v, want %v", tt.dirs, got, tt.want)
		}
	}
}

func TestTerrain_Invalid(t *testing.T) {
	reg := newRegistry(t, terrainDefs)

	if _, err := NewTerrainGen(reg, baseOnly("lava"), params.ElevationParams{}); !errors.Is(err, world.ErrInvalidData) {
		t.Errorf("unknown base kind: error = %v, want ErrInvalidData", err)
	}

	tp := baseOnly("grass")
	tp.Passes = []params.TerrainFeaturePass{{
		Name:    "bad",
		Kinds:   []params.Weighted{{ID: "water", Weight: 1}},
		MinSize: params.Size{W: 1, H: 1},
		MaxSize: params.Size{W: 1, H: 1},
		Spacing: 0,
	}}
	if _, err := NewTerrainGen(reg, tp, params.ElevationParams{}); !errors.Is(err, world.ErrInvalidData) {
		t.Errorf("spacing 0: error = %v, want ErrInvalidData", err)
	}

	// a 1x1 base tile leaves gaps in a 2x2 grid
	g, err := NewTerrainGen(reg, baseOnly("gravel"), params.ElevationParams{})
	if err != nil {
		t.Fatalf("NewTerrainGen() error = %v", err)
	}
	layers := world.NewLayerSet(4, 4, LayerNames()...)
	if _, err := g.Generate(random.New(1), 2, 2, 2, layers); !errors.Is(err, world.ErrInvalidData) {
		t.Errorf("undersized tile: error = %v, want ErrInvalidData", err)
	}
}

func TestTerrain_Elevation(t *testing.T) {
	reg := newRegistry(t, terrainDefs)
	ep := params.ElevationParams{Enabled: true, Levels: 4, Scale: 0.15, Alpha: 2, Beta: 2, Octaves: 3}
	g, err := NewTerrainGen(reg, baseOnly("grass"), ep)
	if err != nil {
		t.Fatalf("NewTerrainGen() error = %v", err)
	}
	layers := world.NewLayerSet(32, 32, LayerNames()...)
	if _, err := g.Generate(random.New(5), 16, 16, 2, layers); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if e := layers.Elevation(x, y); e >= 4 {
				t.Fatalf("Elevation(%d, %d) = %d, want < 4", x, y, e)
			}
		}
	}
}

func TestQuantise(t *testing.T) {
	tests := []struct {
		v      float64
		levels int
		want   uint8
	}{
		{-1, 4, 0},
		{-5, 4, 0},
		{0, 4, 2},
		{0.99, 4, 3},
		{1, 4, 3},
		{3, 4, 3},
		{0.5, 1, 0},
	}
	for _, tt := range tests {
		if got := quantise(tt.v, tt.levels); got != tt.want {
			t.Errorf("quantise(%v, %d) = %d, want %d", tt.v, tt.levels, got, tt.want)
		}
	}
}
