package levelgen

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
	"areagen/pkg/game/params"
	"areagen/pkg/game/registry"
)

// TerrainMap is the terrain kind of every coarse cell
type TerrainMap struct {
	width  int
	height int
	kinds  []int

	// Features lists the accepted rectangles of every pass, in coarse cells
	Features []TerrainFeature
}

// TerrainFeature is one accepted terrain blob
type TerrainFeature struct {
	Pass   string
	Kind   string
	Bounds world.Rect
}

// NewTerrainMap creates a map with every cell set to kind
func NewTerrainMap(width, height, kind int) *TerrainMap {
	tm := &TerrainMap{width: width, height: height, kinds: make([]int, width*height)}
	for i := range tm.kinds {
		tm.kinds[i] = kind
	}
	return tm
}

// Width returns the width in coarse cells
func (tm *TerrainMap) Width() int {
	return tm.width
}

// Height returns the height in coarse cells
func (tm *TerrainMap) Height() int {
	return tm.height
}

// InBounds checks if a coarse position is within the map
func (tm *TerrainMap) InBounds(x, y int) bool {
	return x >= 0 && x < tm.width && y >= 0 && y < tm.height
}

// KindAt returns the terrain kind index at (x, y), or -1 when out of bounds
func (tm *TerrainMap) KindAt(x, y int) int {
	if !tm.InBounds(x, y) {
		return -1
	}
	return tm.kinds[x+y*tm.width]
}

// Set sets the terrain kind index at (x, y)
func (tm *TerrainMap) Set(x, y, kind int) {
	if tm.InBounds(x, y) {
		tm.kinds[x+y*tm.width] = kind
	}
}

// Count returns the number of cells of the given kind
func (tm *TerrainMap) Count(kind int) int {
	n := 0
	for _, k := range tm.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

type terrainPass struct {
	params.TerrainFeaturePass
	kinds *random.WeightedList[*registry.TerrainKind]
}

// TerrainGen paints terrain kinds over the coarse grid and turns them into
// tiles on the terrain layers
type TerrainGen struct {
	reg       *registry.Registry
	base      *random.WeightedList[*registry.TerrainKind]
	passes    []terrainPass
	elevation params.ElevationParams
}

// NewTerrainGen resolves the terrain params against reg
func NewTerrainGen(reg *registry.Registry, tp params.TerrainParams, ep params.ElevationParams) (*TerrainGen, error) {
	base, err := weightedFrom("terrain base", tp.Base, reg.TerrainKind)
	if err != nil {
		return nil, err
	}
	g := &TerrainGen{reg: reg, base: base, elevation: ep}
	for _, p := range tp.Passes {
		if err := validateTerrainPass(p); err != nil {
			return nil, err
		}
		kinds, err := weightedFrom("terrain pass "+p.Name, p.Kinds, reg.TerrainKind)
		if err != nil {
			return nil, err
		}
		g.passes = append(g.passes, terrainPass{TerrainFeaturePass: p, kinds: kinds})
	}
	return g, nil
}

func validateTerrainPass(p params.TerrainFeaturePass) error {
	switch {
	case p.Spacing < 1:
		return fmt.Errorf("%w: terrain pass %q: spacing %d, want >= 1", world.ErrInvalidData, p.Name, p.Spacing)
	case p.MinSize.W < 1 || p.MinSize.H < 1:
		return fmt.Errorf("%w: terrain pass %q: min size %dx%d", world.ErrInvalidData, p.Name, p.MinSize.W, p.MinSize.H)
	case p.MinSize.W > p.MaxSize.W || p.MinSize.H > p.MaxSize.H:
		return fmt.Errorf("%w: terrain pass %q: min size exceeds max size", world.ErrInvalidData, p.Name)
	case p.EdgeUnderfillChance < 0 || p.EdgeUnderfillChance > 100:
		return fmt.Errorf("%w: terrain pass %q: edge underfill chance %d", world.ErrInvalidData, p.Name, p.EdgeUnderfillChance)
	}
	return nil
}

// Generate paints the terrain map for a width x height coarse grid, writes
// its tiles into layers and fills in the elevation field
func (g *TerrainGen) Generate(rng *random.Random, width, height, gridSize int, layers *world.LayerSet) (*TerrainMap, error) {
	tm := g.Paint(rng, width, height)
	if err := g.Apply(rng, tm, gridSize, layers); err != nil {
		return nil, err
	}
	if g.elevation.Enabled {
		applyElevation(rng, g.elevation, layers)
	}
	return tm, nil
}

// Paint fills the map with one base kind, then runs the feature passes
func (g *TerrainGen) Paint(rng *random.Random, width, height int) *TerrainMap {
	base, _ := g.base.Pick(rng)
	tm := NewTerrainMap(width, height, base.Index)

	for _, pass := range g.passes {
		var accepted []world.Rect
		for attempt := 0; attempt < pass.PlacementAttempts; attempt++ {
			w := rng.RangeInclusive(pass.MinSize.W, pass.MaxSize.W)
			h := rng.RangeInclusive(pass.MinSize.H, pass.MaxSize.H)
			if w > width || h > height {
				continue
			}
			r := world.Rect{
				X: rng.RangeInclusive(0, width-w),
				Y: rng.RangeInclusive(0, height-h),
				W: w,
				H: h,
			}
			if overlapsAny(accepted, r, pass.Spacing) {
				continue
			}
			accepted = append(accepted, r)

			kind, _ := pass.kinds.Pick(rng)
			doFeatureArea(rng, tm, r, kind.Index, pass.EdgeUnderfillChance)
			tm.Features = append(tm.Features, TerrainFeature{Pass: pass.Name, Kind: kind.ID, Bounds: r})
		}

		log.WithFields(logrus.Fields{
			"pass":     pass.Name,
			"placed":   len(accepted),
			"attempts": pass.PlacementAttempts,
		}).Debug("Terrain pass done.")
	}
	return tm
}

// doFeatureArea paints the ring around r with the streak accumulator, then
// fills r itself
func doFeatureArea(rng *random.Random, tm *TerrainMap, r world.Rect, kind, chance int) {
	accum := 0
	for _, p := range ring(r) {
		if !tm.InBounds(p.X, p.Y) {
			continue
		}
		if paintChance(rng, &accum, chance) {
			tm.Set(p.X, p.Y, kind)
		}
	}
	r.Each(func(p world.Point) {
		tm.Set(p.X, p.Y, kind)
	})
}

// paintChance decides one ring cell. A non-zero accum forces the previous
// decision to continue for a run of one or two more cells.
func paintChance(rng *random.Random, accum *int, chance int) bool {
	switch {
	case *accum > 0:
		*accum--
		return true
	case *accum < 0:
		*accum++
		return false
	}
	if rng.Roll() <= chance {
		*accum = rng.RangeInclusive(1, 2)
		return true
	}
	*accum = -rng.RangeInclusive(1, 2)
	return false
}

// ring returns the cells just outside r, clockwise from the top-left corner
func ring(r world.Rect) []world.Point {
	left, top := r.X-1, r.Y-1
	right, bottom := r.X+r.W, r.Y+r.H
	points := make([]world.Point, 0, 2*(r.W+2)+2*r.H)
	for x := left; x <= right; x++ {
		points = append(points, world.Point{X: x, Y: top})
	}
	for y := r.Y; y < bottom; y++ {
		points = append(points, world.Point{X: right, Y: y})
	}
	for x := right; x >= left; x-- {
		points = append(points, world.Point{X: x, Y: bottom})
	}
	for y := bottom - 1; y >= r.Y; y-- {
		points = append(points, world.Point{X: left, Y: y})
	}
	return points
}

// Apply writes a tile for every coarse cell on the terrain layer and border
// tiles where kinds meet, then checks the terrain layer is fully covered
func (g *TerrainGen) Apply(rng *random.Random, tm *TerrainMap, gridSize int, layers *world.LayerSet) error {
	for y := 0; y < tm.height; y++ {
		for x := 0; x < tm.width; x++ {
			kind, ok := g.reg.TerrainKindAt(tm.KindAt(x, y))
			if !ok {
				panic(fmt.Sprintf("terrain map holds unknown kind %d", tm.KindAt(x, y)))
			}
			origin := world.Point{X: x * gridSize, Y: y * gridSize}

			t := kind.Base
			if len(kind.Variants) > 0 && rng.Chance(kind.VariantChance) {
				t = kind.Variants[rng.Intn(len(kind.Variants))]
			}
			if t.Width != gridSize || t.Height != gridSize {
				return fmt.Errorf("%w: terrain tile %q is %dx%d, want %dx%d",
					world.ErrInvalidData, t.ID, t.Width, t.Height, gridSize, gridSize)
			}
			if !layers.Place(LayerTerrain, origin, t) {
				return fmt.Errorf("%w: terrain tile %q does not fit at %v", world.ErrInvalidData, t.ID, origin)
			}

			if bt := g.borderTile(tm, x, y, kind); bt != nil {
				if bt.Width != gridSize || bt.Height != gridSize {
					return fmt.Errorf("%w: border tile %q is %dx%d, want %dx%d",
						world.ErrInvalidData, bt.ID, bt.Width, bt.Height, gridSize, gridSize)
				}
				if !layers.Place(LayerTerrainBorder, origin, bt) {
					return fmt.Errorf("%w: border tile %q does not fit at %v", world.ErrInvalidData, bt.ID, origin)
				}
			}
		}
	}

	terrain := layers.Layer(LayerTerrain)
	if terrain == nil {
		return fmt.Errorf("%w: no terrain layer", world.ErrInvalidData)
	}
	return terrain.ValidateCoverage()
}

// borderTile picks the edge tile drawn on a cell of kind own at (x, y). The
// lowest indexed neighbouring kind with a border against own wins.
func (g *TerrainGen) borderTile(tm *TerrainMap, x, y int, own *registry.TerrainKind) *world.Tile {
	var others []int
	for _, d := range world.AllEightDirections() {
		dx, dy := d.Delta()
		k := tm.KindAt(x+dx, y+dy)
		if k >= 0 && k != own.Index && !slices.Contains(others, k) {
			others = append(others, k)
		}
	}
	slices.Sort(others)

	for _, k := range others {
		adj, _ := g.reg.TerrainKindAt(k)
		edges := adj.Borders[own.Index]
		if edges == nil {
			continue
		}
		var mask [8]bool
		for _, d := range world.AllEightDirections() {
			dx, dy := d.Delta()
			mask[d] = tm.KindAt(x+dx, y+dy) == k
		}
		if t := edges.Get(edgeSlot(mask)); t != nil {
			return t
		}
	}
	return nil
}

// edgeSlot maps the directions holding the bordering kind to an edge slot
func edgeSlot(m [8]bool) registry.EdgeSlot {
	n, e, s, w := m[world.North], m[world.East], m[world.South], m[world.West]
	switch {
	case n && e && s && w:
		return registry.InnerAll
	case n && e:
		return registry.OuterNE
	case e && s:
		return registry.OuterSE
	case s && w:
		return registry.OuterSW
	case w && n:
		return registry.OuterNW
	case n:
		return registry.InnerN
	case e:
		return registry.InnerE
	case s:
		return registry.InnerS
	case w:
		return registry.InnerW
	}

	ne, se, sw, nw := m[world.NorthEast], m[world.SouthEast], m[world.SouthWest], m[world.NorthWest]
	switch {
	case ne && sw:
		return registry.InnerNESW
	case nw && se:
		return registry.InnerNWSE
	case ne:
		return registry.InnerNE
	case se:
		return registry.InnerSE
	case sw:
		return registry.InnerSW
	}
	return registry.InnerNW
}
