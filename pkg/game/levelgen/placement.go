package levelgen

import (
	"fmt"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
	"areagen/pkg/game/generator"
	"areagen/pkg/game/params"
)

// placementPass is a feature or prop pass with its region filter resolved
type placementPass struct {
	name            string
	spacing         int
	attempts        int
	regions         generator.RegionKinds
	requirePassable bool
}

func newPlacementPass(owner string, p params.PlacementPass) (placementPass, error) {
	if p.Spacing < 1 {
		return placementPass{}, fmt.Errorf("%w: %s pass %q: spacing %d, want >= 1", world.ErrInvalidData, owner, p.Name, p.Spacing)
	}
	if p.PlacementAttempts < 0 {
		return placementPass{}, fmt.Errorf("%w: %s pass %q: negative placement attempts", world.ErrInvalidData, owner, p.Name)
	}
	regions, err := generator.ParseRegionKinds(p.AllowedRegions)
	if err != nil {
		return placementPass{}, fmt.Errorf("%s pass %q: %w", owner, p.Name, err)
	}
	return placementPass{
		name:            p.Name,
		spacing:         p.Spacing,
		attempts:        p.PlacementAttempts,
		regions:         regions,
		requirePassable: p.RequirePassable,
	}, nil
}

// tryPlace picks a random top-left inside bounds for a w x h footprint and
// runs the checks in order: region kinds, spacing against accepted, then
// passability when the pass requires it.
func (pp *placementPass) tryPlace(rng *random.Random, maze *generator.Maze, layers *world.LayerSet,
	bounds world.Rect, w, h int, accepted []world.Rect) (world.Rect, bool) {
	if w > bounds.W || h > bounds.H {
		return world.Rect{}, false
	}
	r := world.Rect{
		X: bounds.X + rng.RangeInclusive(0, bounds.W-w),
		Y: bounds.Y + rng.RangeInclusive(0, bounds.H-h),
		W: w,
		H: h,
	}
	if !pp.regions.TileChecked(maze, r) {
		return r, false
	}
	if overlapsAny(accepted, r, pp.spacing) {
		return r, false
	}
	if pp.requirePassable && !layers.RectPassable(r) {
		return r, false
	}
	return r, true
}
