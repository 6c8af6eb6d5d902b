package params

import (
	"errors"
	"fmt"

	"areagen/pkg/engine/world"
	"areagen/pkg/game/generator"
	"areagen/pkg/game/registry"
)

// Validate checks the params for consistency and against the templates in
// reg. All problems are reported together, each wrapping ErrInvalidData.
func (p *AreaParams) Validate(reg *registry.Registry) error {
	v := &validator{}

	if p.Width <= 0 || p.Height <= 0 {
		v.fail("area size %dx%d", p.Width, p.Height)
	}
	if p.GridSize < 1 {
		v.fail("grid size %d", p.GridSize)
	} else if p.Width%p.GridSize != 0 || p.Height%p.GridSize != 0 {
		v.fail("area size %dx%d is not a multiple of grid size %d", p.Width, p.Height, p.GridSize)
	}
	if p.VisDistance < 0 {
		v.fail("vis distance %d", p.VisDistance)
	}

	if p.Maze.MinRoomSize < 1 || p.Maze.MinRoomSize > p.Maze.MaxRoomSize {
		v.fail("maze: room size range [%d, %d]", p.Maze.MinRoomSize, p.Maze.MaxRoomSize)
	}
	if _, err := generator.New(p.Maze.Algorithm, generator.Options{MinRoomSize: 1, MaxRoomSize: 1}); err != nil {
		v.err(err)
	}

	v.weighted("terrain base", p.Terrain.Base, hasTerrain(reg))
	for _, pass := range p.Terrain.Passes {
		owner := "terrain pass " + pass.Name
		v.spacing(owner, pass.Spacing)
		if pass.MinSize.W < 1 || pass.MinSize.H < 1 ||
			pass.MinSize.W > pass.MaxSize.W || pass.MinSize.H > pass.MaxSize.H {
			v.fail("%s: size range %dx%d..%dx%d", owner, pass.MinSize.W, pass.MinSize.H, pass.MaxSize.W, pass.MaxSize.H)
		}
		v.percent(owner+": edge underfill chance", pass.EdgeUnderfillChance)
		v.weighted(owner, pass.Kinds, hasTerrain(reg))
	}

	if p.Walls.Tile != "" {
		if _, ok := reg.Tile(p.Walls.Tile); !ok {
			v.fail("walls: undefined tile %q", p.Walls.Tile)
		}
	}
	if p.Elevation.Enabled && (p.Elevation.Levels < 1 || p.Elevation.Levels > 256) {
		v.fail("elevation: %d levels", p.Elevation.Levels)
	}

	for _, f := range p.Features.Fixed {
		if _, ok := reg.Feature(f.ID); !ok {
			v.fail("fixed feature: undefined id %q", f.ID)
		}
	}
	for _, pass := range p.Features.Passes {
		v.placement("feature pass "+pass.Name, pass, func(id string) bool {
			_, ok := reg.Feature(id)
			return ok
		})
	}
	for _, pass := range p.Props.Passes {
		v.placement("prop pass "+pass.Name, pass, func(id string) bool {
			_, ok := reg.Prop(id)
			return ok
		})
	}
	for _, pass := range p.Encounters.Passes {
		owner := "encounter pass " + pass.Name
		v.spacing(owner, pass.Spacing)
		v.percent(owner+": chance per room", pass.ChancePerRoom)
		v.regions(owner, pass.AllowedRegions)
		v.weighted(owner, pass.Kinds, func(id string) bool {
			_, ok := reg.Encounter(id)
			return ok
		})
	}

	return errors.Join(v.errs...)
}

func hasTerrain(reg *registry.Registry) func(string) bool {
	return func(id string) bool {
		_, ok := reg.TerrainKind(id)
		return ok
	}
}

type validator struct {
	errs []error
}

func (v *validator) fail(format string, args ...interface{}) {
	v.errs = append(v.errs, fmt.Errorf("%w: "+format, append([]interface{}{world.ErrInvalidData}, args...)...))
}

func (v *validator) err(err error) {
	v.errs = append(v.errs, err)
}

func (v *validator) spacing(owner string, spacing int) {
	if spacing < 1 {
		v.fail("%s: spacing %d, want >= 1", owner, spacing)
	}
}

func (v *validator) percent(owner string, pct int) {
	if pct < 0 || pct > 100 {
		v.fail("%s: %d is not a percentage", owner, pct)
	}
}

func (v *validator) regions(owner string, names []string) {
	if _, err := generator.ParseRegionKinds(names); err != nil {
		v.errs = append(v.errs, fmt.Errorf("%s: %w", owner, err))
	}
}

func (v *validator) weighted(owner string, entries []Weighted, known func(string) bool) {
	total := 0
	for _, e := range entries {
		if !known(e.ID) {
			v.fail("%s: undefined id %q", owner, e.ID)
		}
		if e.Weight < 0 {
			v.fail("%s: negative weight for %q", owner, e.ID)
		} else {
			total += e.Weight
		}
	}
	if total == 0 {
		v.fail("%s: weighted list is empty", owner)
	}
}

func (v *validator) placement(owner string, pass PlacementPass, known func(string) bool) {
	v.spacing(owner, pass.Spacing)
	if pass.PlacementAttempts < 0 {
		v.fail("%s: negative placement attempts", owner)
	}
	v.regions(owner, pass.AllowedRegions)
	v.weighted(owner, pass.Kinds, known)
}
