package levelgen

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
	"areagen/pkg/game/generator"
	"areagen/pkg/game/params"
	"areagen/pkg/game/registry"
)

type encounterPass struct {
	name    string
	spacing int
	chance  int
	regions generator.RegionKinds
	kinds   *random.WeightedList[*registry.Encounter]
}

// EncounterGen places at most one encounter per room and pass
type EncounterGen struct {
	passes []encounterPass
}

// NewEncounterGen resolves the encounter params against reg
func NewEncounterGen(reg *registry.Registry, ep params.EncounterParams) (*EncounterGen, error) {
	g := &EncounterGen{}
	for _, p := range ep.Passes {
		if p.Spacing < 1 {
			return nil, fmt.Errorf("%w: encounter pass %q: spacing %d, want >= 1", world.ErrInvalidData, p.Name, p.Spacing)
		}
		if p.ChancePerRoom < 0 || p.ChancePerRoom > 100 {
			return nil, fmt.Errorf("%w: encounter pass %q: chance per room %d", world.ErrInvalidData, p.Name, p.ChancePerRoom)
		}
		regions, err := generator.ParseRegionKinds(p.AllowedRegions)
		if err != nil {
			return nil, fmt.Errorf("encounter pass %q: %w", p.Name, err)
		}
		kinds, err := weightedFrom("encounter pass "+p.Name, p.Kinds, reg.Encounter)
		if err != nil {
			return nil, err
		}
		g.passes = append(g.passes, encounterPass{
			name:    p.Name,
			spacing: p.Spacing,
			chance:  p.ChancePerRoom,
			regions: regions,
			kinds:   kinds,
		})
	}
	return g, nil
}

// Generate rolls every pass against every room of the maze
func (g *EncounterGen) Generate(rng *random.Random, maze *generator.Maze) []EncounterData {
	var placed []EncounterData
	for _, pass := range g.passes {
		var accepted []world.Rect
		for _, room := range maze.Rooms() {
			if !rng.Chance(pass.chance) {
				continue
			}
			enc, _ := pass.kinds.Pick(rng)
			bounds := maze.TileRect(room.Bounds)
			if enc.Width > bounds.W || enc.Height > bounds.H {
				continue
			}
			r := world.Rect{
				X: bounds.X + rng.RangeInclusive(0, bounds.W-enc.Width),
				Y: bounds.Y + rng.RangeInclusive(0, bounds.H-enc.Height),
				W: enc.Width,
				H: enc.Height,
			}
			if !pass.regions.TileChecked(maze, r) || overlapsAny(accepted, r, pass.spacing) {
				continue
			}
			accepted = append(accepted, r)
			placed = append(placed, EncounterData{
				ID:     enc.ID,
				Pos:    r.Min(),
				Width:  r.W,
				Height: r.H,
				Actors: enc.Actors,
				Room:   bounds,
			})
		}

		log.WithFields(logrus.Fields{
			"pass":   pass.name,
			"placed": len(accepted),
			"rooms":  len(maze.Rooms()),
		}).Debug("Encounter pass done.")
	}
	return placed
}
