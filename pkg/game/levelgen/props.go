package levelgen

import (
	"github.com/sirupsen/logrus"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
	"areagen/pkg/game/generator"
	"areagen/pkg/game/params"
	"areagen/pkg/game/registry"
)

type propPass struct {
	placementPass
	kinds *random.WeightedList[*registry.Prop]
}

// PropGen places props. Props are records, not layer tiles; their masks are
// registered with the layer set so passability covers them.
type PropGen struct {
	passes []propPass
}

// NewPropGen resolves the prop params against reg
func NewPropGen(reg *registry.Registry, pp params.PropParams) (*PropGen, error) {
	g := &PropGen{}
	for _, p := range pp.Passes {
		pass, err := newPlacementPass("prop", p)
		if err != nil {
			return nil, err
		}
		kinds, err := weightedFrom("prop pass "+p.Name, p.Kinds, reg.Prop)
		if err != nil {
			return nil, err
		}
		g.passes = append(g.passes, propPass{placementPass: pass, kinds: kinds})
	}
	return g, nil
}

// Generate runs every prop pass
func (g *PropGen) Generate(rng *random.Random, maze *generator.Maze, layers *world.LayerSet) []PropData {
	var placed []PropData
	for _, pass := range g.passes {
		var accepted []world.Rect
		for attempt := 0; attempt < pass.attempts; attempt++ {
			prop, _ := pass.kinds.Pick(rng)
			r, ok := pass.tryPlace(rng, maze, layers, layers.Bounds(), prop.Width, prop.Height, accepted)
			if !ok {
				continue
			}
			layers.Block(r.Min(), prop.Impass, prop.Invis)
			accepted = append(accepted, r)
			placed = append(placed, PropData{
				ID:     prop.ID,
				Sprite: prop.Sprite,
				Pos:    r.Min(),
				Width:  r.W,
				Height: r.H,
			})
		}

		log.WithFields(logrus.Fields{
			"pass":     pass.name,
			"placed":   len(accepted),
			"attempts": pass.attempts,
		}).Debug("Prop pass done.")
	}
	return placed
}
