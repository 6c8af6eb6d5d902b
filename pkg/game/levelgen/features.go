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

type fixedFeature struct {
	feature *registry.Feature
	pos     world.Point
}

type featurePass struct {
	placementPass
	kinds *random.WeightedList[*registry.Feature]
}

// FeatureGen writes multi-tile features into the layers: the fixed ones
// first, then every randomized pass
type FeatureGen struct {
	fixed  []fixedFeature
	passes []featurePass
}

// NewFeatureGen resolves the feature params against reg
func NewFeatureGen(reg *registry.Registry, fp params.FeatureParams) (*FeatureGen, error) {
	g := &FeatureGen{}
	for _, f := range fp.Fixed {
		feature, ok := reg.Feature(f.ID)
		if !ok {
			return nil, fmt.Errorf("%w: fixed feature: undefined id %q", world.ErrInvalidData, f.ID)
		}
		g.fixed = append(g.fixed, fixedFeature{feature: feature, pos: world.Point{X: f.X, Y: f.Y}})
	}
	for _, p := range fp.Passes {
		pp, err := newPlacementPass("feature", p)
		if err != nil {
			return nil, err
		}
		kinds, err := weightedFrom("feature pass "+p.Name, p.Kinds, reg.Feature)
		if err != nil {
			return nil, err
		}
		g.passes = append(g.passes, featurePass{placementPass: pp, kinds: kinds})
	}
	return g, nil
}

// Generate places the features and returns them, fixed ones first. A fixed
// feature that does not fit the area is an error; a randomized pass that
// places fewer than its attempts is not.
func (g *FeatureGen) Generate(rng *random.Random, maze *generator.Maze, layers *world.LayerSet) ([]FeatureData, error) {
	var placed []FeatureData
	var fixedRects []world.Rect

	for _, f := range g.fixed {
		r := world.Rect{X: f.pos.X, Y: f.pos.Y, W: f.feature.Width, H: f.feature.Height}
		if !layers.Bounds().Contains(r.Min()) || !layers.Bounds().Contains(r.Max()) {
			return nil, fmt.Errorf("%w: fixed feature %q at %v leaves the area", world.ErrInvalidData, f.feature.ID, f.pos)
		}
		writeFeature(layers, f.feature, f.pos)
		fixedRects = append(fixedRects, r)
		placed = append(placed, FeatureData{ID: f.feature.ID, Pos: f.pos, Width: r.W, Height: r.H, Fixed: true})
	}

	for _, pass := range g.passes {
		accepted := append([]world.Rect(nil), fixedRects...)
		count := 0
		for attempt := 0; attempt < pass.attempts; attempt++ {
			feature, _ := pass.kinds.Pick(rng)
			r, ok := pass.tryPlace(rng, maze, layers, layers.Bounds(), feature.Width, feature.Height, accepted)
			if !ok {
				continue
			}
			writeFeature(layers, feature, r.Min())
			accepted = append(accepted, r)
			placed = append(placed, FeatureData{ID: feature.ID, Pos: r.Min(), Width: r.W, Height: r.H})
			count++
		}

		log.WithFields(logrus.Fields{
			"pass":     pass.name,
			"placed":   count,
			"attempts": pass.attempts,
		}).Debug("Feature pass done.")
	}
	return placed, nil
}

// writeFeature places every tile of f with f's top-left at pos
func writeFeature(layers *world.LayerSet, f *registry.Feature, pos world.Point) {
	for _, e := range f.Entries {
		layers.Place(LayerFeatures, pos.Add(e.Offset), e.Tile)
	}
}
