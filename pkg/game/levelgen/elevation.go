package levelgen

import (
	"github.com/aquilax/go-perlin"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
	"areagen/pkg/game/params"
)

// applyElevation fills the elevation of every tile from a Perlin noise field
// quantised into ep.Levels steps
func applyElevation(rng *random.Random, ep params.ElevationParams, layers *world.LayerSet) {
	levels := ep.Levels
	if levels < 1 {
		levels = 1
	}
	if levels > 256 {
		levels = 256
	}
	noise := perlin.NewPerlin(ep.Alpha, ep.Beta, ep.Octaves, rng.Int63())

	for y := 0; y < layers.Height(); y++ {
		for x := 0; x < layers.Width(); x++ {
			layers.SetElevation(x, y, quantise(noise.Noise2D(float64(x)*ep.Scale, float64(y)*ep.Scale), levels))
		}
	}
	log.WithField("levels", levels).Debug("Elevation applied.")
}

// quantise maps noise in roughly [-1, 1] onto 0..levels-1
func quantise(v float64, levels int) uint8 {
	f := (v + 1) / 2
	step := int(f * float64(levels))
	if step < 0 {
		step = 0
	}
	if step >= levels {
		step = levels - 1
	}
	return uint8(step)
}
