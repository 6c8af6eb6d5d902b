// Package area assembles a generated area from its parameters and exposes
// the runtime queries on it: path finding per entity size, line of sight and
// the explored map.
package area

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
	"areagen/pkg/game/generator"
	"areagen/pkg/game/levelgen"
	"areagen/pkg/game/params"
	"areagen/pkg/game/registry"
	"areagen/pkg/logger"
)

var log = logger.Component("area")

// areaNamespace scopes the name based area ids
var areaNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("areagen:area"))

// GeneratedArea is the output of the generation pipeline
type GeneratedArea struct {
	ID   uuid.UUID
	Name string
	Seed int64

	VisDistance int

	Layers      *world.LayerSet
	Maze        *generator.Maze
	Terrain     *levelgen.TerrainMap
	Features    []levelgen.FeatureData
	Props       []levelgen.PropData
	Encounters  []levelgen.EncounterData
	Transitions []levelgen.TransitionData
}

// Generate runs maze, terrain, wall, feature, prop and encounter generation
// in that order. Every pass draws from one random stream seeded from p.Seed,
// so equal params and registry give an equal area.
func Generate(p *params.AreaParams, reg *registry.Registry) (*GeneratedArea, error) {
	if err := p.Validate(reg); err != nil {
		return nil, fmt.Errorf("area %q: %w", p.Name, err)
	}

	mazeGen, err := generator.New(p.Maze.Algorithm, generator.Options{
		MinRoomSize: p.Maze.MinRoomSize,
		MaxRoomSize: p.Maze.MaxRoomSize,
		Rooms:       p.Maze.Rooms,
	})
	if err != nil {
		return nil, err
	}
	terrainGen, err := levelgen.NewTerrainGen(reg, p.Terrain, p.Elevation)
	if err != nil {
		return nil, err
	}
	wallGen, err := levelgen.NewWallGen(reg, p.Walls)
	if err != nil {
		return nil, err
	}
	featureGen, err := levelgen.NewFeatureGen(reg, p.Features)
	if err != nil {
		return nil, err
	}
	propGen, err := levelgen.NewPropGen(reg, p.Props)
	if err != nil {
		return nil, err
	}
	encounterGen, err := levelgen.NewEncounterGen(reg, p.Encounters)
	if err != nil {
		return nil, err
	}

	rng := random.New(p.Seed)
	a := &GeneratedArea{
		ID:          AreaID(p.Name, rng.Seed()),
		Name:        p.Name,
		Seed:        rng.Seed(),
		VisDistance: p.VisDistance,
		Layers:      world.NewLayerSet(p.Width, p.Height, levelgen.LayerNames()...),
	}

	a.Maze = mazeGen.Generate(rng, p.CoarseWidth(), p.CoarseHeight(), p.GridSize)

	if a.Terrain, err = terrainGen.Generate(rng, p.CoarseWidth(), p.CoarseHeight(), p.GridSize, a.Layers); err != nil {
		return nil, fmt.Errorf("area %q: terrain: %w", p.Name, err)
	}
	walls, err := wallGen.Generate(a.Maze, a.Layers)
	if err != nil {
		return nil, fmt.Errorf("area %q: walls: %w", p.Name, err)
	}
	if a.Features, err = featureGen.Generate(rng, a.Maze, a.Layers); err != nil {
		return nil, fmt.Errorf("area %q: features: %w", p.Name, err)
	}
	a.Props = propGen.Generate(rng, a.Maze, a.Layers)
	a.Encounters = encounterGen.Generate(rng, a.Maze)
	a.Transitions = levelgen.Transitions(a.Maze)

	log.WithFields(logrus.Fields{
		"area":       a.Name,
		"id":         a.ID,
		"seed":       a.Seed,
		"maze":       mazeGen.Name(),
		"rooms":      len(a.Maze.Rooms()),
		"walls":      walls,
		"features":   len(a.Features),
		"props":      len(a.Props),
		"encounters": len(a.Encounters),
	}).Info("Area generated.")

	return a, nil
}

// AreaID returns the id of the area generated from name and seed
func AreaID(name string, seed int64) uuid.UUID {
	return uuid.NewSHA1(areaNamespace, []byte(name+"/"+strconv.FormatInt(seed, 10)))
}

// Entry returns the entry transition
func (a *GeneratedArea) Entry() levelgen.TransitionData {
	return a.transition(levelgen.TransitionEntry)
}

// Exit returns the exit transition
func (a *GeneratedArea) Exit() levelgen.TransitionData {
	return a.transition(levelgen.TransitionExit)
}

func (a *GeneratedArea) transition(kind levelgen.TransitionKind) levelgen.TransitionData {
	for _, t := range a.Transitions {
		if t.Kind == kind {
			return t
		}
	}
	panic("area has no " + string(kind) + " transition")
}
