// Package generator builds the coarse region grid of an area: rooms and
// corridors carved into walls, classified per cell by RegionKind. Every later
// placement pass uses the grid as a filter through RegionKinds.
package generator

import (
	"fmt"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
	"areagen/pkg/logger"
)

var log = logger.Component("generator")

// MazeGenerator is an interface for region generation algorithms
type MazeGenerator interface {
	Generate(rng *random.Random, width, height, gridSize int) *Maze
	Name() string
}

// Options holds the room size limits shared by the generators, in coarse cells
type Options struct {
	MinRoomSize int
	MaxRoomSize int
	// Rooms is the number of extra walks of the line walker
	Rooms int
}

// New returns the generator registered under algorithm
func New(algorithm string, opts Options) (MazeGenerator, error) {
	if opts.MinRoomSize < 1 || opts.MaxRoomSize < opts.MinRoomSize {
		return nil, fmt.Errorf("%w: room size range [%d, %d]", world.ErrInvalidData, opts.MinRoomSize, opts.MaxRoomSize)
	}
	switch algorithm {
	case "bsp":
		return &BSPGenerator{opts: opts}, nil
	case "line_walker":
		return &LineWalkerGenerator{opts: opts}, nil
	}
	return nil, fmt.Errorf("%w: unknown maze algorithm %q", world.ErrInvalidData, algorithm)
}

// DefaultOptions are used when a generator is built without configuration
var DefaultOptions = Options{MinRoomSize: 3, MaxRoomSize: 6, Rooms: 2}
