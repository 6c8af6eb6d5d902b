package levelgen

import (
	"fmt"

	"areagen/pkg/engine/world"
	"areagen/pkg/game/generator"
	"areagen/pkg/game/params"
	"areagen/pkg/game/registry"
)

// WallGen fills every wall region cell with the wall tile
type WallGen struct {
	tile *world.Tile
}

// NewWallGen resolves the wall tile. An empty tile id disables the pass.
func NewWallGen(reg *registry.Registry, wp params.WallParams) (*WallGen, error) {
	if wp.Tile == "" {
		return &WallGen{}, nil
	}
	t, ok := reg.Tile(wp.Tile)
	if !ok {
		return nil, fmt.Errorf("%w: walls: undefined tile %q", world.ErrInvalidData, wp.Tile)
	}
	return &WallGen{tile: t}, nil
}

// Generate writes the wall tiles and returns how many were placed
func (g *WallGen) Generate(maze *generator.Maze, layers *world.LayerSet) (int, error) {
	if g.tile == nil {
		return 0, nil
	}
	size := maze.GridSize()
	if size%g.tile.Width != 0 || size%g.tile.Height != 0 {
		return 0, fmt.Errorf("%w: wall tile %q is %dx%d, does not tile a %dx%d cell",
			world.ErrInvalidData, g.tile.ID, g.tile.Width, g.tile.Height, size, size)
	}

	placed := 0
	for y := 0; y < maze.Height(); y++ {
		for x := 0; x < maze.Width(); x++ {
			if k, _ := maze.RegionAt(x, y); k != generator.RegionWall {
				continue
			}
			cell := maze.TileRect(world.Rect{X: x, Y: y, W: 1, H: 1})
			for ty := cell.Y; ty < cell.Y+cell.H; ty += g.tile.Height {
				for tx := cell.X; tx < cell.X+cell.W; tx += g.tile.Width {
					if layers.Place(LayerWalls, world.Point{X: tx, Y: ty}, g.tile) {
						placed++
					}
				}
			}
		}
	}
	log.WithField("tiles", placed).Debug("Walls placed.")
	return placed, nil
}

// Transitions returns the entry and exit of the maze in tiles
func Transitions(maze *generator.Maze) []TransitionData {
	return []TransitionData{
		{Kind: TransitionEntry, Pos: maze.TileOrigin(maze.Entry()), Size: maze.GridSize()},
		{Kind: TransitionExit, Pos: maze.TileOrigin(maze.Exit()), Size: maze.GridSize()},
	}
}
