package generator

import (
	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
)

// BSPGenerator generates mazes using Binary Space Partitioning
type BSPGenerator struct {
	opts Options
}

// Name returns the name of this generator
func (g *BSPGenerator) Name() string {
	return "BSP Tree"
}

// bspNode represents a node in the BSP tree
type bspNode struct {
	x, y, width, height int
	left, right         *bspNode
	room                *world.Rect
}

// roomPadding keeps one wall cell between a room and its node's far edges
const roomPadding = 1

// Generate creates a new maze using the BSP algorithm
func (g *BSPGenerator) Generate(rng *random.Random, width, height, gridSize int) *Maze {
	m := NewMaze(width, height, gridSize)

	// leave a 1 cell wall perimeter
	root := &bspNode{
		x:      1,
		y:      1,
		width:  width - 2,
		height: height - 2,
	}
	if root.width > 0 && root.height > 0 {
		minSize := g.opts.MinRoomSize + roomPadding
		g.splitBSP(rng, root, minSize)
		g.createRooms(rng, root)
		carveRooms(m, root)
		connectRooms(rng, m, root)
	}

	m.finalize(rng)

	log.WithField("rooms", len(m.rooms)).Debug("BSP maze generated.")
	return m
}

// splitBSP recursively splits a BSP node
func (g *BSPGenerator) splitBSP(rng *random.Random, node *bspNode, minSize int) {
	if node.width < minSize*2 && node.height < minSize*2 {
		return // Too small to split
	}

	// Nodes that can already hold the largest room split only half the time
	maxSize := g.opts.MaxRoomSize + roomPadding
	if node.width <= maxSize && node.height <= maxSize && rng.Intn(2) == 0 {
		return
	}

	var splitHorizontal bool
	if node.width > node.height && node.width >= minSize*2 {
		splitHorizontal = false
	} else if node.height > node.width && node.height >= minSize*2 {
		splitHorizontal = true
	} else if node.width >= minSize*2 && node.height >= minSize*2 {
		splitHorizontal = rng.Intn(2) == 0
	} else if node.width >= minSize*2 {
		splitHorizontal = false
	} else {
		splitHorizontal = true
	}

	if splitHorizontal {
		splitPoint := minSize + rng.Intn(node.height-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPoint}
		node.right = &bspNode{x: node.x, y: node.y + splitPoint, width: node.width, height: node.height - splitPoint}
	} else {
		splitPoint := minSize + rng.Intn(node.width-minSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: splitPoint, height: node.height}
		node.right = &bspNode{x: node.x + splitPoint, y: node.y, width: node.width - splitPoint, height: node.height}
	}

	g.splitBSP(rng, node.left, minSize)
	g.splitBSP(rng, node.right, minSize)
}

// createRooms creates rooms in leaf nodes
func (g *BSPGenerator) createRooms(rng *random.Random, node *bspNode) {
	if node.left != nil || node.right != nil {
		if node.left != nil {
			g.createRooms(rng, node.left)
		}
		if node.right != nil {
			g.createRooms(rng, node.right)
		}
		return
	}

	roomWidth := roomSide(rng, node.width, g.opts)
	roomHeight := roomSide(rng, node.height, g.opts)

	roomX := node.x + rng.Intn(node.width-roomWidth+1-min(roomPadding, node.width-roomWidth))
	roomY := node.y + rng.Intn(node.height-roomHeight+1-min(roomPadding, node.height-roomHeight))

	node.room = &world.Rect{X: roomX, Y: roomY, W: roomWidth, H: roomHeight}
}

// roomSide picks a room side length that fits a node side of length avail
func roomSide(rng *random.Random, avail int, opts Options) int {
	hi := min(opts.MaxRoomSize, avail-roomPadding)
	if hi < 1 {
		return avail
	}
	lo := min(opts.MinRoomSize, hi)
	return rng.RangeInclusive(lo, hi)
}

// carveRooms marks room cells in the maze
func carveRooms(m *Maze, node *bspNode) {
	if node.room != nil {
		m.AddRoom(*node.room)
	}
	if node.left != nil {
		carveRooms(m, node.left)
	}
	if node.right != nil {
		carveRooms(m, node.right)
	}
}

// connectRooms connects sibling subtrees with L-shaped corridors
func connectRooms(rng *random.Random, m *Maze, node *bspNode) {
	if node.left == nil || node.right == nil {
		return
	}

	leftRoom := getRoom(rng, node.left)
	rightRoom := getRoom(rng, node.right)

	if leftRoom != nil && rightRoom != nil {
		l := leftRoom.Center()
		r := rightRoom.Center()

		if rng.Intn(2) == 0 {
			carveCorridorHorizontal(m, l.Y, l.X, r.X)
			carveCorridorVertical(m, r.X, l.Y, r.Y)
		} else {
			carveCorridorVertical(m, l.X, l.Y, r.Y)
			carveCorridorHorizontal(m, r.Y, l.X, r.X)
		}
	}

	connectRooms(rng, m, node.left)
	connectRooms(rng, m, node.right)
}

// carveCorridorHorizontal carves a horizontal corridor without overwriting rooms
func carveCorridorHorizontal(m *Maze, y, startX, endX int) {
	if startX > endX {
		startX, endX = endX, startX
	}
	for x := startX; x <= endX; x++ {
		if k, ok := m.RegionAt(x, y); ok && k == RegionWall {
			m.SetRegion(x, y, RegionCorridor)
		}
	}
}

// carveCorridorVertical carves a vertical corridor without overwriting rooms
func carveCorridorVertical(m *Maze, x, startY, endY int) {
	if startY > endY {
		startY, endY = endY, startY
	}
	for y := startY; y <= endY; y++ {
		if k, ok := m.RegionAt(x, y); ok && k == RegionWall {
			m.SetRegion(x, y, RegionCorridor)
		}
	}
}

// getRoom returns a room from a subtree (picks randomly from leaves)
func getRoom(rng *random.Random, node *bspNode) *world.Rect {
	if node.room != nil {
		return node.room
	}

	var leftRoom, rightRoom *world.Rect
	if node.left != nil {
		leftRoom = getRoom(rng, node.left)
	}
	if node.right != nil {
		rightRoom = getRoom(rng, node.right)
	}

	if leftRoom != nil && rightRoom != nil {
		if rng.Intn(2) == 0 {
			return leftRoom
		}
		return rightRoom
	}
	if leftRoom != nil {
		return leftRoom
	}
	return rightRoom
}
