package generator

import (
	"fmt"

	"areagen/pkg/engine/random"
	"areagen/pkg/engine/world"
)

// RegionKind classifies one coarse cell of the region grid
type RegionKind uint8

const (
	RegionWall RegionKind = iota
	RegionRoom
	RegionCorridor
	RegionDoorway

	regionKindCount
)

var regionKindNames = [regionKindCount]string{"wall", "room", "corridor", "doorway"}

func (k RegionKind) String() string {
	if k >= regionKindCount {
		return "unknown"
	}
	return regionKindNames[k]
}

// IsOpen returns true for every kind an entity can stand in
func (k RegionKind) IsOpen() bool {
	return k != RegionWall && k < regionKindCount
}

// AllRegionKinds returns every region kind in declaration order
func AllRegionKinds() []RegionKind {
	return []RegionKind{RegionWall, RegionRoom, RegionCorridor, RegionDoorway}
}

// ParseRegionKind converts a configuration name to a RegionKind
func ParseRegionKind(name string) (RegionKind, error) {
	for k, n := range regionKindNames {
		if n == name {
			return RegionKind(k), nil
		}
	}
	return RegionWall, fmt.Errorf("%w: unknown region kind %q", world.ErrInvalidData, name)
}

// Room is a rectangular room in coarse cells
type Room struct {
	Bounds world.Rect
}

// Maze is the coarse region grid of an area. Each cell covers
// GridSize x GridSize tiles.
type Maze struct {
	width    int
	height   int
	gridSize int
	cells    []RegionKind
	rooms    []Room

	entry world.Point
	exit  world.Point
}

// NewMaze creates a maze with every cell set to Wall
func NewMaze(width, height, gridSize int) *Maze {
	if width <= 0 || height <= 0 || gridSize <= 0 {
		panic("Maze dimensions must be positive")
	}
	return &Maze{
		width:    width,
		height:   height,
		gridSize: gridSize,
		cells:    make([]RegionKind, width*height),
	}
}

// Width returns the width in coarse cells
func (m *Maze) Width() int {
	return m.width
}

// Height returns the height in coarse cells
func (m *Maze) Height() int {
	return m.height
}

// GridSize returns the number of tiles per coarse cell side
func (m *Maze) GridSize() int {
	return m.gridSize
}

// InBounds checks if a coarse position is within the maze
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// RegionAt returns the kind of the coarse cell at (x, y)
func (m *Maze) RegionAt(x, y int) (RegionKind, bool) {
	if !m.InBounds(x, y) {
		return RegionWall, false
	}
	return m.cells[x+y*m.width], true
}

// SetRegion sets the kind of the coarse cell at (x, y)
func (m *Maze) SetRegion(x, y int, k RegionKind) bool {
	if !m.InBounds(x, y) {
		return false
	}
	m.cells[x+y*m.width] = k
	return true
}

// FillRect sets every cell of r to k, ignoring cells outside the maze
func (m *Maze) FillRect(r world.Rect, k RegionKind) {
	r.Each(func(p world.Point) {
		m.SetRegion(p.X, p.Y, k)
	})
}

// Rooms returns the rooms in generation order
func (m *Maze) Rooms() []Room {
	return m.rooms
}

// AddRoom carves r as a room and records it
func (m *Maze) AddRoom(r world.Rect) {
	m.FillRect(r, RegionRoom)
	m.rooms = append(m.rooms, Room{Bounds: r})
}

// Entry returns the coarse cell of the entry transition
func (m *Maze) Entry() world.Point {
	return m.entry
}

// Exit returns the coarse cell of the exit transition
func (m *Maze) Exit() world.Point {
	return m.exit
}

// Count returns the number of cells of kind k
func (m *Maze) Count(k RegionKind) int {
	n := 0
	for _, c := range m.cells {
		if c == k {
			n++
		}
	}
	return n
}

// ToRegion converts a tile position to the coarse cell that contains it
func (m *Maze) ToRegion(tileX, tileY int) world.Point {
	return world.Point{X: floorDiv(tileX, m.gridSize), Y: floorDiv(tileY, m.gridSize)}
}

// RegionRect returns the inclusive coarse corners covered by a tile footprint
func (m *Maze) RegionRect(tiles world.Rect) (p1, p2 world.Point) {
	hi := tiles.Max()
	return m.ToRegion(tiles.X, tiles.Y), m.ToRegion(hi.X, hi.Y)
}

// TileRect converts a rectangle of coarse cells to tiles
func (m *Maze) TileRect(coarse world.Rect) world.Rect {
	g := m.gridSize
	return world.Rect{X: coarse.X * g, Y: coarse.Y * g, W: coarse.W * g, H: coarse.H * g}
}

// TileOrigin returns the top-left tile of a coarse cell
func (m *Maze) TileOrigin(p world.Point) world.Point {
	return world.Point{X: p.X * m.gridSize, Y: p.Y * m.gridSize}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// finalize runs the shared post-carving passes of every generator: walling
// off unreachable cells, marking doorways and choosing the transitions.
func (m *Maze) finalize(rng *random.Random) {
	if len(m.rooms) == 0 {
		// degenerate area: open the centre cell so there is somewhere to stand
		c := world.Point{X: m.width / 2, Y: m.height / 2}
		m.AddRoom(world.Rect{X: c.X, Y: c.Y, W: 1, H: 1})
	}

	entryRoom := m.rooms[rng.Intn(len(m.rooms))]
	m.entry = entryRoom.Bounds.Center()

	m.keepConnected(m.entry)
	m.markDoorways()
	m.exit = m.findFurthestRoomCell(m.entry)

	if err := m.validate(); err != "" {
		panic("Generated invalid maze: " + err)
	}
}

// markDoorways turns corridor cells orthogonally adjacent to a room into doorways
func (m *Maze) markDoorways() {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if k, _ := m.RegionAt(x, y); k != RegionCorridor {
				continue
			}
			for _, d := range world.AllDirections() {
				dx, dy := d.Delta()
				if k, ok := m.RegionAt(x+dx, y+dy); ok && k == RegionRoom {
					m.SetRegion(x, y, RegionDoorway)
					break
				}
			}
		}
	}
}

// findFurthestRoomCell uses BFS over open cells to find the room cell with the
// longest path distance from start
func (m *Maze) findFurthestRoomCell(start world.Point) world.Point {
	type cellDist struct {
		p    world.Point
		dist int
	}

	visited := make([]bool, len(m.cells))
	queue := []cellDist{{start, 0}}
	visited[start.X+start.Y*m.width] = true

	furthest := start
	maxDist := -1

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if k, _ := m.RegionAt(current.p.X, current.p.Y); k == RegionRoom && current.dist > maxDist {
			maxDist = current.dist
			furthest = current.p
		}

		for _, d := range world.AllDirections() {
			n := current.p.Step(d)
			k, ok := m.RegionAt(n.X, n.Y)
			if !ok || !k.IsOpen() || visited[n.X+n.Y*m.width] {
				continue
			}
			visited[n.X+n.Y*m.width] = true
			queue = append(queue, cellDist{n, current.dist + 1})
		}
	}

	return furthest
}

// validate returns a description of the first broken invariant, or ""
func (m *Maze) validate() string {
	if k, _ := m.RegionAt(m.entry.X, m.entry.Y); k != RegionRoom {
		return fmt.Sprintf("entry %v is %v, not a room", m.entry, k)
	}
	if k, _ := m.RegionAt(m.exit.X, m.exit.Y); k != RegionRoom {
		return fmt.Sprintf("exit %v is %v, not a room", m.exit, k)
	}
	for _, r := range m.rooms {
		if !m.InBounds(r.Bounds.X, r.Bounds.Y) || !m.InBounds(r.Bounds.Max().X, r.Bounds.Max().Y) {
			return fmt.Sprintf("room %v leaves the maze", r.Bounds)
		}
	}
	return ""
}
