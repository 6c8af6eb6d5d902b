package pathfind

import (
	"math"

	"github.com/zyedidia/generic/heap"

	"areagen/pkg/engine/world"
)

const infinity = math.MaxInt32

// openNode is an entry of the open set. Ties on f are broken by insertion
// order so equal grids always yield equal paths.
type openNode struct {
	idx int
	f   int
	g   int
	seq int
}

func lessOpen(a, b openNode) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// PathFinder runs A* searches on one Grid. Its working arrays are reused
// between calls and reset at the start of each Find; no state carries over.
type PathFinder struct {
	grid *Grid

	// MaxIterations bounds the number of expanded nodes per search; 0 means unbounded.
	MaxIterations int

	gScore   []int
	fScore   []int
	cameFrom []int
	closed   []bool
	nbuf     []int
	seq      int
}

// NewPathFinder creates a path finder for grid
func NewPathFinder(grid *Grid) *PathFinder {
	n := grid.width * grid.height
	return &PathFinder{
		grid:     grid,
		gScore:   make([]int, n),
		fScore:   make([]int, n),
		cameFrom: make([]int, n),
		closed:   make([]bool, n),
		nbuf:     make([]int, 0, 4),
	}
}

// Grid returns the grid searched by this path finder
func (p *PathFinder) Grid() *Grid {
	return p.grid
}

// Find returns the path from start to (destX, destY), both ends included,
// in travel order. It returns nil when the destination is out of bounds or
// impassable, or when no path exists. start == dest yields a one point path.
func (p *PathFinder) Find(start world.Point, destX, destY int) []world.Point {
	g := p.grid
	if !g.InBounds(destX, destY) || !g.InBounds(start.X, start.Y) {
		return nil
	}
	goal := destX + destY*g.width
	if !g.passable[goal] {
		return nil
	}
	startIdx := start.X + start.Y*g.width

	p.reset()

	open := heap.New[openNode](lessOpen)
	p.gScore[startIdx] = 0
	p.fScore[startIdx] = p.heuristic(startIdx, goal)
	p.push(open, startIdx)

	iterations := 0
	for open.Size() > 0 {
		current, _ := open.Pop()
		if current.g != p.gScore[current.idx] {
			continue // superseded by a cheaper entry
		}
		if current.idx == goal {
			return p.reconstruct(startIdx, goal)
		}

		iterations++
		if p.MaxIterations > 0 && iterations > p.MaxIterations {
			return nil
		}

		p.closed[current.idx] = true
		for _, next := range p.neighbors(current.idx) {
			if p.closed[next] {
				continue
			}
			tentative := p.gScore[current.idx] + p.cost(current.idx, next)
			if tentative >= p.gScore[next] {
				continue
			}
			p.cameFrom[next] = current.idx
			p.gScore[next] = tentative
			p.fScore[next] = tentative + p.heuristic(next, goal)
			p.push(open, next)
		}
	}

	return nil
}

// reset clears the working state and pre-closes every impassable position
func (p *PathFinder) reset() {
	for i := range p.gScore {
		p.gScore[i] = infinity
		p.fScore[i] = infinity
		p.cameFrom[i] = -1
		p.closed[i] = !p.grid.passable[i]
	}
	p.seq = 0
}

func (p *PathFinder) push(open *heap.Heap[openNode], idx int) {
	open.Push(openNode{idx: idx, f: p.fScore[idx], g: p.gScore[idx], seq: p.seq})
	p.seq++
}

// heuristic is the squared Euclidean distance. It overestimates on a
// 4-connected grid, which biases searches towards straighter paths.
func (p *PathFinder) heuristic(from, to int) int {
	w := p.grid.width
	dx := from%w - to%w
	dy := from/w - to/w
	return dx*dx + dy*dy
}

// cost is the price of one orthogonal step; uniform for now
func (p *PathFinder) cost(from, to int) int {
	return 1
}

// neighbors returns the up to four orthogonal neighbours of idx
func (p *PathFinder) neighbors(idx int) []int {
	w := p.grid.width
	n := w * p.grid.height
	nb := p.nbuf[:0]
	if idx >= w {
		nb = append(nb, idx-w)
	}
	if idx+w < n {
		nb = append(nb, idx+w)
	}
	if idx%w != 0 {
		nb = append(nb, idx-1)
	}
	if (idx+1)%w != 0 {
		nb = append(nb, idx+1)
	}
	p.nbuf = nb
	return nb
}

func (p *PathFinder) reconstruct(start, goal int) []world.Point {
	w := p.grid.width
	var path []world.Point
	for cur := goal; ; cur = p.cameFrom[cur] {
		path = append(path, world.Point{X: cur % w, Y: cur / w})
		if cur == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
