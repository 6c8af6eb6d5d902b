package world

// Tile is an immutable tile template shared by every placement of it.
// Impass and Invis are relative to the tile's top-left corner.
type Tile struct {
	ID     string
	Layer  string
	Sprite string
	Width  int
	Height int

	Impass []Point
	Invis  []Point
}

// Size returns the tile footprint anchored at the origin
func (t *Tile) Size() Rect {
	return Rect{W: t.Width, H: t.Height}
}

// FootprintAt returns the tile footprint with its top-left at p
func (t *Tile) FootprintAt(p Point) Rect {
	return Rect{X: p.X, Y: p.Y, W: t.Width, H: t.Height}
}

// BlocksMovement returns true if any part of the tile is impassable
func (t *Tile) BlocksMovement() bool {
	return len(t.Impass) > 0
}

// BlocksSight returns true if any part of the tile blocks visibility
func (t *Tile) BlocksSight() bool {
	return len(t.Invis) > 0
}

// FullMask returns every relative point of a w x h footprint,
// used for solid tiles such as walls.
func FullMask(w, h int) []Point {
	points := make([]Point, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			points = append(points, Point{X: x, Y: y})
		}
	}
	return points
}
