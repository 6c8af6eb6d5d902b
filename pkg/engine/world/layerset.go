package world

// LayerSet is an ordered stack of equally sized layers plus the derived
// passability and visibility bitmaps and the per-tile elevation.
//
// Derived bitmaps are the union of all layers and of the extra blockers
// registered with Block. Placing on a free anchor only ever removes
// passability or visibility, so they are maintained incrementally; replacing
// an anchored tile that carried masks recomputes them with Rebuild.
type LayerSet struct {
	width  int
	height int

	layers []*Layer
	byName map[string]*Layer

	blockers []blocker

	passable  []bool
	visible   []bool
	elevation []uint8
}

type blocker struct {
	origin Point
	impass []Point
	invis  []Point
}

// NewLayerSet creates a set with the named layers in draw order
func NewLayerSet(width, height int, names ...string) *LayerSet {
	if width <= 0 || height <= 0 {
		panic("LayerSet dimensions must be positive")
	}
	ls := &LayerSet{
		width:     width,
		height:    height,
		byName:    make(map[string]*Layer, len(names)),
		passable:  make([]bool, width*height),
		visible:   make([]bool, width*height),
		elevation: make([]uint8, width*height),
	}
	for _, name := range names {
		ls.AddLayer(name)
	}
	ls.Rebuild()
	return ls
}

// Width returns the width in tiles
func (ls *LayerSet) Width() int {
	return ls.width
}

// Height returns the height in tiles
func (ls *LayerSet) Height() int {
	return ls.height
}

// Bounds returns the full extent as a rectangle
func (ls *LayerSet) Bounds() Rect {
	return Rect{W: ls.width, H: ls.height}
}

// InBounds checks if a position is within the set
func (ls *LayerSet) InBounds(x, y int) bool {
	return x >= 0 && x < ls.width && y >= 0 && y < ls.height
}

// Index returns the row-major index of (x, y)
func (ls *LayerSet) Index(x, y int) int {
	return x + y*ls.width
}

// AddLayer appends a layer on top, or returns the existing one with that name
func (ls *LayerSet) AddLayer(name string) *Layer {
	if l, ok := ls.byName[name]; ok {
		return l
	}
	l := NewLayer(name, ls.width, ls.height)
	ls.layers = append(ls.layers, l)
	ls.byName[name] = l
	return l
}

// Layer returns the named layer, or nil
func (ls *LayerSet) Layer(name string) *Layer {
	return ls.byName[name]
}

// Layers returns the layers in draw order
func (ls *LayerSet) Layers() []*Layer {
	return ls.layers
}

// Place anchors t at p on its own layer (t.Layer), or on fallback when the
// tile names no layer. A tile already anchored at p is replaced. Returns
// false if the footprint does not fit.
func (ls *LayerSet) Place(fallback string, p Point, t *Tile) bool {
	if t == nil {
		return false
	}
	name := t.Layer
	if name == "" {
		name = fallback
	}
	l := ls.AddLayer(name)
	old := l.At(p.X, p.Y)
	if !l.Set(p.X, p.Y, t) {
		return false
	}
	if old != nil && (len(old.Impass) > 0 || len(old.Invis) > 0) {
		ls.Rebuild()
		return true
	}
	ls.applyMasks(p, t.Impass, t.Invis)
	return true
}

// Block registers masks that are not tied to a layer tile, such as props
func (ls *LayerSet) Block(origin Point, impass, invis []Point) {
	ls.blockers = append(ls.blockers, blocker{origin: origin, impass: impass, invis: invis})
	ls.applyMasks(origin, impass, invis)
}

func (ls *LayerSet) applyMasks(origin Point, impass, invis []Point) {
	for _, q := range impass {
		x, y := origin.X+q.X, origin.Y+q.Y
		if ls.InBounds(x, y) {
			ls.passable[ls.Index(x, y)] = false
		}
	}
	for _, q := range invis {
		x, y := origin.X+q.X, origin.Y+q.Y
		if ls.InBounds(x, y) {
			ls.visible[ls.Index(x, y)] = false
		}
	}
}

// Rebuild recomputes passability and visibility from all layers and blockers
func (ls *LayerSet) Rebuild() {
	for i := range ls.passable {
		ls.passable[i] = true
		ls.visible[i] = true
	}
	for _, l := range ls.layers {
		l.Each(func(p Point, t *Tile) {
			ls.applyMasks(p, t.Impass, t.Invis)
		})
	}
	for _, b := range ls.blockers {
		ls.applyMasks(b.origin, b.impass, b.invis)
	}
}

// IsPassable reports whether (x, y) is in bounds and passable on every layer
func (ls *LayerSet) IsPassable(x, y int) bool {
	return ls.InBounds(x, y) && ls.passable[ls.Index(x, y)]
}

// IsVisible reports whether (x, y) is in bounds and does not block sight
func (ls *LayerSet) IsVisible(x, y int) bool {
	return ls.InBounds(x, y) && ls.visible[ls.Index(x, y)]
}

// IsPassableIndex is IsPassable for a row-major index
func (ls *LayerSet) IsPassableIndex(idx int) bool {
	return ls.passable[idx]
}

// IsVisibleIndex is IsVisible for a row-major index
func (ls *LayerSet) IsVisibleIndex(idx int) bool {
	return ls.visible[idx]
}

// RectPassable reports whether every tile of r is in bounds and passable
func (ls *LayerSet) RectPassable(r Rect) bool {
	return r.All(func(p Point) bool {
		return ls.IsPassable(p.X, p.Y)
	})
}

// Elevation returns the elevation at (x, y), 0 when out of bounds
func (ls *LayerSet) Elevation(x, y int) uint8 {
	if !ls.InBounds(x, y) {
		return 0
	}
	return ls.elevation[ls.Index(x, y)]
}

// ElevationIndex is Elevation for a row-major index
func (ls *LayerSet) ElevationIndex(idx int) uint8 {
	return ls.elevation[idx]
}

// SetElevation sets the elevation at (x, y)
func (ls *LayerSet) SetElevation(x, y int, e uint8) {
	if ls.InBounds(x, y) {
		ls.elevation[ls.Index(x, y)] = e
	}
}
