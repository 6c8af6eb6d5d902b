// Package devtools renders generated areas for debugging: a text dump with
// optional ANSI colors and an HTML snapshot.
package devtools

import (
	"areagen/pkg/engine/world"
	"areagen/pkg/game/area"
	"areagen/pkg/game/generator"
	"areagen/pkg/game/levelgen"
)

// Options selects the overlays drawn over the tile map
type Options struct {
	// Path is drawn with '*' when set
	Path []world.Point
	// Viewer is drawn with '@'. When set, the dump also carries a map of
	// the explored tiles only.
	Viewer *world.Entity
	// Color wraps glyphs in ANSI color codes
	Color bool
}

type glyphClass int

const (
	classFloor glyphClass = iota
	classBlocked
	classWall
	classFeature
	classProp
	classEncounter
	classPath
	classTransition
	classViewer
	classUnexplored
)

var glyphClassNames = map[glyphClass]string{
	classFloor:      "floor",
	classBlocked:    "blocked",
	classWall:       "wall",
	classFeature:    "feature",
	classProp:       "prop",
	classEncounter:  "encounter",
	classPath:       "path",
	classTransition: "transition",
	classViewer:     "viewer",
	classUnexplored: "unexplored",
}

type glyph struct {
	r     rune
	class glyphClass
}

const legend = ". = floor  % = blocked  # = wall  F = feature  p = prop  e = encounter  * = path  S = entry  E = exit  @ = viewer  ? = unexplored"

const regionLegend = "# = wall  . = room  , = corridor  + = doorway"

// tileGlyphs builds the tile map, one glyph per tile. Later overlays win.
func tileGlyphs(a *area.Area, opts Options, revealedOnly bool) [][]glyph {
	ls := a.Layers
	rows := make([][]glyph, ls.Height())
	for y := range rows {
		rows[y] = make([]glyph, ls.Width())
		for x := range rows[y] {
			if ls.IsPassable(x, y) {
				rows[y][x] = glyph{'.', classFloor}
			} else {
				rows[y][x] = glyph{'%', classBlocked}
			}
		}
	}

	paint := func(r world.Rect, g glyph) {
		r.Each(func(p world.Point) {
			if ls.InBounds(p.X, p.Y) {
				rows[p.Y][p.X] = g
			}
		})
	}

	if walls := ls.Layer(levelgen.LayerWalls); walls != nil {
		walls.Each(func(p world.Point, t *world.Tile) {
			paint(t.FootprintAt(p), glyph{'#', classWall})
		})
	}
	for _, f := range a.Features {
		paint(f.Bounds(), glyph{'F', classFeature})
	}
	for _, p := range a.Props {
		paint(p.Bounds(), glyph{'p', classProp})
	}
	for _, e := range a.Encounters {
		paint(e.Bounds(), glyph{'e', classEncounter})
	}
	for _, p := range opts.Path {
		paint(world.Rect{X: p.X, Y: p.Y, W: 1, H: 1}, glyph{'*', classPath})
	}
	for _, t := range a.Transitions {
		r := 'S'
		if t.Kind == levelgen.TransitionExit {
			r = 'E'
		}
		paint(world.Rect{X: t.Pos.X, Y: t.Pos.Y, W: t.Size, H: t.Size}, glyph{r, classTransition})
	}
	if opts.Viewer != nil {
		paint(opts.Viewer.Footprint(), glyph{'@', classViewer})
	}

	if revealedOnly {
		for y := range rows {
			for x := range rows[y] {
				if !a.IsExplored(x, y) && rows[y][x].class != classViewer {
					rows[y][x] = glyph{'?', classUnexplored}
				}
			}
		}
	}
	return rows
}

func regionGlyph(k generator.RegionKind) rune {
	switch k {
	case generator.RegionRoom:
		return '.'
	case generator.RegionCorridor:
		return ','
	case generator.RegionDoorway:
		return '+'
	}
	return '#'
}

// regionRows renders the coarse region grid, one string per row
func regionRows(m *generator.Maze) []string {
	rows := make([]string, m.Height())
	buf := make([]rune, m.Width())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			k, _ := m.RegionAt(x, y)
			buf[x] = regionGlyph(k)
		}
		rows[y] = string(buf)
	}
	return rows
}
