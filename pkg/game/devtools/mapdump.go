package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"areagen/pkg/game/area"
)

var glyphStyles = map[glyphClass]color.Style{
	classFloor:      {color.FgGray},
	classBlocked:    {color.FgBlue},
	classWall:       {color.FgGray, color.OpBold},
	classFeature:    {color.FgYellow, color.OpBold},
	classProp:       {color.FgMagenta},
	classEncounter:  {color.FgRed, color.OpBold},
	classPath:       {color.FgGreen, color.OpBold},
	classTransition: {color.FgCyan, color.OpBold},
	classViewer:     {color.FgGreen, color.BgBlack, color.OpBold},
	classUnexplored: {color.FgDarkGray},
}

// Dump writes a full debug dump of a: metadata, legend, region grid, tile
// map and the placement records. The format is meant to be read by people
// and diffed between seeds.
func Dump(w io.Writer, a *area.Area, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "=== %s ===\n\n", gotext.Get("AREA DUMP"))

	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Metadata"))
	fmt.Fprintf(bw, "id: %s\n", a.ID)
	fmt.Fprintf(bw, "name: %s\n", a.Name)
	fmt.Fprintf(bw, "seed: %d\n", a.Seed)
	fmt.Fprintf(bw, "size: %dx%d\n", a.Layers.Width(), a.Layers.Height())
	fmt.Fprintf(bw, "grid_size: %d\n", a.Maze.GridSize())
	fmt.Fprintf(bw, "rooms: %d\n", len(a.Maze.Rooms()))
	fmt.Fprintf(bw, "vis_distance: %d\n", a.VisDistance)
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Legend"))
	fmt.Fprintln(bw, legend)
	fmt.Fprintln(bw, regionLegend)
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Regions"))
	for _, row := range regionRows(a.Maze) {
		fmt.Fprintln(bw, row)
	}
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Map"))
	writeGlyphs(bw, tileGlyphs(a, opts, false), opts.Color)
	fmt.Fprintln(bw)

	if opts.Viewer != nil {
		fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Map (explored only)"))
		writeGlyphs(bw, tileGlyphs(a, opts, true), opts.Color)
		fmt.Fprintln(bw)
	}

	writeRecords(bw, a)

	if len(opts.Path) > 0 {
		fmt.Fprintf(bw, "%s: %d\n\n", gotext.Get("Path length"), len(opts.Path))
	}

	fmt.Fprintf(bw, "=== %s ===\n", gotext.Get("END AREA DUMP"))
	return bw.Flush()
}

func writeGlyphs(w io.Writer, rows [][]glyph, useColor bool) {
	var sb strings.Builder
	for _, row := range rows {
		sb.Reset()
		for _, g := range row {
			if useColor {
				sb.WriteString(glyphStyles[g.class].Sprint(string(g.r)))
			} else {
				sb.WriteRune(g.r)
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}

func writeRecords(w io.Writer, a *area.Area) {
	fmt.Fprintf(w, "%s:\n", gotext.Get("Rooms"))
	for i, r := range a.Maze.Rooms() {
		fmt.Fprintf(w, "  index: %d bounds: %v tiles: %v\n", i, r.Bounds, a.Maze.TileRect(r.Bounds))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", gotext.Get("Transitions"))
	for _, t := range a.Transitions {
		fmt.Fprintf(w, "  kind: %s x: %d y: %d size: %d\n", t.Kind, t.Pos.X, t.Pos.Y, t.Size)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", gotext.Get("Terrain features"))
	for _, f := range a.Terrain.Features {
		fmt.Fprintf(w, "  pass: %q kind: %q bounds: %v\n", f.Pass, f.Kind, f.Bounds)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", gotext.Get("Features"))
	for _, f := range a.Features {
		fmt.Fprintf(w, "  id: %q x: %d y: %d w: %d h: %d fixed: %v\n", f.ID, f.Pos.X, f.Pos.Y, f.Width, f.Height, f.Fixed)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", gotext.Get("Props"))
	for _, p := range a.Props {
		fmt.Fprintf(w, "  id: %q sprite: %q x: %d y: %d w: %d h: %d\n", p.ID, p.Sprite, p.Pos.X, p.Pos.Y, p.Width, p.Height)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", gotext.Get("Encounters"))
	for _, e := range a.Encounters {
		fmt.Fprintf(w, "  id: %q x: %d y: %d w: %d h: %d room: %v actors: %q\n",
			e.ID, e.Pos.X, e.Pos.Y, e.Width, e.Height, e.Room, e.Actors)
	}
	fmt.Fprintln(w)
}

// DumpToFile writes the dump to area-<seed>.txt in the working directory
// and returns the absolute path
func DumpToFile(a *area.Area, opts Options) (string, error) {
	absPath, err := filepath.Abs(fmt.Sprintf("area-%d.txt", a.Seed))
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	opts.Color = false
	if err := Dump(f, a, opts); err != nil {
		return absPath, err
	}
	return absPath, f.Sync()
}
