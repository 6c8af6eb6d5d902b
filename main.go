package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"areagen/pkg/engine/terminal"
	"areagen/pkg/engine/world"
	"areagen/pkg/game/area"
	"areagen/pkg/game/devtools"
	"areagen/pkg/game/params"
	"areagen/pkg/game/registry"
	"areagen/pkg/logger"
)

var log = logger.Component("main")

func initGettext(locales, lang string) {
	gotext.Configure(locales, lang, "default")
}

// parseInts splits "a,b,..." into exactly n integers
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma separated integers", s, n)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

// loadArea reads the template definitions and area params and generates the area
func loadArea(defsPath, configPath string, seed *int64) (*area.Area, error) {
	defs, err := registry.Load(defsPath)
	if err != nil {
		return nil, err
	}
	reg, err := registry.New(defs)
	if err != nil {
		return nil, err
	}
	p, err := params.Load(configPath)
	if err != nil {
		return nil, err
	}
	if seed != nil {
		p.Seed = *seed
	}
	g, err := area.Generate(p, reg)
	if err != nil {
		return nil, err
	}
	return area.New(g), nil
}

func main() {
	defsPath := flag.String("defs", "configs/defs.yaml", "tile, terrain, feature, prop and encounter definitions")
	configPath := flag.String("config", "configs/area.yaml", "area generation parameters")
	seedFlag := flag.Int64("seed", 0, "override the configured seed (0 picks one from the clock)")
	pathFlag := flag.String("path", "", "draw the path x0,y0,x1,y1 instead of the entry to exit route")
	sizeFlag := flag.Int("size", 1, "entity size used for -path and -los")
	losFlag := flag.String("los", "", "compute line of sight for a viewer at x,y")
	dumpFlag := flag.Bool("dump", false, "also write the dump to area-<seed>.txt")
	htmlFlag := flag.Bool("html", false, "also write an HTML snapshot")
	colorFlag := flag.Bool("color", terminal.SupportsColor(os.Stdout), "color the map")
	locales := flag.String("locales", "locales", "gettext locale directory")
	lang := flag.String("lang", "en_GB", "gettext language")
	flag.Parse()

	logger.Init()
	initGettext(*locales, *lang)

	var seed *int64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seed = seedFlag
		}
	})

	a, err := loadArea(*defsPath, *configPath, seed)
	if err != nil {
		log.WithError(err).Fatal("Could not generate area.")
	}

	opts := devtools.Options{Color: *colorFlag}

	from, to := a.Entry().Pos, a.Exit().Pos
	if *pathFlag != "" {
		v, err := parseInts(*pathFlag, 4)
		if err != nil {
			log.WithError(err).Fatal("Bad -path.")
		}
		from, to = world.Pt(v[0], v[1]), world.Pt(v[2], v[3])
	}
	opts.Path = a.FindPath(world.Entity{X: from.X, Y: from.Y, Size: *sizeFlag}, to.X, to.Y)
	if opts.Path == nil {
		log.WithFields(logrus.Fields{
			"from": from,
			"to":   to,
			"size": *sizeFlag,
		}).Warn("No path.")
	}

	if *losFlag != "" {
		v, err := parseInts(*losFlag, 2)
		if err != nil {
			log.WithError(err).Fatal("Bad -los.")
		}
		viewer := world.Entity{X: v[0], Y: v[1], Size: *sizeFlag}
		a.UpdateLOS(viewer)
		opts.Viewer = &viewer
	}

	if !terminal.Fits(a.Layers.Width(), a.Layers.Height()) && terminal.IsTerminal(os.Stdout) {
		log.Warn("The map is larger than the terminal; redirect the output to a file to read it.")
	}
	if err := devtools.Dump(os.Stdout, a, opts); err != nil {
		log.WithError(err).Fatal("Could not write dump.")
	}

	if *dumpFlag {
		path, err := devtools.DumpToFile(a, opts)
		if err != nil {
			log.WithError(err).Fatal("Could not write dump file.")
		}
		log.WithField("file", path).Info("Dump written.")
	}
	if *htmlFlag {
		path, err := devtools.SaveScreenshotHTML(a, opts)
		if err != nil {
			log.WithError(err).Fatal("Could not write HTML snapshot.")
		}
		log.WithField("file", path).Info("HTML snapshot written.")
	}
}
