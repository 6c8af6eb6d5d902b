// Package registry holds the read-only template data (tiles, terrain kinds,
// features, props, encounters) that generators look up by id. A Registry is
// built once and passed explicitly to every generator.
package registry

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"areagen/pkg/engine/world"
	"areagen/pkg/logger"
)

// TerrainKind is a named terrain category
type TerrainKind struct {
	ID            string
	Index         int
	Weight        int
	Base          *world.Tile
	Variants      []*world.Tile
	VariantChance int

	// Borders is keyed by the Index of the adjacent terrain kind
	Borders map[int]*EdgesList
}

// FeatureEntry is one tile of a feature, offset from the feature's top-left
type FeatureEntry struct {
	Tile   *world.Tile
	Offset world.Point
}

// Feature is a multi-tile structure written into the layers
type Feature struct {
	ID      string
	Width   int
	Height  int
	Entries []FeatureEntry
}

// Prop is an object placed on the map as a record, not a tile
type Prop struct {
	ID     string
	Sprite string
	Width  int
	Height int
	Impass []world.Point
	Invis  []world.Point
}

// Encounter is a group of actors placed inside a room
type Encounter struct {
	ID     string
	Width  int
	Height int
	Actors []string
}

// Registry is an immutable id lookup for template data
type Registry struct {
	tiles        map[string]*world.Tile
	terrain      map[string]*TerrainKind
	terrainOrder []*TerrainKind
	features     map[string]*Feature
	props        map[string]*Prop
	encounters   map[string]*Encounter
}

// New builds a registry from definitions, resolving every cross reference.
// Any undefined id or malformed entry aborts with ErrInvalidData.
func New(defs *Definitions) (*Registry, error) {
	r := &Registry{
		tiles:      make(map[string]*world.Tile),
		terrain:    make(map[string]*TerrainKind),
		features:   make(map[string]*Feature),
		props:      make(map[string]*Prop),
		encounters: make(map[string]*Encounter),
	}

	for _, td := range defs.Tiles {
		if err := r.addTile(td); err != nil {
			return nil, err
		}
	}
	if err := r.addTerrainKinds(defs.TerrainKinds); err != nil {
		return nil, err
	}
	for _, fd := range defs.Features {
		if err := r.addFeature(fd); err != nil {
			return nil, err
		}
	}
	for _, pd := range defs.Props {
		if err := r.addProp(pd); err != nil {
			return nil, err
		}
	}
	for _, ed := range defs.Encounters {
		if err := r.addEncounter(ed); err != nil {
			return nil, err
		}
	}

	logger.Component("registry").WithFields(logrus.Fields{
		"tiles":      len(r.tiles),
		"terrain":    len(r.terrain),
		"features":   len(r.features),
		"props":      len(r.props),
		"encounters": len(r.encounters),
	}).Debug("Registry built.")

	return r, nil
}

func (r *Registry) addTile(td TileDef) error {
	if td.ID == "" {
		return fmt.Errorf("%w: tile with empty id", world.ErrInvalidData)
	}
	if _, dup := r.tiles[td.ID]; dup {
		return fmt.Errorf("%w: duplicate tile %q", world.ErrInvalidData, td.ID)
	}
	if td.Width <= 0 || td.Height <= 0 {
		return fmt.Errorf("%w: tile %q has size %dx%d", world.ErrInvalidData, td.ID, td.Width, td.Height)
	}
	owner := "tile " + td.ID
	impass, err := parsePoints(owner, td.Impass, td.Width, td.Height)
	if err != nil {
		return err
	}
	invis, err := parsePoints(owner, td.Invis, td.Width, td.Height)
	if err != nil {
		return err
	}
	if td.Solid {
		impass = world.FullMask(td.Width, td.Height)
		invis = world.FullMask(td.Width, td.Height)
	}
	r.tiles[td.ID] = &world.Tile{
		ID:     td.ID,
		Layer:  td.Layer,
		Sprite: td.Sprite,
		Width:  td.Width,
		Height: td.Height,
		Impass: impass,
		Invis:  invis,
	}
	return nil
}

func (r *Registry) addTerrainKinds(defs []TerrainKindDef) error {
	// first pass assigns indices so borders can refer to any kind
	for i, kd := range defs {
		if kd.ID == "" {
			return fmt.Errorf("%w: terrain kind with empty id", world.ErrInvalidData)
		}
		if _, dup := r.terrain[kd.ID]; dup {
			return fmt.Errorf("%w: duplicate terrain kind %q", world.ErrInvalidData, kd.ID)
		}
		base, ok := r.tiles[kd.Base]
		if !ok {
			return fmt.Errorf("%w: terrain kind %q: undefined base tile %q", world.ErrInvalidData, kd.ID, kd.Base)
		}
		kind := &TerrainKind{
			ID:            kd.ID,
			Index:         i,
			Weight:        kd.Weight,
			Base:          base,
			VariantChance: kd.VariantChance,
			Borders:       make(map[int]*EdgesList),
		}
		for _, v := range kd.Variants {
			vt, ok := r.tiles[v]
			if !ok {
				return fmt.Errorf("%w: terrain kind %q: undefined variant tile %q", world.ErrInvalidData, kd.ID, v)
			}
			kind.Variants = append(kind.Variants, vt)
		}
		r.terrain[kd.ID] = kind
		r.terrainOrder = append(r.terrainOrder, kind)
	}

	for _, kd := range defs {
		kind := r.terrain[kd.ID]
		// sorted for a stable log and error order
		others := make([]string, 0, len(kd.Borders))
		for other := range kd.Borders {
			others = append(others, other)
		}
		sort.Strings(others)
		for _, other := range others {
			adj, ok := r.terrain[other]
			if !ok {
				return fmt.Errorf("%w: terrain kind %q: border against undefined kind %q", world.ErrInvalidData, kd.ID, other)
			}
			kind.Borders[adj.Index] = resolveEdges(kd.Borders[other], r.Tile)
		}
	}
	return nil
}

func (r *Registry) addFeature(fd FeatureDef) error {
	if fd.ID == "" {
		return fmt.Errorf("%w: feature with empty id", world.ErrInvalidData)
	}
	if _, dup := r.features[fd.ID]; dup {
		return fmt.Errorf("%w: duplicate feature %q", world.ErrInvalidData, fd.ID)
	}
	if fd.Width <= 0 || fd.Height <= 0 {
		return fmt.Errorf("%w: feature %q has size %dx%d", world.ErrInvalidData, fd.ID, fd.Width, fd.Height)
	}
	f := &Feature{ID: fd.ID, Width: fd.Width, Height: fd.Height}
	bounds := world.Rect{W: fd.Width, H: fd.Height}
	for _, e := range fd.Tiles {
		t, ok := r.tiles[e.Tile]
		if !ok {
			return fmt.Errorf("%w: feature %q: undefined tile %q", world.ErrInvalidData, fd.ID, e.Tile)
		}
		offset := world.Point{X: e.X, Y: e.Y}
		if !bounds.Contains(offset) || !bounds.Contains(offset.Add(world.Point{X: t.Width - 1, Y: t.Height - 1})) {
			return fmt.Errorf("%w: feature %q: tile %q at %v leaves the %dx%d footprint",
				world.ErrInvalidData, fd.ID, e.Tile, offset, fd.Width, fd.Height)
		}
		f.Entries = append(f.Entries, FeatureEntry{Tile: t, Offset: offset})
	}
	r.features[fd.ID] = f
	return nil
}

func (r *Registry) addProp(pd PropDef) error {
	if pd.ID == "" {
		return fmt.Errorf("%w: prop with empty id", world.ErrInvalidData)
	}
	if _, dup := r.props[pd.ID]; dup {
		return fmt.Errorf("%w: duplicate prop %q", world.ErrInvalidData, pd.ID)
	}
	if pd.Width <= 0 || pd.Height <= 0 {
		return fmt.Errorf("%w: prop %q has size %dx%d", world.ErrInvalidData, pd.ID, pd.Width, pd.Height)
	}
	owner := "prop " + pd.ID
	impass, err := parsePoints(owner, pd.Impass, pd.Width, pd.Height)
	if err != nil {
		return err
	}
	invis, err := parsePoints(owner, pd.Invis, pd.Width, pd.Height)
	if err != nil {
		return err
	}
	r.props[pd.ID] = &Prop{
		ID:     pd.ID,
		Sprite: pd.Sprite,
		Width:  pd.Width,
		Height: pd.Height,
		Impass: impass,
		Invis:  invis,
	}
	return nil
}

func (r *Registry) addEncounter(ed EncounterDef) error {
	if ed.ID == "" {
		return fmt.Errorf("%w: encounter with empty id", world.ErrInvalidData)
	}
	if _, dup := r.encounters[ed.ID]; dup {
		return fmt.Errorf("%w: duplicate encounter %q", world.ErrInvalidData, ed.ID)
	}
	if ed.Width <= 0 || ed.Height <= 0 {
		return fmt.Errorf("%w: encounter %q has size %dx%d", world.ErrInvalidData, ed.ID, ed.Width, ed.Height)
	}
	r.encounters[ed.ID] = &Encounter{ID: ed.ID, Width: ed.Width, Height: ed.Height, Actors: ed.Actors}
	return nil
}

// Tile returns the tile with the given id
func (r *Registry) Tile(id string) (*world.Tile, bool) {
	t, ok := r.tiles[id]
	return t, ok
}

// TerrainKind returns the terrain kind with the given id
func (r *Registry) TerrainKind(id string) (*TerrainKind, bool) {
	k, ok := r.terrain[id]
	return k, ok
}

// TerrainKindAt returns the terrain kind with the given index
func (r *Registry) TerrainKindAt(index int) (*TerrainKind, bool) {
	if index < 0 || index >= len(r.terrainOrder) {
		return nil, false
	}
	return r.terrainOrder[index], true
}

// TerrainKindCount returns the number of terrain kinds
func (r *Registry) TerrainKindCount() int {
	return len(r.terrainOrder)
}

// Feature returns the feature with the given id
func (r *Registry) Feature(id string) (*Feature, bool) {
	f, ok := r.features[id]
	return f, ok
}

// Prop returns the prop with the given id
func (r *Registry) Prop(id string) (*Prop, bool) {
	p, ok := r.props[id]
	return p, ok
}

// Encounter returns the encounter with the given id
func (r *Registry) Encounter(id string) (*Encounter, bool) {
	e, ok := r.encounters[id]
	return e, ok
}
