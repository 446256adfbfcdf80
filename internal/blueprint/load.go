package blueprint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a faction file.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the format from a file name. ok is false for files that are
// not faction files (*.faction.json, *.faction.yaml, *.faction.yml).
func FormatOf(name string) (f Format, ok bool) {
	switch {
	case strings.HasSuffix(name, ".faction.json"):
		return FormatJSON, true
	case strings.HasSuffix(name, ".faction.yaml"), strings.HasSuffix(name, ".faction.yml"):
		return FormatYAML, true
	}
	return 0, false
}

// Parse decodes and validates one faction.
func Parse(data []byte, format Format) (*Faction, error) {
	var f file
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse faction: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parse faction: %w", err)
		}
	}
	return newFaction(f)
}

// Load reads and parses the faction file at name inside fsys.
func Load(fsys fs.FS, name string) (*Faction, error) {
	format, ok := FormatOf(name)
	if !ok {
		return nil, fmt.Errorf("load faction %s: not a faction file", name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load faction: %w", err)
	}
	fac, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load faction %s: %w", name, err)
	}
	return fac, nil
}

// Catalog is every faction available to a match, keyed by faction id.
type Catalog struct {
	factions []*Faction
	byID     map[string]*Faction
}

// NewCatalog indexes factions. Duplicate faction ids are an error.
func NewCatalog(factions ...*Faction) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Faction, len(factions))}
	for _, f := range factions {
		if _, dup := c.byID[f.ID]; dup {
			return nil, fmt.Errorf("faction %s: %w", f.ID, ErrDuplicateID)
		}
		c.byID[f.ID] = f
		c.factions = append(c.factions, f)
	}
	slices.SortFunc(c.factions, func(a, b *Faction) int { return strings.Compare(a.ID, b.ID) })
	return c, nil
}

// LoadDir loads every faction file directly inside dir. Any invalid file
// aborts the whole load.
func LoadDir(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("load factions: %w", err)
	}
	var factions []*Faction
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := FormatOf(e.Name()); !ok {
			continue
		}
		f, err := Load(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		factions = append(factions, f)
	}
	if len(factions) == 0 {
		return nil, fmt.Errorf("load factions: no faction files in %s", dir)
	}
	return NewCatalog(factions...)
}

// Faction returns the faction with the given id.
func (c *Catalog) Faction(id string) (*Faction, bool) {
	f, ok := c.byID[id]
	return f, ok
}

// Factions returns all factions ordered by id.
func (c *Catalog) Factions() []*Faction { return slices.Clone(c.factions) }
