// Package blueprint holds the faction catalog: immutable, load-time
// descriptions of the buildings and units a team can field.
package blueprint

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownUnit is returned when a UnitSpawner names a unit id the faction
	// does not define.
	ErrUnknownUnit = errors.New("unknown unit id")
	// ErrUnknownDescriptor is returned for an unrecognised component variant.
	ErrUnknownDescriptor = errors.New("unknown component descriptor")
	// ErrDuplicateID is returned when two buildings or two units share an id.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrEmptyID is returned for a faction, building or unit without an id.
	ErrEmptyID = errors.New("empty id")
	// ErrInvalidValue is returned for a descriptor value out of its range.
	ErrInvalidValue = errors.New("invalid descriptor value")
)

// Building is the archetype of a placeable building.
type Building struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Sprite     string     `json:"sprite" yaml:"sprite"`
	Icon       string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Glyph      string     `json:"glyph,omitempty" yaml:"glyph,omitempty"`
	Components Components `json:"components" yaml:"components"`
}

// Unit is the archetype of a unit produced by a spawner.
type Unit struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Sprite     string     `json:"sprite" yaml:"sprite"`
	Glyph      string     `json:"glyph,omitempty" yaml:"glyph,omitempty"`
	Components Components `json:"components" yaml:"components"`
}

// Faction is a validated set of buildings and units. Buildings and Units keep
// file order; use Building and Unit for lookups by id.
type Faction struct {
	ID        string
	Name      string
	Buildings []*Building
	Units     []*Unit

	buildings map[string]*Building
	units     map[string]*Unit
}

// file mirrors the on-disk faction layout.
type file struct {
	ID        string      `json:"id" yaml:"id"`
	Name      string      `json:"name" yaml:"name"`
	Buildings []*Building `json:"buildings" yaml:"buildings"`
	Units     []*Unit     `json:"units" yaml:"units"`
}

// newFaction indexes and validates a decoded faction file.
func newFaction(f file) (*Faction, error) {
	if f.ID == "" {
		return nil, fmt.Errorf("faction %q: %w", f.Name, ErrEmptyID)
	}
	fac := &Faction{
		ID:        f.ID,
		Name:      f.Name,
		Buildings: f.Buildings,
		Units:     f.Units,
		buildings: make(map[string]*Building, len(f.Buildings)),
		units:     make(map[string]*Unit, len(f.Units)),
	}
	for _, u := range f.Units {
		if u.ID == "" {
			return nil, fmt.Errorf("faction %s: unit %q: %w", f.ID, u.Name, ErrEmptyID)
		}
		if _, dup := fac.units[u.ID]; dup {
			return nil, fmt.Errorf("faction %s: unit %s: %w", f.ID, u.ID, ErrDuplicateID)
		}
		fac.units[u.ID] = u
	}
	for _, b := range f.Buildings {
		if b.ID == "" {
			return nil, fmt.Errorf("faction %s: building %q: %w", f.ID, b.Name, ErrEmptyID)
		}
		if _, dup := fac.buildings[b.ID]; dup {
			return nil, fmt.Errorf("faction %s: building %s: %w", f.ID, b.ID, ErrDuplicateID)
		}
		fac.buildings[b.ID] = b
	}
	// Spawner references are resolved against the faction's own units only.
	check := func(kind, id string, cs Components) error {
		for _, d := range cs {
			if err := checkValue(d); err != nil {
				return fmt.Errorf("faction %s: %s %s: %w", f.ID, kind, id, err)
			}
			sp, ok := d.(UnitSpawner)
			if !ok {
				continue
			}
			if _, ok := fac.units[sp.UnitID]; !ok {
				return fmt.Errorf("faction %s: %s %s spawns %q: %w", f.ID, kind, id, sp.UnitID, ErrUnknownUnit)
			}
		}
		return nil
	}
	for _, b := range f.Buildings {
		if err := check("building", b.ID, b.Components); err != nil {
			return nil, err
		}
	}
	for _, u := range f.Units {
		if err := check("unit", u.ID, u.Components); err != nil {
			return nil, err
		}
	}
	return fac, nil
}

// checkValue rejects descriptor values the simulation cannot run with.
func checkValue(d Descriptor) error {
	switch d := d.(type) {
	case UnitSpawner:
		if d.SpawnTime <= 0 {
			return fmt.Errorf("%w: spawn_time %g must be positive", ErrInvalidValue, d.SpawnTime)
		}
	case Health:
		if d.MaxHealth <= 0 || d.Health <= 0 || d.Health > d.MaxHealth {
			return fmt.Errorf("%w: health %d/%d", ErrInvalidValue, d.Health, d.MaxHealth)
		}
	case AttackStats:
		if d.AttackSpeed < 0 || d.AttackRange < 0 || d.Damage < 0 {
			return fmt.Errorf("%w: attack stats %+v", ErrInvalidValue, d)
		}
	case VisionRange:
		if d < 0 {
			return fmt.Errorf("%w: vision range %g", ErrInvalidValue, float64(d))
		}
	case MovementSpeed:
		if d < 0 {
			return fmt.Errorf("%w: movement speed %g", ErrInvalidValue, float64(d))
		}
	}
	return nil
}

// Building returns the building archetype with the given id.
func (f *Faction) Building(id string) (*Building, bool) {
	b, ok := f.buildings[id]
	return b, ok
}

// Unit returns the unit archetype with the given id.
func (f *Faction) Unit(id string) (*Unit, bool) {
	u, ok := f.units[id]
	return u, ok
}
