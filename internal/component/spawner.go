package component

import (
	"castle-fight/internal/blueprint"
	"castle-fight/internal/ecs"
)

const CUnitSpawner ecs.ComponentType = 18

// UnitSpawner produces one Unit every Period seconds. Faction is the catalog
// the unit's own descriptors resolve against.
type UnitSpawner struct {
	Period   float64
	TimeLeft float64
	Unit     *blueprint.Unit
	Faction  *blueprint.Faction
}

func (UnitSpawner) Type() ecs.ComponentType { return CUnitSpawner }
