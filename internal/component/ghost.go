package component

import (
	"castle-fight/internal/blueprint"
	"castle-fight/internal/ecs"
)

const CBuildingGhost ecs.ComponentType = 26

// BuildingGhost is a building preview following a player's cursor. Valid is
// false while it overlaps an existing building.
type BuildingGhost struct {
	Team     Team
	Building *blueprint.Building
	Faction  *blueprint.Faction
	Valid    bool
}

func (BuildingGhost) Type() ecs.ComponentType { return CBuildingGhost }
