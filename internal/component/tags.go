package component

import "castle-fight/internal/ecs"

const (
	CTagUnit     ecs.ComponentType = 20
	CTagBuilding ecs.ComponentType = 21
	CTagCastle   ecs.ComponentType = 22
	CTagInGame   ecs.ComponentType = 23
)

// TagUnit marks a spawned unit.
type TagUnit struct{}

func (TagUnit) Type() ecs.ComponentType { return CTagUnit }

// TagBuilding marks a placed building (castles included).
type TagBuilding struct{}

func (TagBuilding) Type() ecs.ComponentType { return CTagBuilding }

// TagCastle marks a team's castle. Losing every castle loses the match.
type TagCastle struct{}

func (TagCastle) Type() ecs.ComponentType { return CTagCastle }

// TagInGame marks every entity that belongs to a running match.
type TagInGame struct{}

func (TagInGame) Type() ecs.ComponentType { return CTagInGame }
