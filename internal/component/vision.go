package component

import "castle-fight/internal/ecs"

const (
	CVisionRange ecs.ComponentType = 6
	CInVision    ecs.ComponentType = 7
	CTagVisible  ecs.ComponentType = 8
)

// VisionRange is the perception radius in world units.
type VisionRange struct {
	Radius float64
}

func (VisionRange) Type() ecs.ComponentType { return CVisionRange }

// InVision is the perceived set, rebuilt wholesale on every perception cycle.
// Its presence also marks the entity as a perceiver. Enemies are ordered
// nearest first, ties broken by lowest entity id.
type InVision struct {
	Friendlies []ecs.EntityID
	Enemies    []ecs.EntityID
}

func (InVision) Type() ecs.ComponentType { return CInVision }

// TagVisible marks an entity that enemies may perceive and target.
type TagVisible struct{}

func (TagVisible) Type() ecs.ComponentType { return CTagVisible }
