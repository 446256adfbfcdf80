package component

import "castle-fight/internal/ecs"

const CBody ecs.ComponentType = 19

// Body is the physical footprint: a circle of Radius for range checks and a
// square of half-extent Radius for building placement.
type Body struct {
	Radius float64
}

func (Body) Type() ecs.ComponentType { return CBody }
