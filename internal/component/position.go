package component

import (
	"castle-fight/internal/ecs"
	"castle-fight/internal/vec"
)

const CPosition ecs.ComponentType = 1

// Position is the entity's center in world units.
type Position struct {
	X, Y float64
}

func (Position) Type() ecs.ComponentType { return CPosition }

// Vec returns the position as a vector.
func (p Position) Vec() vec.Vec2 { return vec.Vec2{X: p.X, Y: p.Y} }

// At builds a Position from a vector.
func At(v vec.Vec2) Position { return Position{X: v.X, Y: v.Y} }
