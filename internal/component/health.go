package component

import "castle-fight/internal/ecs"

const CHealth ecs.ComponentType = 2

// Health is hit points. Current may drop below zero; the lifecycle system
// treats Current <= 0 as death.
type Health struct {
	Current, Max int
}

func (Health) Type() ecs.ComponentType { return CHealth }

// Depleted reports whether the entity should die.
func (h Health) Depleted() bool { return h.Current <= 0 }
