package component

import (
	"castle-fight/internal/ecs"
	"math"
)

const (
	CAttackStats  ecs.ComponentType = 9
	CAttackTarget ecs.ComponentType = 10
)

// AttackStats makes an entity combat-capable. Cooldown is the time in seconds
// until the next attack may fire; zero or less means ready.
type AttackStats struct {
	Damage      int
	AttackSpeed float64 // attacks per second
	AttackRange float64
	Cooldown    float64
}

func (AttackStats) Type() ecs.ComponentType { return CAttackStats }

// Interval is the cooldown applied after each attack. A non-positive attack
// speed never becomes ready again.
func (a AttackStats) Interval() float64 {
	if a.AttackSpeed <= 0 {
		return math.Inf(1)
	}
	return 1 / a.AttackSpeed
}

// Ready reports whether the cooldown has elapsed.
func (a AttackStats) Ready() bool { return a.Cooldown <= 0 }

// AttackTarget is the entity currently being fought.
type AttackTarget struct {
	Target ecs.EntityID
}

func (AttackTarget) Type() ecs.ComponentType { return CAttackTarget }
