package system

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
)

// TargetChange records an attack target being set or cleared.
type TargetChange struct {
	Attacker ecs.EntityID
	Target   ecs.EntityID
	Acquired bool
}

// targetable reports whether id still resolves to a live Health-bearing entity.
func targetable(w *ecs.World, id ecs.EntityID) bool {
	return w.Alive(id) && w.Has(id, component.CHealth)
}

// outOfReach reports whether id can never hit target from where it stands:
// it has no MovementSpeed and target is outside its attack range.
func outOfReach(w *ecs.World, id, target ecs.EntityID) bool {
	return !w.Has(id, component.CMovementSpeed) && !InAttackRange(w, id, target)
}

// ResolveTargets runs the targeting pass: combatants whose target no longer
// resolves lose it, then combatants without a target take the first enemy in
// their perceived set that still resolves. With enforceRange, combatants that
// cannot move only keep and acquire targets inside their attack range.
func ResolveTargets(w *ecs.World, enforceRange bool) []TargetChange {
	changes := ReleaseLostTargets(w, enforceRange)
	return append(changes, AcquireTargets(w, enforceRange)...)
}

// ReleaseLostTargets removes every AttackTarget whose entity was destroyed or
// lost its Health, and with enforceRange every target a stationary combatant
// can no longer reach.
func ReleaseLostTargets(w *ecs.World, enforceRange bool) []TargetChange {
	var changes []TargetChange
	for _, id := range w.Query(component.CAttackStats, component.CAttackTarget) {
		at := w.Get(id, component.CAttackTarget).(component.AttackTarget)
		if targetable(w, at.Target) && !(enforceRange && outOfReach(w, id, at.Target)) {
			continue
		}
		w.Remove(id, component.CAttackTarget)
		changes = append(changes, TargetChange{Attacker: id, Target: at.Target})
	}
	return changes
}

// AcquireTargets gives every idle combatant the first resolvable enemy it
// perceives. Perceived enemies are nearest first, so this picks the nearest.
func AcquireTargets(w *ecs.World, enforceRange bool) []TargetChange {
	var changes []TargetChange
	idle := w.QueryWithout([]ecs.ComponentType{component.CAttackStats, component.CInVision}, component.CAttackTarget)
	for _, id := range idle {
		seen := w.Get(id, component.CInVision).(component.InVision)
		for _, enemy := range seen.Enemies {
			if !targetable(w, enemy) || (enforceRange && outOfReach(w, id, enemy)) {
				continue
			}
			w.Add(id, component.AttackTarget{Target: enemy})
			changes = append(changes, TargetChange{Attacker: id, Target: enemy, Acquired: true})
			break
		}
	}
	return changes
}

// LoseSight clears attacker's target when it is the entity that just left
// its vision. It reports whether a target was cleared.
func LoseSight(w *ecs.World, attacker, other ecs.EntityID) bool {
	c := w.Get(attacker, component.CAttackTarget)
	if c == nil || c.(component.AttackTarget).Target != other {
		return false
	}
	w.Remove(attacker, component.CAttackTarget)
	return true
}
