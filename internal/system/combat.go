package system

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"math"
)

// Hit is one landed attack.
type Hit struct {
	Attacker ecs.EntityID
	Target   ecs.EntityID
	Damage   int
}

// edgeDistance is the distance from a's center to the edge of b's body.
// ok is false when either position does not resolve.
func edgeDistance(w *ecs.World, a, b ecs.EntityID) (float64, bool) {
	pa := w.Get(a, component.CPosition)
	pb := w.Get(b, component.CPosition)
	if pa == nil || pb == nil {
		return 0, false
	}
	d := pa.(component.Position).Vec().Dist(pb.(component.Position).Vec())
	if bc := w.Get(b, component.CBody); bc != nil {
		d -= bc.(component.Body).Radius
	}
	return math.Max(d, 0), true
}

// InAttackRange reports whether target is within attacker's attack range.
func InAttackRange(w *ecs.World, attacker, target ecs.EntityID) bool {
	sc := w.Get(attacker, component.CAttackStats)
	if sc == nil {
		return false
	}
	d, ok := edgeDistance(w, attacker, target)
	return ok && d <= sc.(component.AttackStats).AttackRange
}

// ResolveAttacks runs one combat step of dt seconds.
//
// A combatant whose cooldown is still running only counts it down this step.
// A ready combatant hits its target for flat damage and restarts its cooldown;
// if the target no longer resolves the AttackTarget is dropped and the
// cooldown stays ready. With enforceRange, a ready combatant whose target is
// out of range waits without firing.
func ResolveAttacks(w *ecs.World, dt float64, enforceRange bool) []Hit {
	var hits []Hit
	for _, id := range w.Query(component.CAttackStats) {
		stats := w.Get(id, component.CAttackStats).(component.AttackStats)
		if stats.Cooldown > 0 {
			stats.Cooldown -= dt
			w.Add(id, stats)
			continue
		}
		tc := w.Get(id, component.CAttackTarget)
		if tc == nil {
			continue
		}
		target := tc.(component.AttackTarget).Target
		hc := w.Get(target, component.CHealth)
		if hc == nil || !w.Alive(target) {
			w.Remove(id, component.CAttackTarget)
			continue
		}
		if enforceRange && !InAttackRange(w, id, target) {
			continue
		}
		hp := hc.(component.Health)
		hp.Current -= stats.Damage
		w.Add(target, hp)
		stats.Cooldown = stats.Interval()
		w.Add(id, stats)
		hits = append(hits, Hit{Attacker: id, Target: target, Damage: stats.Damage})
	}
	return hits
}
