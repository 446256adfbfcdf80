package system

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
)

// DefaultArrivalThreshold is the distance under which a follower counts as
// having reached its waypoint.
const DefaultArrivalThreshold = 64.0

// SyncAttackMoveTarget points the MoveTarget of every opponent follower that
// holds an AttackTarget at that target.
func SyncAttackMoveTarget(w *ecs.World) {
	for _, id := range w.Query(component.CTagOpponentFollower, component.CAttackTarget) {
		at := w.Get(id, component.CAttackTarget).(component.AttackTarget)
		if mc := w.Get(id, component.CMoveTarget); mc != nil && mc.(component.MoveTarget).Target == at.Target {
			continue
		}
		w.Add(id, component.MoveTarget{Target: at.Target})
	}
}

// SyncWaypointMoveTarget steers waypoint followers that are not fighting.
//
// Without a MoveTarget the follower starts walking to its current waypoint.
// When the MoveTarget is that waypoint and the follower is closer than
// threshold, it advances to the next waypoint; at the end of the path both
// WaypointFollower and MoveTarget are removed. A MoveTarget left over from a
// finished chase is pointed back at the waypoint.
func SyncWaypointMoveTarget(w *ecs.World, threshold float64) {
	followers := w.QueryWithout(
		[]ecs.ComponentType{component.CWaypointFollower, component.CPosition},
		component.CAttackTarget,
	)
	for _, id := range followers {
		wf := w.Get(id, component.CWaypointFollower).(component.WaypointFollower)
		wc := w.Get(wf.Waypoint, component.CWaypoint)
		wpc := w.Get(wf.Waypoint, component.CPosition)
		if wc == nil || wpc == nil {
			// The path node is gone; nothing sensible to walk to.
			w.Remove(id, component.CWaypointFollower)
			w.Remove(id, component.CMoveTarget)
			continue
		}

		mc := w.Get(id, component.CMoveTarget)
		if mc == nil || mc.(component.MoveTarget).Target != wf.Waypoint {
			w.Add(id, component.MoveTarget{Target: wf.Waypoint})
			continue
		}

		pos := w.Get(id, component.CPosition).(component.Position)
		if pos.Vec().Dist(wpc.(component.Position).Vec()) >= threshold {
			continue
		}
		next := wc.(component.Waypoint).Next
		if next == ecs.NilEntity {
			w.Remove(id, component.CWaypointFollower)
			w.Remove(id, component.CMoveTarget)
			continue
		}
		w.Add(id, component.WaypointFollower{Waypoint: next})
		w.Add(id, component.MoveTarget{Target: next})
	}
}

// MoveTowardsTarget issues a MoveToPoint at the current position of every
// MoveTarget. A MoveTarget that no longer resolves is removed. With
// holdInRange, a follower already in attack range of the target it is chasing
// gets no command and stands its ground.
func MoveTowardsTarget(w *ecs.World, holdInRange bool) {
	for _, id := range w.Query(component.CMoveTarget) {
		target := w.Get(id, component.CMoveTarget).(component.MoveTarget).Target
		tp := w.Get(target, component.CPosition)
		if tp == nil || !w.Alive(target) {
			w.Remove(id, component.CMoveTarget)
			continue
		}
		if holdInRange {
			if ac := w.Get(id, component.CAttackTarget); ac != nil &&
				ac.(component.AttackTarget).Target == target && InAttackRange(w, id, target) {
				continue
			}
		}
		w.Add(id, component.MoveToPoint{Point: tp.(component.Position).Vec()})
	}
}

// MoveTowardsPoint advances every mover toward its MoveToPoint by at most
// speed*dt without overshooting, then removes the command. Entities without
// MovementSpeed have their command discarded.
func MoveTowardsPoint(w *ecs.World, dt float64) {
	for _, id := range w.Query(component.CMoveToPoint) {
		cmd := w.Get(id, component.CMoveToPoint).(component.MoveToPoint)
		w.Remove(id, component.CMoveToPoint)

		sc := w.Get(id, component.CMovementSpeed)
		pc := w.Get(id, component.CPosition)
		if sc == nil || pc == nil {
			continue
		}
		pos := pc.(component.Position).Vec()
		delta := cmd.Point.Sub(pos)
		step := delta.Normalize().Scale(sc.(component.MovementSpeed).Speed * dt).ClampLen(delta.Len())
		w.Add(id, component.At(pos.Add(step)))
	}
}
