package component

import (
	"castle-fight/internal/ecs"
	"castle-fight/internal/vec"
)

const (
	CMovementSpeed       ecs.ComponentType = 11
	CTagOpponentFollower ecs.ComponentType = 12
	CWaypointFollower    ecs.ComponentType = 13
	CMoveTarget          ecs.ComponentType = 14
	CMoveToPoint         ecs.ComponentType = 15
)

// MovementSpeed is in world units per second.
type MovementSpeed struct {
	Speed float64
}

func (MovementSpeed) Type() ecs.ComponentType { return CMovementSpeed }

// TagOpponentFollower marks an entity that chases its attack target instead
// of following waypoints.
type TagOpponentFollower struct{}

func (TagOpponentFollower) Type() ecs.ComponentType { return CTagOpponentFollower }

// WaypointFollower holds the waypoint the entity is currently walking to.
type WaypointFollower struct {
	Waypoint ecs.EntityID
}

func (WaypointFollower) Type() ecs.ComponentType { return CWaypointFollower }

// MoveTarget is the point-providing entity to walk toward this tick.
type MoveTarget struct {
	Target ecs.EntityID
}

func (MoveTarget) Type() ecs.ComponentType { return CMoveTarget }

// MoveToPoint is a single-tick movement command, consumed and removed by the
// mover in the same tick it was issued.
type MoveToPoint struct {
	Point vec.Vec2
}

func (MoveToPoint) Type() ecs.ComponentType { return CMoveToPoint }
