package component

import "castle-fight/internal/ecs"

const (
	CWaypoint      ecs.ComponentType = 16
	CTagStartPoint ecs.ComponentType = 17
)

// Waypoint is a node of a forward-only path. Next is NilEntity at the end of
// the path.
type Waypoint struct {
	Next ecs.EntityID
}

func (Waypoint) Type() ecs.ComponentType { return CWaypoint }

// TagStartPoint marks a waypoint where freshly spawned units join a path.
type TagStartPoint struct{}

func (TagStartPoint) Type() ecs.ComponentType { return CTagStartPoint }
