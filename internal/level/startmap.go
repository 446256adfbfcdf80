package level

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/vec"
)

// StartPoint is a spawned start waypoint entity and its position.
type StartPoint struct {
	ID  ecs.EntityID
	Pos vec.Vec2
}

// StartMap indexes start waypoints per team so spawners can find where new
// units join a path.
type StartMap struct {
	points map[component.Team][]StartPoint
}

// NewStartMap returns an empty map.
func NewStartMap() *StartMap {
	return &StartMap{points: make(map[component.Team][]StartPoint)}
}

// Add registers a start waypoint for team.
func (m *StartMap) Add(team component.Team, id ecs.EntityID, pos vec.Vec2) {
	m.points[team] = append(m.points[team], StartPoint{ID: id, Pos: pos})
}

// Closest returns team's start waypoint nearest to pos by squared distance.
// Ties go to the waypoint registered first. ok is false when the team has
// no start waypoints.
func (m *StartMap) Closest(pos vec.Vec2, team component.Team) (id ecs.EntityID, ok bool) {
	best := -1.0
	for _, p := range m.points[team] {
		d := p.Pos.DistSq(pos)
		if best < 0 || d < best {
			best = d
			id = p.ID
			ok = true
		}
	}
	return id, ok
}

// Len returns the number of start waypoints registered for team.
func (m *StartMap) Len(team component.Team) int { return len(m.points[team]) }
