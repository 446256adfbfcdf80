package spatial

import (
	"castle-fight/internal/ecs"
	"castle-fight/internal/vec"
	"cmp"
	"slices"
)

// ContactKind says whether an overlap began or ended.
type ContactKind uint8

const (
	ContactStarted ContactKind = iota
	ContactStopped
)

// ContactEvent reports that Other entered or left Sensor's radius.
type ContactEvent struct {
	Kind   ContactKind
	Sensor ecs.EntityID
	Other  ecs.EntityID
}

// Sensor is a circular trigger volume attached to an entity.
type Sensor struct {
	ID     ecs.EntityID
	Pos    vec.Vec2
	Radius float64
}

type pair struct{ sensor, other ecs.EntityID }

// ContactTracker turns successive overlap snapshots into enter/exit events,
// the way a physics engine reports sensor collisions.
type ContactTracker struct {
	active map[pair]bool
}

// NewContactTracker returns a tracker with no active contacts.
func NewContactTracker() *ContactTracker {
	return &ContactTracker{active: make(map[pair]bool)}
}

// Step compares the overlaps of sensors against ix with the previous step.
// Started events come first, ordered by sensor then proximity; stopped events
// follow ordered by sensor then other id. Sensors that no longer exist report
// stopped events for all their contacts.
func (t *ContactTracker) Step(ix *Index, sensors []Sensor) []ContactEvent {
	var events []ContactEvent
	current := make(map[pair]bool, len(t.active))
	for _, s := range sensors {
		for _, h := range ix.WithinDistance(s.Pos, s.Radius) {
			if h.ID == s.ID {
				continue
			}
			p := pair{s.ID, h.ID}
			current[p] = true
			if !t.active[p] {
				events = append(events, ContactEvent{Kind: ContactStarted, Sensor: s.ID, Other: h.ID})
			}
		}
	}
	var stopped []ContactEvent
	for p := range t.active {
		if !current[p] {
			stopped = append(stopped, ContactEvent{Kind: ContactStopped, Sensor: p.sensor, Other: p.other})
		}
	}
	slices.SortFunc(stopped, func(a, b ContactEvent) int {
		if c := cmp.Compare(a.Sensor, b.Sensor); c != 0 {
			return c
		}
		return cmp.Compare(a.Other, b.Other)
	})
	t.active = current
	return append(events, stopped...)
}
