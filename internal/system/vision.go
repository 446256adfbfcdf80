package system

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/spatial"
	"slices"
)

// Perception refreshes the perceived sets of every perceiver. The index has
// been rebuilt by the caller and is read-only for the duration of the call.
type Perception interface {
	Perceive(w *ecs.World, ix *spatial.Index)
}

// RadiusPerception queries the index around every perceiver each cycle.
type RadiusPerception struct{}

// Perceive implements Perception.
func (RadiusPerception) Perceive(w *ecs.World, ix *spatial.Index) { UpdateVision(w, ix) }

// UpdateVision overwrites the InVision of every entity with VisionRange,
// InVision, Team and Position. Same-team entities are friendlies; other-team
// entities are enemies only when tagged Visible. Nothing from the previous
// cycle survives.
func UpdateVision(w *ecs.World, ix *spatial.Index) {
	for _, id := range w.Query(component.CVisionRange, component.CInVision, component.CTeam, component.CPosition) {
		vr := w.Get(id, component.CVisionRange).(component.VisionRange)
		team := w.Get(id, component.CTeam).(component.Team)
		pos := w.Get(id, component.CPosition).(component.Position)

		var seen component.InVision
		for _, h := range ix.WithinDistance(pos.Vec(), vr.Radius) {
			if h.ID == id {
				continue
			}
			tc := w.Get(h.ID, component.CTeam)
			if tc == nil {
				continue
			}
			if tc.(component.Team) == team {
				seen.Friendlies = append(seen.Friendlies, h.ID)
			} else if w.Has(h.ID, component.CTagVisible) {
				seen.Enemies = append(seen.Enemies, h.ID)
			}
		}
		w.Add(id, seen)
	}
}

// SensorPerception derives vision from enter/exit contact events instead of
// a full rescan. Perceived sets are maintained incrementally and the lost-sight
// signal clears an attack target immediately.
type SensorPerception struct {
	tracker *spatial.ContactTracker
}

// NewSensorPerception returns a sensor strategy with no active contacts.
func NewSensorPerception() *SensorPerception {
	return &SensorPerception{tracker: spatial.NewContactTracker()}
}

// Perceive implements Perception.
func (p *SensorPerception) Perceive(w *ecs.World, ix *spatial.Index) {
	var sensors []spatial.Sensor
	for _, id := range w.Query(component.CVisionRange, component.CInVision, component.CTeam, component.CPosition) {
		vr := w.Get(id, component.CVisionRange).(component.VisionRange)
		pos := w.Get(id, component.CPosition).(component.Position)
		sensors = append(sensors, spatial.Sensor{ID: id, Pos: pos.Vec(), Radius: vr.Radius})
	}
	ApplyContacts(w, p.tracker.Step(ix, sensors))
}

// ApplyContacts folds contact events into the sensors' perceived sets.
func ApplyContacts(w *ecs.World, events []spatial.ContactEvent) {
	for _, ev := range events {
		ic := w.Get(ev.Sensor, component.CInVision)
		tc := w.Get(ev.Sensor, component.CTeam)
		if ic == nil || tc == nil {
			continue
		}
		seen := ic.(component.InVision)
		switch ev.Kind {
		case spatial.ContactStarted:
			oc := w.Get(ev.Other, component.CTeam)
			if oc == nil {
				continue
			}
			if oc.(component.Team) == tc.(component.Team) {
				if !slices.Contains(seen.Friendlies, ev.Other) {
					seen.Friendlies = append(seen.Friendlies, ev.Other)
				}
			} else if w.Has(ev.Other, component.CTagVisible) && !slices.Contains(seen.Enemies, ev.Other) {
				seen.Enemies = append(seen.Enemies, ev.Other)
			}
		case spatial.ContactStopped:
			seen.Friendlies = slices.DeleteFunc(seen.Friendlies, func(e ecs.EntityID) bool { return e == ev.Other })
			seen.Enemies = slices.DeleteFunc(seen.Enemies, func(e ecs.EntityID) bool { return e == ev.Other })
			LoseSight(w, ev.Sensor, ev.Other)
		}
		w.Add(ev.Sensor, seen)
	}
}
