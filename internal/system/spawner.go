package system

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/factory"
	"castle-fight/internal/level"
)

// Spawn records a unit produced by a building.
type Spawn struct {
	Building ecs.EntityID
	Unit     ecs.EntityID
	Team     component.Team
	UnitID   string
}

// SpawnError wraps a failed unit instantiation. The spawner is still reset so
// a bad blueprint does not fire every tick.
type SpawnError struct {
	Building ecs.EntityID
	Err      error
}

func (e *SpawnError) Error() string { return "spawner " + e.Building.String() + ": " + e.Err.Error() }

func (e *SpawnError) Unwrap() error { return e.Err }

// RunSpawners counts every UnitSpawner down by dt. A spawner that reaches zero
// produces one unit at the building's position for the building's team, joined
// to the nearest start waypoint in starts, and restarts its period.
func RunSpawners(w *ecs.World, dt float64, starts *level.StartMap) ([]Spawn, []error) {
	var (
		spawned []Spawn
		errs    []error
	)
	for _, id := range w.Query(component.CUnitSpawner, component.CTeam, component.CPosition) {
		sp := w.Get(id, component.CUnitSpawner).(component.UnitSpawner)
		sp.TimeLeft -= dt
		if sp.TimeLeft > 0 {
			w.Add(id, sp)
			continue
		}
		sp.TimeLeft = sp.Period
		w.Add(id, sp)

		team := w.Get(id, component.CTeam).(component.Team)
		pos := w.Get(id, component.CPosition).(component.Position)
		unit, err := factory.NewUnit(w, team, sp.Faction, sp.Unit, pos.Vec(), starts)
		if err != nil {
			errs = append(errs, &SpawnError{Building: id, Err: err})
			continue
		}
		spawned = append(spawned, Spawn{Building: id, Unit: unit, Team: team, UnitID: sp.Unit.ID})
	}
	return spawned, errs
}
